package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/emberscript/ember/vm"
)

func openTestStore(t *testing.T) *UnitStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "units.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	u := vm.NewUnit("core.ebu", []byte("compiled"))
	u.AddDefinition(vm.PublicQName("Core"))
	if err := s.Put(u); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec, err := s.Get(u.Hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Name != "core.ebu" || rec.Hash != u.Hash {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Definitions) != 1 || rec.Definitions[0].ToQName() != vm.PublicQName("Core") {
		t.Errorf("definitions = %+v", rec.Definitions)
	}

	ok, err := s.Has(u.Hash)
	if err != nil || !ok {
		t.Errorf("Has = %v, %v", ok, err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	var missing [32]byte
	missing[0] = 1
	if _, err := s.Get(missing); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("err = %v, want ErrUnitNotFound", err)
	}
	ok, err := s.Has(missing)
	if err != nil || ok {
		t.Errorf("Has = %v, %v", ok, err)
	}
}

func TestPutReplacesSameHash(t *testing.T) {
	s := openTestStore(t)

	first := vm.NewUnit("old-name.ebu", []byte("same bytes"))
	second := vm.NewUnit("new-name.ebu", []byte("same bytes"))
	if err := s.Put(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(second); err != nil {
		t.Fatal(err)
	}

	rec, err := s.Get(first.Hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Name != "new-name.ebu" {
		t.Errorf("record name = %q, want the replacement", rec.Name)
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("List returned %d records, want 1", len(records))
	}
}

func TestListOrderedByName(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"zeta.ebu", "alpha.ebu"} {
		if err := s.Put(vm.NewUnit(name, []byte(name))); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].Name != "alpha.ebu" {
		t.Errorf("records = %v", records)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	u := vm.NewUnit("core.ebu", []byte("compiled"))
	if err := s.Put(u); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(u.Hash); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(u.Hash); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("err after delete = %v", err)
	}
	// Deleting a missing hash is not an error.
	if err := s.Delete(u.Hash); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	u := vm.NewUnit("core.ebu", []byte("compiled"))
	if err := s.Put(u); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if ok, _ := reopened.Has(u.Hash); !ok {
		t.Error("record should survive reopen")
	}
}
