package wire

import (
	"sort"

	"github.com/emberscript/ember/vm"
)

// ---------------------------------------------------------------------------
// Conversions between runtime state and serialized records
// ---------------------------------------------------------------------------

// FromQName converts a qualified name to its serialized record.
func FromQName(q vm.QName) DefinitionRecord {
	return DefinitionRecord{
		NamespaceKind: uint8(q.Namespace().Kind),
		NamespaceURI:  q.Namespace().URI,
		LocalName:     q.LocalName(),
	}
}

// ToQName converts a serialized record back to a qualified name.
func (r DefinitionRecord) ToQName() vm.QName {
	ns := vm.Namespace{Kind: vm.NamespaceKind(r.NamespaceKind), URI: r.NamespaceURI}
	return vm.NewQName(ns, r.LocalName)
}

// FromUnit converts a loaded unit to its serialized record.
func FromUnit(u *vm.Unit) *UnitRecord {
	rec := &UnitRecord{
		ID:   u.ID.String(),
		Name: u.Name,
		Hash: u.Hash,
	}
	for _, def := range u.Definitions {
		rec.Definitions = append(rec.Definitions, FromQName(def))
	}
	return rec
}

// SnapshotDomain captures one domain's resolution state for diagnostics.
// The parent chain is not followed; snapshot each level separately.
// Records are sorted so equal domain state yields equal snapshots.
func SnapshotDomain(rt *vm.Runtime, d *vm.Domain) *DomainSnapshot {
	s := &DomainSnapshot{Global: rt.IsGlobalDomain(d)}
	d.EachDefinition(func(name vm.QName, _ *vm.Script) {
		s.Definitions = append(s.Definitions, FromQName(name))
	})
	d.EachClass(func(name vm.QName, _ *vm.Class) {
		s.ClassNames = append(s.ClassNames, FromQName(name))
	})
	sortRecords(s.Definitions)
	sortRecords(s.ClassNames)
	if d.HasMemory() {
		s.MemoryLength = d.Memory().Len()
	}
	for _, u := range rt.Units.All() {
		s.UnitHashes = append(s.UnitHashes, u.Hash)
	}
	sort.Slice(s.UnitHashes, func(i, j int) bool {
		a, b := s.UnitHashes[i], s.UnitHashes[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return s
}

func sortRecords(recs []DefinitionRecord) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.NamespaceURI != b.NamespaceURI {
			return a.NamespaceURI < b.NamespaceURI
		}
		if a.NamespaceKind != b.NamespaceKind {
			return a.NamespaceKind < b.NamespaceKind
		}
		return a.LocalName < b.LocalName
	})
}
