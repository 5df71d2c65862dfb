package vm

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Domain construction tests
// ---------------------------------------------------------------------------

func TestNewGlobalDomain(t *testing.T) {
	d := NewGlobalDomain()
	if d.Parent() != nil {
		t.Error("global domain should have no parent")
	}
	if d.HasMemory() {
		t.Error("global domain should start without memory")
	}
}

func TestNewDomain(t *testing.T) {
	root := NewGlobalDomain()
	child := NewDomain(root)

	if child.Parent() != root {
		t.Error("child parent should be root")
	}
	if !child.HasMemory() {
		t.Fatal("child domain should be created with memory")
	}
	if got := child.Memory().Len(); got != DefaultDomainMemoryLength {
		t.Errorf("memory length = %d, want %d", got, DefaultDomainMemoryLength)
	}
}

func TestDomainIdentity(t *testing.T) {
	root := NewGlobalDomain()
	a := NewDomain(root)
	b := NewDomain(root)

	if a == b {
		t.Error("distinct domains should not compare equal")
	}
	same := a
	if same != a {
		t.Error("copied handle should compare equal to the original")
	}
}

// ---------------------------------------------------------------------------
// Export and lookup tests
// ---------------------------------------------------------------------------

func TestExportDefinition(t *testing.T) {
	d := NewGlobalDomain()
	script := NewScript(d, nil)
	name := PublicQName("Foo")

	d.ExportDefinition(name, script)
	if !d.HasDefinition(name) {
		t.Fatal("exported name should be defined")
	}

	mn := name.Multiname()
	resolved, got, ok := d.DefiningScript(&mn)
	if !ok {
		t.Fatal("DefiningScript should find the export")
	}
	if got != script {
		t.Error("DefiningScript returned the wrong script")
	}
	if resolved != name {
		t.Errorf("resolved name = %v, want %v", resolved, name)
	}
}

func TestExportDefinitionFirstWriterWins(t *testing.T) {
	d := NewGlobalDomain()
	first := NewScript(d, nil)
	second := NewScript(d, nil)
	name := PublicQName("Foo")

	d.ExportDefinition(name, first)
	d.ExportDefinition(name, second) // expected, benign no-op

	mn := name.Multiname()
	_, got, ok := d.DefiningScript(&mn)
	if !ok {
		t.Fatal("name should still resolve")
	}
	if got != first {
		t.Error("second export should not replace the first")
	}
}

func TestExportDefinitionAncestorBlocksChild(t *testing.T) {
	root := NewGlobalDomain()
	child := NewDomain(root)
	rootScript := NewScript(root, nil)
	childScript := NewScript(child, nil)
	name := PublicQName("Foo")

	root.ExportDefinition(name, rootScript)
	// Exporting after the ancestor already defines the name is a no-op.
	child.ExportDefinition(name, childScript)

	mn := name.Multiname()
	_, got, ok := child.DefiningScript(&mn)
	if !ok {
		t.Fatal("name should resolve through the parent")
	}
	if got != rootScript {
		t.Error("child export should have been a no-op")
	}
}

func TestChildShadowsParent(t *testing.T) {
	root := NewGlobalDomain()
	child := NewDomain(root)
	rootScript := NewScript(root, nil)
	childScript := NewScript(child, nil)
	name := PublicQName("Foo")

	// Child exports first, so both exports take effect locally.
	child.ExportDefinition(name, childScript)
	root.ExportDefinition(name, rootScript)

	mn := name.Multiname()
	_, got, ok := child.DefiningScript(&mn)
	if !ok || got != childScript {
		t.Error("child's own definition should shadow the parent's")
	}
	_, got, ok = root.DefiningScript(&mn)
	if !ok || got != rootScript {
		t.Error("parent should still see its own definition")
	}
}

func TestHasDefinitionWalksChain(t *testing.T) {
	root := NewGlobalDomain()
	mid := NewDomain(root)
	leaf := NewDomain(mid)
	name := PublicQName("Deep")

	root.ExportDefinition(name, NewScript(root, nil))

	if !leaf.HasDefinition(name) {
		t.Error("definition should be visible two levels down")
	}
	if leaf.HasDefinition(PublicQName("Missing")) {
		t.Error("undefined name should not be reported as defined")
	}
}

func TestExportClassLastWriterWins(t *testing.T) {
	d := NewGlobalDomain()
	name := PublicQName("Sprite")
	first := NewClass(name, nil)
	second := NewClass(name, nil)

	d.ExportClass(first)
	d.ExportClass(second)

	mn := name.Multiname()
	got, ok := d.GetClass(&mn)
	if !ok {
		t.Fatal("class should resolve")
	}
	if got != second {
		t.Error("class registration should be last-writer-wins")
	}
}

func TestGetClassWalksChain(t *testing.T) {
	root := NewGlobalDomain()
	child := NewDomain(root)
	name := PublicQName("Sprite")
	class := NewClass(name, nil)

	root.ExportClass(class)

	mn := name.Multiname()
	got, ok := child.GetClass(&mn)
	if !ok || got != class {
		t.Error("class should resolve through the parent")
	}
	if _, ok := child.GetClass(&mn); !ok {
		t.Error("repeated lookup should still resolve")
	}
}

// ---------------------------------------------------------------------------
// Multiname resolution tests
// ---------------------------------------------------------------------------

func TestDefiningScriptPicksNamespaceFromCandidateSet(t *testing.T) {
	d := NewGlobalDomain()
	internal := PackageInternalNamespace("pkg")
	script := NewScript(d, nil)
	d.ExportDefinition(NewQName(internal, "Secret"), script)

	// Candidate set without the internal namespace must miss.
	miss := NewMultiname("Secret", PackageNamespace("pkg"))
	if _, _, ok := d.DefiningScript(&miss); ok {
		t.Error("lookup should miss when the namespace is not a candidate")
	}

	// Candidate set including it must hit and report the matched namespace.
	hit := NewMultiname("Secret", PackageNamespace("pkg"), internal)
	resolved, _, ok := d.DefiningScript(&hit)
	if !ok {
		t.Fatal("lookup should hit with the namespace in the candidate set")
	}
	if resolved.Namespace() != internal {
		t.Errorf("matched namespace = %v, want %v", resolved.Namespace(), internal)
	}
}

func TestFindDefiningScriptUndefined(t *testing.T) {
	d := NewGlobalDomain()
	mn := NewMultiname("nonexistent", PackageNamespace(""))

	_, _, err := d.FindDefiningScript(&mn)
	if err == nil {
		t.Fatal("expected an error for an undefined name")
	}
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("error type = %T, want *ReferenceError", err)
	}
	if refErr.Code != 1065 {
		t.Errorf("code = %d, want 1065", refErr.Code)
	}
	want := "Error #1065: Variable nonexistent is not defined."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestFindDefiningScriptUninitiatedMultiname(t *testing.T) {
	d := NewGlobalDomain()
	var mn Multiname // no local name

	_, _, err := d.FindDefiningScript(&mn)
	if !errors.Is(err, ErrUninitiatedMultiname) {
		t.Errorf("err = %v, want ErrUninitiatedMultiname", err)
	}
}

// ---------------------------------------------------------------------------
// Defined value tests
// ---------------------------------------------------------------------------

func TestDefinedValueRootAndChild(t *testing.T) {
	rt := NewRuntime()
	root := rt.GlobalDomain()
	child := NewDomain(root)
	name := PublicQName("Foo")

	childScript := NewScript(child, func(_ *Runtime, g *ScriptObject) error {
		g.SetProperty(name, "child-foo")
		return nil
	})
	child.ExportDefinition(name, childScript)

	rootScript := NewScript(root, func(_ *Runtime, g *ScriptObject) error {
		g.SetProperty(name, "root-foo")
		return nil
	})
	root.ExportDefinition(name, rootScript)

	got, err := child.DefinedValue(rt, name)
	if err != nil {
		t.Fatalf("DefinedValue(child): %v", err)
	}
	if got != "child-foo" {
		t.Errorf("child value = %v, want child-foo", got)
	}

	got, err = root.DefinedValue(rt, name)
	if err != nil {
		t.Fatalf("DefinedValue(root): %v", err)
	}
	if got != "root-foo" {
		t.Errorf("root value = %v, want root-foo", got)
	}
}

func TestDefinedValueUndefinedProperty(t *testing.T) {
	rt := NewRuntime()
	d := rt.GlobalDomain()
	name := PublicQName("Phantom")

	// Script exports the name but its initializer never writes it.
	d.ExportDefinition(name, NewScript(d, nil))

	got, err := d.DefinedValue(rt, name)
	if err != nil {
		t.Fatalf("DefinedValue: %v", err)
	}
	if got != Undefined {
		t.Errorf("value = %v, want Undefined", got)
	}
}

// ---------------------------------------------------------------------------
// Domain memory tests
// ---------------------------------------------------------------------------

func TestInitDefaultMemoryIdempotent(t *testing.T) {
	d := NewGlobalDomain()
	d.InitDefaultMemory()
	first := d.Memory()

	if first.Len() != DefaultDomainMemoryLength {
		t.Errorf("memory length = %d, want %d", first.Len(), DefaultDomainMemoryLength)
	}

	// User code may have grown the buffer; a second init must not replace it.
	first.SetLength(4096)
	d.InitDefaultMemory()
	if d.Memory() != first {
		t.Error("second init replaced the memory object")
	}
	if d.Memory().Len() != 4096 {
		t.Errorf("memory length = %d, want 4096", d.Memory().Len())
	}
}

func TestMemoryPanicsWhenAbsent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Memory should panic on a domain still in bootstrap")
		}
	}()
	NewGlobalDomain().Memory()
}

func TestSetMemory(t *testing.T) {
	d := NewGlobalDomain()
	mem := NewByteArrayWithLength(64)
	d.SetMemory(mem)
	if d.Memory() != mem {
		t.Error("SetMemory should install the given buffer")
	}
	// InitDefaultMemory must not displace explicitly installed memory.
	d.InitDefaultMemory()
	if d.Memory() != mem {
		t.Error("InitDefaultMemory replaced explicitly installed memory")
	}
}
