package vm

import "strings"

// ---------------------------------------------------------------------------
// Domain: hierarchical visibility scope for exported definitions
// ---------------------------------------------------------------------------

// DefaultDomainMemoryLength is the initial length of a domain's memory
// buffer.
const DefaultDomainMemoryLength = 1024

// Domain is a node in the single-parent hierarchy of visibility scopes.
// It records which script exported each definition, registers classes for
// early interface and generic resolution, and owns the flat memory buffer
// the raw-memory instructions address.
//
// A *Domain handle is shared by every holder; two handles are the same
// domain iff the pointers are equal. Domain state is mutated only from
// the host's single-threaded execution loop, so none of it is locked.
type Domain struct {
	// defs maps each exported definition to the script that exported it.
	defs *PropertyMap[*Script]

	// classes maps class names to classes defined in this domain. Used
	// for early interface resolution and generic specialization.
	classes *PropertyMap[*Class]

	// parent is nil only on the global domain.
	parent *Domain

	// memory is nil only on a global domain still in bootstrap: the
	// global domain must exist before the ByteArray machinery that backs
	// it does. Every domain in active use has memory.
	memory *ByteArray
}

// NewGlobalDomain creates the root domain, with no parent and no memory.
// This is intended exclusively for bootstrapping the global domain;
// InitDefaultMemory must be called before user code runs.
func NewGlobalDomain() *Domain {
	return &Domain{
		defs:    NewPropertyMap[*Script](),
		classes: NewPropertyMap[*Class](),
	}
}

// NewDomain creates a child domain of parent. Child domains are created
// after bootstrap, so default memory is provisioned immediately.
func NewDomain(parent *Domain) *Domain {
	d := &Domain{
		defs:    NewPropertyMap[*Script](),
		classes: NewPropertyMap[*Class](),
		parent:  parent,
	}
	d.InitDefaultMemory()
	return d
}

// Parent returns the parent domain, or nil at the root.
func (d *Domain) Parent() *Domain {
	return d.parent
}

// HasDefinition reports whether a name is defined in this domain or any
// ancestor.
func (d *Domain) HasDefinition(name QName) bool {
	if d.defs.Contains(name) {
		return true
	}
	if d.parent != nil {
		return d.parent.HasDefinition(name)
	}
	return false
}

// DefiningScript resolves a multiname and returns the fully qualified
// name it matched plus the script that exported it. Local definitions
// shadow ancestors: the chain is only consulted on a local miss.
func (d *Domain) DefiningScript(mn *Multiname) (QName, *Script, bool) {
	if name, ok := mn.LocalName(); ok {
		if ns, script, ok := d.defs.GetWithNamespaceForMultiname(mn); ok {
			return NewQName(ns, name), script, true
		}
	}
	if d.parent != nil {
		return d.parent.DefiningScript(mn)
	}
	return QName{}, nil, false
}

// GetClass resolves a multiname against the class maps of this domain and
// its ancestors.
func (d *Domain) GetClass(mn *Multiname) (*Class, bool) {
	if class, ok := d.classes.GetForMultiname(mn); ok {
		return class, true
	}
	if d.parent != nil {
		return d.parent.GetClass(mn)
	}
	return nil, false
}

// FindDefiningScript resolves a multiname like DefiningScript but treats
// a miss as a script-visible reference error.
func (d *Domain) FindDefiningScript(mn *Multiname) (QName, *Script, error) {
	if name, script, ok := d.DefiningScript(mn); ok {
		return name, script, nil
	}
	local, ok := mn.LocalName()
	if !ok {
		return QName{}, nil, ErrUninitiatedMultiname
	}
	return QName{}, nil, NewUndefinedVariableError(local)
}

// DefinedValue resolves a qualified name to the value its defining script
// exported, materializing that script's globals if this is the first
// access.
func (d *Domain) DefinedValue(rt *Runtime, name QName) (Value, error) {
	mn := name.Multiname()
	resolved, script, err := d.FindDefiningScript(&mn)
	if err != nil {
		return nil, err
	}
	globals, err := script.Globals(rt)
	if err != nil {
		return nil, err
	}
	return globals.GetProperty(resolved), nil
}

// ---------------------------------------------------------------------------
// Generic name handling
// ---------------------------------------------------------------------------

const vectorPrefix = "Vector.<"

// DefinedValueHandlingVector resolves a qualified name with special
// handling for parameterized names of the shape "Vector.<Type>". Such a
// lookup becomes a lookup of plain Vector, an independent lookup of the
// type argument, and a type application of the latter to the former.
//
// Only the outermost wrapper is stripped: "Vector.<Vector.<int>>" yields
// the argument "Vector.<int>". Unbalanced text is passed through as-is.
func (d *Domain) DefinedValueHandlingVector(rt *Runtime, name QName) (Value, error) {
	typeName := ""
	isVector := false
	local := name.LocalName()
	ns := name.Namespace()
	if (ns == rt.VectorPublicNamespace || ns == rt.VectorInternalNamespace || ns == rt.PublicNamespace) &&
		strings.HasPrefix(local, vectorPrefix) && strings.HasSuffix(local, ">") {
		typeName = local[len(vectorPrefix) : len(local)-1]
		isVector = true
		name = NewQName(rt.VectorPublicNamespace, "Vector")
	}

	res, err := d.DefinedValue(rt, name)

	if isVector {
		typeValue, terr := d.DefinedValue(rt, ParseQualifiedName(typeName))
		if terr != nil {
			return nil, terr
		}
		if err == nil {
			applicable, ok := res.(TypeApplicable)
			if !ok {
				return nil, NewTypeApplicationError()
			}
			return applicable.ApplyType(rt, typeValue)
		}
	}
	return res, err
}

// ---------------------------------------------------------------------------
// Definition export
// ---------------------------------------------------------------------------

// ExportDefinition records that script exported name into this domain.
// The first exporter wins: if the name already resolves here or in any
// ancestor, the call is a no-op. Multiple scripts exporting the same
// well-known name is expected, benign behavior.
func (d *Domain) ExportDefinition(name QName, script *Script) {
	if d.HasDefinition(name) {
		return
	}
	d.defs.Set(name, script)
}

// ExportClass registers a class under its own name, unconditionally
// replacing any previous registration. Class registration is driven by a
// single authoritative loader step per class, so the last writer wins.
func (d *Domain) ExportClass(class *Class) {
	d.classes.Set(class.Name(), class)
}

// EachDefinition visits this domain's local definitions. Ancestors are
// not followed.
func (d *Domain) EachDefinition(fn func(name QName, script *Script)) {
	d.defs.Each(fn)
}

// EachClass visits this domain's locally registered classes.
func (d *Domain) EachClass(fn func(name QName, class *Class)) {
	d.classes.Each(fn)
}

// ---------------------------------------------------------------------------
// Domain memory
// ---------------------------------------------------------------------------

// Memory returns the domain's memory buffer. A domain without memory
// outside the global bootstrap window means the embedding skipped
// InitDefaultMemory, which is a bootstrap-ordering bug, not a script
// error.
func (d *Domain) Memory() *ByteArray {
	if d.memory == nil {
		panic("vm: domain must have valid memory at all times")
	}
	return d.memory
}

// SetMemory replaces the domain's memory buffer.
func (d *Domain) SetMemory(mem *ByteArray) {
	d.memory = mem
}

// InitDefaultMemory provisions the default memory buffer if none is
// present yet. Only the global domain needs an explicit call, after the
// ByteArray machinery is up; calling again is a no-op and never replaces
// memory user code may already have touched.
func (d *Domain) InitDefaultMemory() {
	if d.memory != nil {
		return
	}
	d.memory = NewByteArrayWithLength(DefaultDomainMemoryLength)
}

// HasMemory reports whether memory has been provisioned. Outside the
// bootstrap path this is always true.
func (d *Domain) HasMemory() bool {
	return d.memory != nil
}
