package vm

// ---------------------------------------------------------------------------
// Class: runtime type metadata
// ---------------------------------------------------------------------------

// ClassApplier produces a specialization of a generic class for one type
// argument. Whether results are memoized is up to the applier; the
// resolution core issues the request on every generic lookup.
type ClassApplier func(rt *Runtime, c *Class, arg Value) (*Class, error)

// Class is runtime type metadata. Classes register into a domain's class
// map under their own qualified name, independently of script export, so
// interface and generic resolution can find them early.
type Class struct {
	name       QName
	superclass *Class

	// applier is non-nil only on parameterized container classes.
	applier ClassApplier

	// param is the type argument this class was specialized with, nil
	// for unspecialized classes.
	param *Class
}

// NewClass creates a class with the given qualified name and superclass.
func NewClass(name QName, superclass *Class) *Class {
	return &Class{name: name, superclass: superclass}
}

// NewGenericClass creates a parameterized container class whose
// specializations are produced by applier.
func NewGenericClass(name QName, superclass *Class, applier ClassApplier) *Class {
	return &Class{name: name, superclass: superclass, applier: applier}
}

// Name returns the class's qualified name.
func (c *Class) Name() QName { return c.name }

// Superclass returns the parent class, or nil at the root.
func (c *Class) Superclass() *Class { return c.superclass }

// Param returns the type argument of a specialized class, or nil.
func (c *Class) Param() *Class { return c.param }

// IsGeneric reports whether the class accepts type application.
func (c *Class) IsGeneric() bool { return c.applier != nil }

// IsSubclassOf returns true if c is other or descends from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.superclass {
		if cur == other {
			return true
		}
	}
	return false
}

// String implements the Stringer interface.
func (c *Class) String() string {
	return c.name.String()
}

// ApplyType specializes a generic class with one type argument. Classes
// without an applier reject application.
func (c *Class) ApplyType(rt *Runtime, arg Value) (Value, error) {
	if c.applier == nil {
		return nil, NewTypeApplicationError()
	}
	specialized, err := c.applier(rt, c, arg)
	if err != nil {
		return nil, err
	}
	return specialized, nil
}

// ---------------------------------------------------------------------------
// Vector: the built-in generic container class
// ---------------------------------------------------------------------------

// NewVectorClass builds the generic Vector container class, registered in
// the reserved vector package. Specializations are memoized per type
// argument so repeated lookups of the same parameterization share one
// class identity.
func NewVectorClass(superclass *Class) *Class {
	specializations := make(map[*Class]*Class)
	name := NewQName(PackageNamespace(VectorPackageURI), "Vector")

	return NewGenericClass(name, superclass, func(rt *Runtime, generic *Class, arg Value) (*Class, error) {
		param, ok := arg.(*Class)
		if !ok {
			return nil, NewTypeApplicationError()
		}
		if cached, ok := specializations[param]; ok {
			return cached, nil
		}
		specialized := &Class{
			name: NewQName(
				PackageNamespace(VectorPackageURI),
				"Vector.<"+param.Name().String()+">",
			),
			superclass: generic.superclass,
			param:      param,
		}
		specializations[param] = specialized
		return specialized, nil
	})
}
