package vm

// ---------------------------------------------------------------------------
// Value: what a script definition resolves to
// ---------------------------------------------------------------------------

// Value is anything a script-global property can hold: a *Class, a
// primitive Go value installed by native code, or any host object the
// interpreter traffics in. The resolution core never inspects values
// beyond the TypeApplicable check used by generic lookup.
type Value interface{}

// Undefined is the value of a property that was never written.
var Undefined Value = undefinedValue{}

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// TypeApplicable is implemented by values that support generic type
// specialization, i.e. the "Vector" container class.
type TypeApplicable interface {
	// ApplyType produces the concrete class specialized for one type
	// argument.
	ApplyType(rt *Runtime, arg Value) (Value, error)
}
