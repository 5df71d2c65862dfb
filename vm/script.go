package vm

import (
	"fmt"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// ScriptObject: a script's global scope
// ---------------------------------------------------------------------------

// ScriptObject holds the global properties of one script. Definitions the
// script exports into a domain live here once the script has initialized.
type ScriptObject struct {
	props *PropertyMap[Value]
}

// NewScriptObject creates an empty global scope.
func NewScriptObject() *ScriptObject {
	return &ScriptObject{props: NewPropertyMap[Value]()}
}

// GetProperty reads a property, returning Undefined when absent.
func (o *ScriptObject) GetProperty(name QName) Value {
	if v, ok := o.props.Get(name); ok {
		return v
	}
	return Undefined
}

// HasProperty reports whether a property has been written.
func (o *ScriptObject) HasProperty(name QName) bool {
	return o.props.Contains(name)
}

// SetProperty writes a property.
func (o *ScriptObject) SetProperty(name QName, v Value) {
	o.props.Set(name, v)
}

// ---------------------------------------------------------------------------
// Script: one loadable unit of compiled code
// ---------------------------------------------------------------------------

// ScriptInit populates a script's global scope. It runs at most once, the
// first time the globals are accessed.
type ScriptInit func(rt *Runtime, globals *ScriptObject) error

// Script is a unit of compiled code that exports definitions into a
// domain. Its global scope is materialized lazily: nothing runs until the
// first name resolution actually needs a value from it.
type Script struct {
	id     uuid.UUID
	domain *Domain
	unit   *Unit

	init        ScriptInit
	globals     *ScriptObject
	initialized bool
}

// NewScript creates a script whose globals will be populated by init on
// first access. A nil init yields an empty global scope.
func NewScript(domain *Domain, init ScriptInit) *Script {
	return &Script{
		id:     uuid.New(),
		domain: domain,
		init:   init,
	}
}

// ID returns the script's unique identifier.
func (s *Script) ID() uuid.UUID { return s.id }

// Domain returns the domain the script was loaded into.
func (s *Script) Domain() *Domain { return s.domain }

// Unit returns the compiled unit this script came from, or nil for
// natively constructed scripts.
func (s *Script) Unit() *Unit { return s.unit }

// SetUnit records the compiled unit this script came from.
func (s *Script) SetUnit(u *Unit) { s.unit = u }

// Globals returns the script's global scope, materializing it on first
// call. The same object is returned on every subsequent call, even when
// the initializer failed part-way: a script initializes at most once.
func (s *Script) Globals(rt *Runtime) (*ScriptObject, error) {
	if s.initialized {
		return s.globals, nil
	}
	s.globals = NewScriptObject()
	s.initialized = true
	if s.init != nil {
		if err := s.init(rt, s.globals); err != nil {
			return nil, fmt.Errorf("script %s init: %w", s.id, err)
		}
	}
	return s.globals, nil
}
