package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Script-facing errors
// ---------------------------------------------------------------------------

// Script-visible failures carry the legacy numeric codes of the historical
// runtime; existing content pattern-matches on the exact "Error #NNNN"
// text, so the formats below must not change.

// ReferenceError reports a name that resolved nowhere in a domain chain.
type ReferenceError struct {
	Code int
	Name string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Error #%d: Variable %s is not defined.", e.Code, e.Name)
}

// NewUndefinedVariableError creates the error raised when a name cannot be
// resolved anywhere in a domain's ancestor chain.
func NewUndefinedVariableError(name string) *ReferenceError {
	return &ReferenceError{Code: 1065, Name: name}
}

// TypeApplicationError reports a generic lookup whose base value cannot be
// specialized.
type TypeApplicationError struct {
	Code int
}

func (e *TypeApplicationError) Error() string {
	return fmt.Sprintf("Error #%d: Type application attempted on a non-parameterized type.", e.Code)
}

// NewTypeApplicationError creates the error raised when type application
// is attempted on a value that is not a parameterized class.
func NewTypeApplicationError() *TypeApplicationError {
	return &TypeApplicationError{Code: 1127}
}

// RangeError reports an out-of-bounds domain memory access.
type RangeError struct {
	Code int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Error #%d: The specified range is invalid.", e.Code)
}

// NewInvalidRangeError creates the error raised by out-of-range ByteArray
// reads and writes.
func NewInvalidRangeError() *RangeError {
	return &RangeError{Code: 1506}
}

// ErrUninitiatedMultiname is returned when resolution is attempted through
// a multiname that carries no local name.
var ErrUninitiatedMultiname = errors.New("attempted to resolve uninitiated multiname")
