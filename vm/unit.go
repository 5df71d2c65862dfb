package vm

import (
	"crypto/sha256"
	"sync"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Unit: provenance for loaded code, content-addressed
// ---------------------------------------------------------------------------

// Unit describes one compiled artifact handed to the loader: where a
// domain's scripts came from. Units are content-addressed by the sha256
// of their compiled bytes so identical artifacts loaded twice share one
// index entry.
type Unit struct {
	ID   uuid.UUID
	Name string
	Hash [32]byte

	// Definitions lists the qualified names the unit's scripts export.
	Definitions []QName
}

// NewUnit creates a unit descriptor for a compiled artifact.
func NewUnit(name string, compiled []byte) *Unit {
	return &Unit{
		ID:   uuid.New(),
		Name: name,
		Hash: sha256.Sum256(compiled),
	}
}

// AddDefinition records an exported qualified name.
func (u *Unit) AddDefinition(name QName) {
	u.Definitions = append(u.Definitions, name)
}

// ---------------------------------------------------------------------------
// UnitIndex: content-addressed registry of loaded units
// ---------------------------------------------------------------------------

// UnitIndex maps content hashes to loaded units. It is safe for
// concurrent access: the loader runs single-threaded, but diagnostic
// tooling may read the index from outside the execution loop.
type UnitIndex struct {
	mu    sync.RWMutex
	units map[[32]byte]*Unit
}

// NewUnitIndex creates an empty unit index.
func NewUnitIndex() *UnitIndex {
	return &UnitIndex{units: make(map[[32]byte]*Unit)}
}

// Add indexes a unit by its content hash. Units with a zero hash are
// silently ignored.
func (ix *UnitIndex) Add(u *Unit) {
	if u.Hash == ([32]byte{}) {
		return
	}
	ix.mu.Lock()
	ix.units[u.Hash] = u
	ix.mu.Unlock()
}

// Lookup returns the unit for the given hash, or nil.
func (ix *UnitIndex) Lookup(h [32]byte) *Unit {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.units[h]
}

// Has returns true if the index contains the given hash.
func (ix *UnitIndex) Has(h [32]byte) bool {
	return ix.Lookup(h) != nil
}

// All returns all indexed units.
func (ix *UnitIndex) All() []*Unit {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	result := make([]*Unit, 0, len(ix.units))
	for _, u := range ix.units {
		result = append(result, u)
	}
	return result
}

// Len returns the number of indexed units.
func (ix *UnitIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.units)
}
