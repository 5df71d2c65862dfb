// Package wire defines the serialized forms of resolution-core state:
// unit records for the persistent unit cache and domain snapshots for
// diagnostic tooling. Encoding is canonical CBOR so identical state
// always produces identical bytes.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// DefinitionRecord is the serialized form of one exported qualified name.
type DefinitionRecord struct {
	NamespaceKind uint8  `cbor:"1,keyasint"`
	NamespaceURI  string `cbor:"2,keyasint"`
	LocalName     string `cbor:"3,keyasint"`
}

// UnitRecord is the serialized form of one loaded compiled unit.
type UnitRecord struct {
	ID          string             `cbor:"1,keyasint"`
	Name        string             `cbor:"2,keyasint"`
	Hash        [32]byte           `cbor:"3,keyasint"`
	Definitions []DefinitionRecord `cbor:"4,keyasint"`
}

// DomainSnapshot is a diagnostic dump of one domain's resolution state.
type DomainSnapshot struct {
	Global       bool               `cbor:"1,keyasint"`
	Definitions  []DefinitionRecord `cbor:"2,keyasint"`
	ClassNames   []DefinitionRecord `cbor:"3,keyasint"`
	MemoryLength int                `cbor:"4,keyasint"`
	UnitHashes   [][32]byte         `cbor:"5,keyasint"`
}

// MarshalUnitRecord serializes a UnitRecord to CBOR bytes.
func MarshalUnitRecord(r *UnitRecord) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalUnitRecord deserializes a UnitRecord from CBOR bytes.
func UnmarshalUnitRecord(data []byte) (*UnitRecord, error) {
	var r UnitRecord
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("wire: unmarshal unit record: %w", err)
	}
	return &r, nil
}

// MarshalDomainSnapshot serializes a DomainSnapshot to CBOR bytes.
func MarshalDomainSnapshot(s *DomainSnapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalDomainSnapshot deserializes a DomainSnapshot from CBOR bytes.
func UnmarshalDomainSnapshot(data []byte) (*DomainSnapshot, error) {
	var s DomainSnapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("wire: unmarshal domain snapshot: %w", err)
	}
	return &s, nil
}
