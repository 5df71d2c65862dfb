package vm

import (
	"encoding/binary"
	"math"
)

// ---------------------------------------------------------------------------
// ByteArray: resizable flat byte buffer backing domain memory
// ---------------------------------------------------------------------------

// ByteArray is the flat memory buffer scripts address with the raw-memory
// instruction set. Those instructions are little-endian, so the accessors
// below are too. Growing zero-fills; shrinking truncates.
type ByteArray struct {
	data []byte
}

// NewByteArray creates an empty byte array.
func NewByteArray() *ByteArray {
	return &ByteArray{}
}

// NewByteArrayWithLength creates a zero-filled byte array of n bytes.
func NewByteArrayWithLength(n int) *ByteArray {
	return &ByteArray{data: make([]byte, n)}
}

// Len returns the current length in bytes.
func (b *ByteArray) Len() int {
	return len(b.data)
}

// SetLength resizes the buffer. New bytes are zero.
func (b *ByteArray) SetLength(n int) {
	if n <= len(b.data) {
		b.data = b.data[:n]
		return
	}
	if n <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:n]
		clear(b.data[old:])
		return
	}
	grown := make([]byte, n)
	copy(grown, b.data)
	b.data = grown
}

// Bytes returns the backing slice. Callers must not resize it.
func (b *ByteArray) Bytes() []byte {
	return b.data
}

func (b *ByteArray) checkRange(off, size int) error {
	if off < 0 || size < 0 || off+size > len(b.data) {
		return NewInvalidRangeError()
	}
	return nil
}

// GetUint8 reads one byte at off.
func (b *ByteArray) GetUint8(off int) (uint8, error) {
	if err := b.checkRange(off, 1); err != nil {
		return 0, err
	}
	return b.data[off], nil
}

// SetUint8 writes one byte at off.
func (b *ByteArray) SetUint8(off int, v uint8) error {
	if err := b.checkRange(off, 1); err != nil {
		return err
	}
	b.data[off] = v
	return nil
}

// GetUint16 reads a little-endian 16-bit value at off.
func (b *ByteArray) GetUint16(off int) (uint16, error) {
	if err := b.checkRange(off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b.data[off:]), nil
}

// SetUint16 writes a little-endian 16-bit value at off.
func (b *ByteArray) SetUint16(off int, v uint16) error {
	if err := b.checkRange(off, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b.data[off:], v)
	return nil
}

// GetUint32 reads a little-endian 32-bit value at off.
func (b *ByteArray) GetUint32(off int) (uint32, error) {
	if err := b.checkRange(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b.data[off:]), nil
}

// SetUint32 writes a little-endian 32-bit value at off.
func (b *ByteArray) SetUint32(off int, v uint32) error {
	if err := b.checkRange(off, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b.data[off:], v)
	return nil
}

// GetFloat32 reads a little-endian IEEE 754 single at off.
func (b *ByteArray) GetFloat32(off int) (float32, error) {
	bits, err := b.GetUint32(off)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// SetFloat32 writes a little-endian IEEE 754 single at off.
func (b *ByteArray) SetFloat32(off int, v float32) error {
	return b.SetUint32(off, math.Float32bits(v))
}

// GetFloat64 reads a little-endian IEEE 754 double at off.
func (b *ByteArray) GetFloat64(off int) (float64, error) {
	if err := b.checkRange(off, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b.data[off:])), nil
}

// SetFloat64 writes a little-endian IEEE 754 double at off.
func (b *ByteArray) SetFloat64(off int, v float64) error {
	if err := b.checkRange(off, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b.data[off:], math.Float64bits(v))
	return nil
}
