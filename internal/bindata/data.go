// Package bindata provides the binary data model shared by every part of
// cryptokit: an owned byte sequence with codec conversions and the
// byte-level operators used for XOR cryptanalysis.
package bindata

import (
	"bytes"
	"fmt"
	"math/bits"
)

// Data holds an owned sequence of bytes. The zero value is an empty buffer.
// Values never alias caller memory: constructors and accessors copy.
type Data struct {
	b []byte
}

// New returns a buffer holding a copy of b.
func New(b []byte) Data {
	return Data{b: clone(b)}
}

// Len returns the number of bytes in d.
func (d Data) Len() int {
	return len(d.b)
}

// Bytes returns a copy of the underlying bytes.
func (d Data) Bytes() []byte {
	return clone(d.b)
}

// At returns the byte at position i. Negative positions are out of range.
func (d Data) At(i int) (byte, error) {
	if i < 0 || i >= len(d.b) {
		return 0, fmt.Errorf("%w: position %d, length %d", ErrIndex, i, len(d.b))
	}
	return d.b[i], nil
}

// Slice returns the bytes in [start, end) as a new buffer.
func (d Data) Slice(start, end int) (Data, error) {
	if start < 0 || end > len(d.b) || start > end {
		return Data{}, fmt.Errorf("%w: range [%d:%d], length %d", ErrIndex, start, end, len(d.b))
	}
	return New(d.b[start:end]), nil
}

// Equal reports whether other is a Data (or *Data) holding the same bytes.
// Any other type compares unequal.
func (d Data) Equal(other any) bool {
	switch o := other.(type) {
	case Data:
		return bytes.Equal(d.b, o.b)
	case *Data:
		if o == nil {
			return false
		}
		return bytes.Equal(d.b, o.b)
	default:
		return false
	}
}

// Concat returns a new buffer with the bytes of d followed by other.
func (d Data) Concat(other Data) Data {
	out := make([]byte, 0, len(d.b)+len(other.b))
	out = append(out, d.b...)
	out = append(out, other.b...)
	return Data{b: out}
}

// Append extends d in place with the bytes of other. It is the only
// mutating method. Buffers obtained from d before the call, including
// value copies, keep their contents.
func (d *Data) Append(other Data) {
	// Capping capacity forces a fresh array so copies never share spare room.
	d.b = append(d.b[:len(d.b):len(d.b)], other.b...)
}

// XOR combines d with key byte by byte. A key shorter than d is repeated
// from its start; the result always has the length of d.
func (d Data) XOR(key Data) (Data, error) {
	if len(key.b) == 0 {
		return Data{}, ErrEmptyKey
	}
	out := make([]byte, len(d.b))
	for i := range d.b {
		out[i] = d.b[i] ^ key.b[i%len(key.b)]
	}
	return Data{b: out}, nil
}

// HammingDistance counts the differing bits between d and other, which
// must have the same length.
func (d Data) HammingDistance(other Data) (int, error) {
	if len(d.b) != len(other.b) {
		return 0, fmt.Errorf("%w: %d and %d bytes", ErrLengthMismatch, len(d.b), len(other.b))
	}
	distance := 0
	for i := range d.b {
		distance += bits.OnesCount8(d.b[i] ^ other.b[i])
	}
	return distance, nil
}

// String renders d as uppercase hex.
func (d Data) String() string {
	return d.Hex()
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
