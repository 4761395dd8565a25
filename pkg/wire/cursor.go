// Package wire implements the length-varying little-endian binary
// codec used by the Ragnarok Online client/server wire protocol: a
// Cursor decodes fixed and variable-width fields from a byte slice,
// an Encoder appends them to a growable buffer, and both understand
// the protocol's three recurring patterns: version-gated fields,
// fixed-width NUL-padded strings, and count-prefixed sequences.
package wire

import (
	"encoding/binary"

	"github.com/Faultbox/rocore/pkg/encoding"
)

// Version identifies a negotiated protocol revision. Packet decoders
// compare against well-known constants (see internal/protocol) to
// decide whether a version-gated field is present.
type Version uint32

// Cursor reads typed values from a byte slice, left to right,
// advancing an internal offset. It never panics: every read that
// would run past the end of the slice returns a *DecodeError instead.
type Cursor struct {
	data    []byte
	offset  int
	version Version
	enc     encoding.Table
}

// NewCursor creates a Cursor over data, negotiated at the given
// protocol version and using enc to decode fixed-width strings.
func NewCursor(data []byte, version Version, enc encoding.Table) *Cursor {
	return &Cursor{data: data, version: version, enc: enc}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.offset }

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.data) - c.offset }

// Version returns the protocol version this cursor was constructed
// with, used by packet decoders for version gates.
func (c *Cursor) Version() Version { return c.version }

// Remaining returns the unread tail of the underlying slice without
// advancing the cursor. Callers must not retain it past the next
// mutation of the source buffer.
func (c *Cursor) Remaining() []byte { return c.data[c.offset:] }

// Skip advances the cursor by n bytes without interpreting them.
func (c *Cursor) Skip(n int) error {
	if _, err := c.take("skip", n); err != nil {
		return err
	}
	return nil
}

func (c *Cursor) take(field string, n int) ([]byte, error) {
	if c.offset+n > len(c.data) {
		return nil, eof(field, c.offset, n, len(c.data)-c.offset)
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

// U8 reads one byte.
func (c *Cursor) U8(field string) (uint8, error) {
	b, err := c.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads one signed byte.
func (c *Cursor) I8(field string) (int8, error) {
	v, err := c.U8(field)
	return int8(v), err
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16(field string) (uint16, error) {
	b, err := c.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32(field string) (uint32, error) {
	b, err := c.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64(field string) (uint64, error) {
	b, err := c.take(field, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes reads n raw bytes, copied so the result outlives the source
// buffer.
func (c *Cursor) Bytes(field string, n int) ([]byte, error) {
	b, err := c.take(field, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// FixedString reads exactly n bytes and decodes them as a
// NUL-terminated, NUL-padded string in the cursor's configured table
// encoding. All n bytes are consumed even if a NUL appears earlier;
// the remaining padding is simply discarded.
func (c *Cursor) FixedString(field string, n int) (string, error) {
	b, err := c.take(field, n)
	if err != nil {
		return "", err
	}
	return encoding.FixedBytesToString(b, c.enc), nil
}

// IfVersionAtLeast runs read only when the cursor's negotiated
// version is >= min. When the gate is closed, read is skipped and the
// zero value is returned with a nil error.
func IfVersionAtLeast[T any](c *Cursor, min Version, field string, read func(*Cursor) (T, error)) (T, error) {
	var zero T
	if c.version < min {
		return zero, nil
	}
	return read(c)
}

// ReadCounted reads a u16 count hint followed by that many elements,
// each produced by read.
func ReadCounted[T any](c *Cursor, field string, read func(*Cursor) (T, error)) ([]T, error) {
	count, err := c.U16(field + ".count")
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, count)
	for i := 0; i < int(count); i++ {
		item, err := read(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadUntilLength reads elements with read until the cursor's offset
// reaches end (exclusive), the length-hint pattern used by packets
// whose declared total length bounds a trailing repeated record (the
// character list is the representative example; see
// internal/protocol/character.go).
func ReadUntilLength[T any](c *Cursor, end int, read func(*Cursor) (T, error)) ([]T, error) {
	var items []T
	for c.offset < end {
		item, err := read(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
