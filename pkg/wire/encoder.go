package wire

import (
	"encoding/binary"

	"github.com/Faultbox/rocore/pkg/encoding"
)

// Encoder appends typed values to a growable byte buffer, the write
// side of Cursor.
type Encoder struct {
	buf     []byte
	version Version
	enc     encoding.Table
}

// NewEncoder creates an Encoder targeting version, using enc to
// encode fixed-width strings.
func NewEncoder(version Version, enc encoding.Table) *Encoder {
	return &Encoder{version: version, enc: enc}
}

// Version returns the protocol version this encoder targets.
func (e *Encoder) Version() Version { return e.version }

// Bytes returns the accumulated buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

// U8 appends one byte.
func (e *Encoder) U8(v uint8) { e.buf = append(e.buf, v) }

// I8 appends one signed byte.
func (e *Encoder) I8(v int8) { e.U8(uint8(v)) }

// U16 appends a little-endian uint16.
func (e *Encoder) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// U32 appends a little-endian uint32.
func (e *Encoder) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// U64 appends a little-endian uint64.
func (e *Encoder) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// RawBytes appends raw bytes verbatim.
func (e *Encoder) RawBytes(b []byte) { e.buf = append(e.buf, b...) }

// Zero appends n zero bytes, used for reserved/unknown padding.
func (e *Encoder) Zero(n int) {
	for i := 0; i < n; i++ {
		e.buf = append(e.buf, 0)
	}
}

// FixedString encodes s into exactly n bytes, NUL-padded on the
// right. It fails with StringTooLong if the encoded form of s does
// not fit in n bytes.
func (e *Encoder) FixedString(field string, s string, n int) error {
	encoded := encoding.StringToFixedBytes(s, n, e.enc)
	if encoded == nil {
		return stringTooLong(field, n, len(s))
	}
	e.buf = append(e.buf, encoded...)
	return nil
}

// PatchU16 overwrites the u16 at byte offset off with v, used to
// backfill a length-prefix field once the packet's final size is
// known. The length-prefixed packets in internal/protocol compute
// their length up front and do not call it.
func (e *Encoder) PatchU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(e.buf[off:off+2], v)
}
