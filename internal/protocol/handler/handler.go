// Package handler implements an opcode-addressed packet dispatch
// table: one Handler per server role, each opcode bound to a decoder
// that turns wire bytes into zero or more domain events.
package handler

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

// LengthKind says how a registered opcode's total packet length
// (including the 2-byte opcode header) is determined.
type LengthKind int

const (
	// Fixed means every packet of this opcode has the same total
	// length, known at registration time.
	Fixed LengthKind = iota
	// Prefixed means a little-endian u16 immediately follows the
	// opcode and gives the packet's total length.
	Prefixed
)

// Decoder consumes a packet's payload (the cursor is positioned right
// after the 2-byte opcode) and produces the events it represents. A
// packet that is only a liveness probe (no information for the game
// loop) returns a nil slice and nil error.
type Decoder func(c *wire.Cursor) ([]events.Event, error)

// ErrDuplicateHandler is returned by Register when an opcode is
// already bound within this Handler.
var ErrDuplicateHandler = errors.New("handler: opcode already registered")

type registration struct {
	length   LengthKind
	fixedLen int
	decode   Decoder
}

// Handler owns the opcode->decoder table for one server role.
type Handler struct {
	regs map[uint16]registration
}

// New creates an empty Handler.
func New() *Handler {
	return &Handler{regs: make(map[uint16]registration)}
}

// Register binds a decoder to opcode. For Fixed packets, fixedLen is
// the total packet length including the 2-byte opcode; it is ignored
// for Prefixed packets, whose length is read from the wire. Register
// fails with ErrDuplicateHandler if opcode is already bound.
func (h *Handler) Register(opcode uint16, length LengthKind, fixedLen int, decode Decoder) error {
	if _, exists := h.regs[opcode]; exists {
		return fmt.Errorf("%w: opcode 0x%04X", ErrDuplicateHandler, opcode)
	}
	h.regs[opcode] = registration{length: length, fixedLen: fixedLen, decode: decode}
	return nil
}

// RegisterNoop binds opcode to a decoder that consumes exactly
// fixedLen bytes and produces no events, the representation for
// acknowledged-but-uninteresting packets (heartbeats, no-op status
// updates).
func (h *Handler) RegisterNoop(opcode uint16, fixedLen int) error {
	return h.Register(opcode, Fixed, fixedLen, func(c *wire.Cursor) ([]events.Event, error) {
		return nil, c.Skip(fixedLen - 2)
	})
}

// Kind enumerates the outcomes of ProcessOne.
type Kind int

const (
	KindOK Kind = iota
	KindPacketCutOff
	KindUnhandledPacket
	KindInternalError
)

// Result is the outcome of one ProcessOne call.
type Result struct {
	Kind Kind
	Err  error // set only when Kind == KindInternalError
}

// ProcessOne attempts to decode exactly one packet from the head of
// data. It never mutates data. consumed is the number of bytes
// belonging to the decoded packet; callers advance their read
// position by consumed only when Kind == KindOK; for every other
// Kind, consumed is 0 and the caller applies its own recovery policy
// instead (retain-and-wait for PacketCutOff, reset the whole buffer
// for the other two).
func (h *Handler) ProcessOne(data []byte, version wire.Version, table encoding.Table) (consumed int, result Result, evts []events.Event) {
	if len(data) < 2 {
		return 0, Result{Kind: KindPacketCutOff}, nil
	}

	opcode := binary.LittleEndian.Uint16(data[0:2])
	reg, ok := h.regs[opcode]
	if !ok {
		return 0, Result{Kind: KindUnhandledPacket}, nil
	}

	totalLen := reg.fixedLen
	if reg.length == Prefixed {
		if len(data) < 4 {
			return 0, Result{Kind: KindPacketCutOff}, nil
		}
		totalLen = int(binary.LittleEndian.Uint16(data[2:4]))
	}

	if len(data) < totalLen {
		return 0, Result{Kind: KindPacketCutOff}, nil
	}

	cursor := wire.NewCursor(data[:totalLen], version, table)
	if err := cursor.Skip(2); err != nil {
		return 0, Result{Kind: KindInternalError, Err: err}, nil
	}

	decoded, err := reg.decode(cursor)
	if err != nil {
		return 0, Result{Kind: KindInternalError, Err: err}, nil
	}

	return totalLen, Result{Kind: KindOK}, decoded
}
