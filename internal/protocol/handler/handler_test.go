package handler

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

const testVersion = wire.Version(20220406)

func fixedPacket(opcode uint16, payload ...byte) []byte {
	b := make([]byte, 2, 2+len(payload))
	binary.LittleEndian.PutUint16(b, opcode)
	return append(b, payload...)
}

func prefixedPacket(opcode uint16, payload []byte) []byte {
	b := make([]byte, 4, 4+len(payload))
	binary.LittleEndian.PutUint16(b[0:2], opcode)
	binary.LittleEndian.PutUint16(b[2:4], uint16(4+len(payload)))
	return append(b, payload...)
}

func TestProcessOneFixedPacket(t *testing.T) {
	h := New()
	var gotID uint32
	err := h.Register(0x1234, Fixed, 6, func(c *wire.Cursor) ([]events.Event, error) {
		id, err := c.U32("id")
		if err != nil {
			return nil, err
		}
		gotID = id
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	data := fixedPacket(0x1234, 0x01, 0x00, 0x00, 0x00)
	consumed, result, evts := h.ProcessOne(data, testVersion, encoding.ASCII)
	if result.Kind != KindOK {
		t.Fatalf("Kind = %v, want KindOK", result.Kind)
	}
	if consumed != 6 {
		t.Errorf("consumed = %d, want 6", consumed)
	}
	if evts != nil {
		t.Errorf("expected no events, got %v", evts)
	}
	if gotID != 1 {
		t.Errorf("gotID = %d, want 1", gotID)
	}
}

func TestProcessOnePrefixedPacket(t *testing.T) {
	h := New()
	err := h.Register(0x2222, Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	data := prefixedPacket(0x2222, []byte{0xAA, 0xBB, 0xCC})
	consumed, result, _ := h.ProcessOne(data, testVersion, encoding.ASCII)
	if result.Kind != KindOK {
		t.Fatalf("Kind = %v, want KindOK", result.Kind)
	}
	if consumed != len(data) {
		t.Errorf("consumed = %d, want %d", consumed, len(data))
	}
}

func TestProcessOnePartialHeaderIsCutOff(t *testing.T) {
	h := New()
	if _, result, _ := h.ProcessOne([]byte{0x01}, testVersion, encoding.ASCII); result.Kind != KindPacketCutOff {
		t.Errorf("Kind = %v, want KindPacketCutOff for 1-byte buffer", result.Kind)
	}
}

func TestProcessOnePartialPrefixedLengthIsCutOff(t *testing.T) {
	h := New()
	if err := h.Register(0x3333, Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	if _, result, _ := h.ProcessOne([]byte{0x33, 0x33}, testVersion, encoding.ASCII); result.Kind != KindPacketCutOff {
		t.Errorf("Kind = %v, want KindPacketCutOff when length field itself is missing", result.Kind)
	}
}

func TestProcessOnePartialBodyIsCutOff(t *testing.T) {
	h := New()
	if err := h.Register(0x4444, Fixed, 10, func(c *wire.Cursor) ([]events.Event, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	data := fixedPacket(0x4444, 0x01, 0x02)
	if _, result, _ := h.ProcessOne(data, testVersion, encoding.ASCII); result.Kind != KindPacketCutOff {
		t.Errorf("Kind = %v, want KindPacketCutOff for a truncated fixed packet", result.Kind)
	}
}

func TestProcessOneUnhandledOpcode(t *testing.T) {
	h := New()
	data := fixedPacket(0x9999)
	consumed, result, evts := h.ProcessOne(data, testVersion, encoding.ASCII)
	if result.Kind != KindUnhandledPacket {
		t.Errorf("Kind = %v, want KindUnhandledPacket", result.Kind)
	}
	if consumed != 0 {
		t.Errorf("consumed = %d, want 0 for an unhandled opcode", consumed)
	}
	if evts != nil {
		t.Errorf("expected no events for an unhandled opcode")
	}
}

var errDecodeBoom = errors.New("boom")

func TestProcessOneDecodeErrorIsInternalError(t *testing.T) {
	h := New()
	if err := h.Register(0x5555, Fixed, 6, func(c *wire.Cursor) ([]events.Event, error) {
		return nil, errDecodeBoom
	}); err != nil {
		t.Fatal(err)
	}
	data := fixedPacket(0x5555, 0, 0, 0, 0)
	_, result, _ := h.ProcessOne(data, testVersion, encoding.ASCII)
	if result.Kind != KindInternalError {
		t.Fatalf("Kind = %v, want KindInternalError", result.Kind)
	}
	if !errors.Is(result.Err, errDecodeBoom) {
		t.Errorf("Err = %v, want wrapped errDecodeBoom", result.Err)
	}
}

func TestRegisterDuplicateOpcode(t *testing.T) {
	h := New()
	decode := func(c *wire.Cursor) ([]events.Event, error) { return nil, nil }
	if err := h.Register(0x1111, Fixed, 2, decode); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := h.Register(0x1111, Fixed, 2, decode)
	if !errors.Is(err, ErrDuplicateHandler) {
		t.Fatalf("second Register error = %v, want ErrDuplicateHandler", err)
	}
}

func TestRegisterNoopConsumesAndEmitsNothing(t *testing.T) {
	h := New()
	if err := h.RegisterNoop(0x6666, 8); err != nil {
		t.Fatalf("RegisterNoop: %v", err)
	}
	data := fixedPacket(0x6666, 1, 2, 3, 4, 5, 6)
	consumed, result, evts := h.ProcessOne(data, testVersion, encoding.ASCII)
	if result.Kind != KindOK {
		t.Fatalf("Kind = %v, want KindOK", result.Kind)
	}
	if consumed != 8 {
		t.Errorf("consumed = %d, want 8", consumed)
	}
	if evts != nil {
		t.Errorf("expected no events from a noop handler, got %v", evts)
	}
}

func TestProcessOneDoesNotMutateInput(t *testing.T) {
	h := New()
	if err := h.Register(0x7777, Fixed, 4, func(c *wire.Cursor) ([]events.Event, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	data := fixedPacket(0x7777, 0xAB, 0xCD)
	original := append([]byte(nil), data...)
	h.ProcessOne(data, testVersion, encoding.ASCII)
	for i := range data {
		if data[i] != original[i] {
			t.Fatalf("ProcessOne mutated its input at byte %d", i)
		}
	}
}
