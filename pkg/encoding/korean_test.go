package encoding

import "testing"

func TestFixedBytesToStringStopsAtNUL(t *testing.T) {
	data := []byte{'B', 'o', 'b', 0, 'X', 'X', 'X'}
	got := FixedBytesToString(data, ASCII)
	if got != "Bob" {
		t.Fatalf("expected %q, got %q", "Bob", got)
	}
}

func TestStringToFixedBytesPadsWithNUL(t *testing.T) {
	got := StringToFixedBytes("Bob", 8, ASCII)
	want := []byte{'B', 'o', 'b', 0, 0, 0, 0, 0}
	if string(got) != string(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStringToFixedBytesTooLongReturnsNil(t *testing.T) {
	if got := StringToFixedBytes("way too long for this field", 4, ASCII); got != nil {
		t.Fatalf("expected nil for oversized string, got %v", got)
	}
}

func TestRoundTripASCII(t *testing.T) {
	encoded := StringToFixedBytes("testuser", 24, ASCII)
	if encoded == nil {
		t.Fatal("unexpected nil encoding")
	}
	if got := FixedBytesToString(encoded, ASCII); got != "testuser" {
		t.Fatalf("expected %q, got %q", "testuser", got)
	}
}
