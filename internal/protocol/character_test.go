package protocol

import (
	"testing"

	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

func TestCharacterLoginRequestEncode(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	req := &CharacterLoginRequest{AccountID: 7, LoginID1: 8, LoginID2: 9, Sex: 1}
	if err := req.Encode(enc); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	accountID, _ := c.U32("account_id")
	loginID1, _ := c.U32("login_id1")
	loginID2, _ := c.U32("login_id2")
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	sex, _ := c.U8("sex")
	if accountID != 7 || loginID1 != 8 || loginID2 != 9 || sex != 1 {
		t.Errorf("unexpected fields: account=%d login1=%d login2=%d sex=%d", accountID, loginID1, loginID2, sex)
	}
}

func TestDecodeCharacterLoginSuccess(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc.U16(uint16(OpCharacterLoginAccept))
	length := 2 + 2 + 1 + 3 + 2*characterRecordSize
	enc.U16(uint16(length))
	enc.U8(9) // normal slot count
	enc.Zero(3)
	for i := 0; i < 2; i++ {
		enc.U32(uint32(100 + i))
		enc.U32(50)
		enc.U32(50)
		if err := enc.FixedString("name", "Hero", 24); err != nil {
			t.Fatal(err)
		}
		enc.U8(uint8(i))
		enc.Zero(3)
	}

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	success, err := DecodeCharacterLoginSuccess(c)
	if err != nil {
		t.Fatalf("DecodeCharacterLoginSuccess: %v", err)
	}
	if success.NormalSlotCount != 9 {
		t.Errorf("NormalSlotCount = %d, want 9", success.NormalSlotCount)
	}
	if len(success.Characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(success.Characters))
	}
	if success.Characters[0].CharacterID != 100 || success.Characters[1].CharacterID != 101 {
		t.Errorf("unexpected character ids: %+v", success.Characters)
	}
}

func TestDecodeCharacterSelectionSuccess(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc.U16(uint16(OpCharacterSelectionSuccess))
	enc.U32(42)
	if err := enc.FixedString("map_name", "prontera.gat", 16); err != nil {
		t.Fatal(err)
	}
	enc.RawBytes([]byte{10, 0, 0, 1})
	enc.U16(5121)

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	sel, err := DecodeCharacterSelectionSuccess(c)
	if err != nil {
		t.Fatalf("DecodeCharacterSelectionSuccess: %v", err)
	}
	if sel.CharacterID != 42 || sel.MapName != "prontera.gat" || sel.MapPort != 5121 {
		t.Errorf("unexpected fields: %+v", sel)
	}
}

func TestSwitchCharacterSlotEncode(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&SwitchCharacterSlot{OriginSlot: 1, DestinationSlot: 3}).Encode(enc)

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	origin, _ := c.U16("origin")
	dest, _ := c.U16("destination")
	if origin != 1 || dest != 3 {
		t.Errorf("origin=%d dest=%d, want 1,3", origin, dest)
	}
}
