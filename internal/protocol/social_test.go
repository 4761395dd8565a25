package protocol

import (
	"testing"

	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

func TestDialogPacketsEncode(t *testing.T) {
	cases := []struct {
		name string
		pkt  interface {
			Encode(*wire.Encoder) error
		}
		wantOp Opcode
	}{
		{"start", &StartDialog{NPCID: 1}, OpStartDialog},
		{"next", &NextDialog{NPCID: 1}, OpNextDialog},
		{"close", &CloseDialog{NPCID: 1}, OpCloseDialog},
		{"choose", &ChooseDialogOption{NPCID: 1, Option: 2}, OpChooseDialogOption},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := wire.NewEncoder(Version20220406, encoding.ASCII)
			if err := tc.pkt.Encode(enc); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
			op, err := c.U16("opcode")
			if err != nil {
				t.Fatal(err)
			}
			if Opcode(op) != tc.wantOp {
				t.Errorf("opcode = %#x, want %#x", op, tc.wantOp)
			}
		})
	}
}

func TestDecodeNpcDialogLine(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc.U16(uint16(OpNpcDialog))
	text := "Welcome, traveler."
	length := 8 + len(text)
	enc.U16(uint16(length))
	enc.U32(123)
	enc.RawBytes([]byte(text))

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	line, err := DecodeNpcDialogLine(c)
	if err != nil {
		t.Fatalf("DecodeNpcDialogLine: %v", err)
	}
	if line.NPCID != 123 || line.Text != text {
		t.Errorf("unexpected fields: %+v", line)
	}
}

func TestUseSkillAtIDEncode(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&UseSkillAtID{SkillLevel: 5, SkillID: 28, TargetID: 900}).Encode(enc)

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	level, _ := c.U16("level")
	skillID, _ := c.U16("skill_id")
	targetID, _ := c.U32("target_id")
	if level != 5 || skillID != 28 || targetID != 900 {
		t.Errorf("unexpected fields: level=%d skill=%d target=%d", level, skillID, targetID)
	}
}

func TestUseSkillOnGroundEncode(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&UseSkillOnGround{SkillLevel: 3, SkillID: 17, X: 40, Y: 60}).Encode(enc)

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	level, _ := c.U16("level")
	skillID, _ := c.U16("skill_id")
	x, _ := c.U16("x")
	y, _ := c.U16("y")
	if level != 3 || skillID != 17 || x != 40 || y != 60 {
		t.Errorf("unexpected fields: level=%d skill=%d x=%d y=%d", level, skillID, x, y)
	}
}

func TestStartAndEndUseSkillEncode(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&StartUseSkill{SkillID: 11, SkillLevel: 2, TargetID: 55}).Encode(enc)
	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	skillID, _ := c.U16("skill_id")
	level, _ := c.U16("level")
	targetID, _ := c.U32("target_id")
	if skillID != 11 || level != 2 || targetID != 55 {
		t.Errorf("StartUseSkill fields wrong: %d %d %d", skillID, level, targetID)
	}

	enc2 := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&EndUseSkill{SkillID: 11}).Encode(enc2)
	c2 := wire.NewCursor(enc2.Bytes(), Version20220406, encoding.ASCII)
	if err := c2.Skip(2); err != nil {
		t.Fatal(err)
	}
	skillID2, _ := c2.U16("skill_id")
	if skillID2 != 11 {
		t.Errorf("EndUseSkill.SkillID = %d, want 11", skillID2)
	}
}

func TestEquipUnequipRoundTrip(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc.U16(uint16(OpRequestEquipItemStatus))
	enc.U16(3)
	enc.U32(0x0010)
	enc.U8(0)

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	status, err := DecodeRequestEquipItemStatus(c)
	if err != nil {
		t.Fatalf("DecodeRequestEquipItemStatus: %v", err)
	}
	if status.ItemIndex != 3 || status.EquipPosition != 0x0010 || status.Result != 0 {
		t.Errorf("unexpected fields: %+v", status)
	}

	encUnequip := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&RequestUnequipItem{ItemIndex: 3}).Encode(encUnequip)
	c2 := wire.NewCursor(encUnequip.Bytes(), Version20220406, encoding.ASCII)
	if err := c2.Skip(2); err != nil {
		t.Fatal(err)
	}
	index, _ := c2.U16("item_index")
	if index != 3 {
		t.Errorf("RequestUnequipItem.ItemIndex = %d, want 3", index)
	}
}

func TestFriendPackets(t *testing.T) {
	encAdd := wire.NewEncoder(Version20220406, encoding.ASCII)
	if err := (&AddFriend{Name: "buddy"}).Encode(encAdd); err != nil {
		t.Fatalf("AddFriend.Encode: %v", err)
	}
	cAdd := wire.NewCursor(encAdd.Bytes(), Version20220406, encoding.ASCII)
	if err := cAdd.Skip(2); err != nil {
		t.Fatal(err)
	}
	name, err := cAdd.FixedString("name", 24)
	if err != nil || name != "buddy" {
		t.Errorf("AddFriend name = %q, %v", name, err)
	}

	encRemove := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&RemoveFriend{AccountID: 1, CharacterID: 2}).Encode(encRemove)
	cRemove := wire.NewCursor(encRemove.Bytes(), Version20220406, encoding.ASCII)
	if err := cRemove.Skip(2); err != nil {
		t.Fatal(err)
	}
	accountID, _ := cRemove.U32("account_id")
	characterID, _ := cRemove.U32("character_id")
	if accountID != 1 || characterID != 2 {
		t.Errorf("RemoveFriend fields wrong: %d %d", accountID, characterID)
	}

	encResp := wire.NewEncoder(Version20220406, encoding.ASCII)
	(&FriendRequestResponse{AccountID: 1, CharacterID: 2, Accept: true}).Encode(encResp)
	cResp := wire.NewCursor(encResp.Bytes(), Version20220406, encoding.ASCII)
	if err := cResp.Skip(2); err != nil {
		t.Fatal(err)
	}
	if err := cResp.Skip(8); err != nil {
		t.Fatal(err)
	}
	accept, _ := cResp.U8("accept")
	if accept != 1 {
		t.Errorf("FriendRequestResponse accept byte = %d, want 1", accept)
	}
}

func TestDecodeFriendList(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc.U16(uint16(OpFriendList))
	length := 4 + 2*friendEntrySize
	enc.U16(uint16(length))
	for i := 0; i < 2; i++ {
		enc.U32(uint32(10 + i))
		enc.U32(uint32(20 + i))
		if err := enc.FixedString("name", "pal", 24); err != nil {
			t.Fatal(err)
		}
	}

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	list, err := DecodeFriendList(c)
	if err != nil {
		t.Fatalf("DecodeFriendList: %v", err)
	}
	if len(list.Friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(list.Friends))
	}
	if list.Friends[0].AccountID != 10 || list.Friends[1].AccountID != 11 {
		t.Errorf("unexpected friend ids: %+v", list.Friends)
	}
}

func TestDecodeFriendRequestAndRemoved(t *testing.T) {
	enc := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc.U16(uint16(OpFriendRequest))
	enc.U32(5)
	enc.U32(6)
	if err := enc.FixedString("name", "asker", 24); err != nil {
		t.Fatal(err)
	}

	c := wire.NewCursor(enc.Bytes(), Version20220406, encoding.ASCII)
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}
	req, err := DecodeFriendRequest(c)
	if err != nil {
		t.Fatalf("DecodeFriendRequest: %v", err)
	}
	if req.AccountID != 5 || req.CharacterID != 6 || req.Name != "asker" {
		t.Errorf("unexpected fields: %+v", req)
	}

	enc2 := wire.NewEncoder(Version20220406, encoding.ASCII)
	enc2.U16(uint16(OpFriendRemoved))
	enc2.U32(5)
	enc2.U32(6)
	c2 := wire.NewCursor(enc2.Bytes(), Version20220406, encoding.ASCII)
	if err := c2.Skip(2); err != nil {
		t.Fatal(err)
	}
	removed, err := DecodeFriendRemoved(c2)
	if err != nil {
		t.Fatalf("DecodeFriendRemoved: %v", err)
	}
	if removed.AccountID != 5 || removed.CharacterID != 6 {
		t.Errorf("unexpected fields: %+v", removed)
	}
}
