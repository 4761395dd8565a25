package protocol

import "github.com/Faultbox/rocore/pkg/wire"

// StartDialog is CZ_START_DIALOG: opcode, npc_id.
type StartDialog struct {
	NPCID uint32
}

func (p *StartDialog) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpStartDialog))
	enc.U32(p.NPCID)
	return nil
}

// NextDialog is CZ_REQ_NEXT_SCRIPT: opcode, npc_id.
type NextDialog struct {
	NPCID uint32
}

func (p *NextDialog) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpNextDialog))
	enc.U32(p.NPCID)
	return nil
}

// CloseDialog is CZ_CLOSE_DIALOG: opcode, npc_id.
type CloseDialog struct {
	NPCID uint32
}

func (p *CloseDialog) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpCloseDialog))
	enc.U32(p.NPCID)
	return nil
}

// ChooseDialogOption is CZ_CHOOSE_MENU: opcode, npc_id, option:i8.
type ChooseDialogOption struct {
	NPCID  uint32
	Option int8
}

func (p *ChooseDialogOption) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpChooseDialogOption))
	enc.U32(p.NPCID)
	enc.I8(p.Option)
	return nil
}

// NpcDialogLine is ZC_SAY_DIALOG: opcode, length:u16, text.
type NpcDialogLine struct {
	NPCID uint32
	Text  string
}

func DecodeNpcDialogLine(c *wire.Cursor) (*NpcDialogLine, error) {
	length, err := c.U16("length")
	if err != nil {
		return nil, err
	}
	npcID, err := c.U32("npc_id")
	if err != nil {
		return nil, err
	}
	textLen := int(length) - 8
	if textLen < 0 {
		return nil, &wire.DecodeError{Kind: wire.UnexpectedEndOfStream, Field: "text", Offset: c.Offset()}
	}
	text, err := c.FixedString("text", textLen)
	if err != nil {
		return nil, err
	}
	return &NpcDialogLine{NPCID: npcID, Text: text}, nil
}

// NpcNextButton is ZC_WAIT_DIALOG: opcode, npc_id.
type NpcNextButton struct {
	NPCID uint32
}

func DecodeNpcNextButton(c *wire.Cursor) (*NpcNextButton, error) {
	npcID, err := c.U32("npc_id")
	if err != nil {
		return nil, err
	}
	return &NpcNextButton{NPCID: npcID}, nil
}

// NpcCloseButton is ZC_CLOSE_DIALOG: opcode, npc_id.
type NpcCloseButton struct {
	NPCID uint32
}

func DecodeNpcCloseButton(c *wire.Cursor) (*NpcCloseButton, error) {
	npcID, err := c.U32("npc_id")
	if err != nil {
		return nil, err
	}
	return &NpcCloseButton{NPCID: npcID}, nil
}

// NpcChoiceButtons is ZC_MENU_LIST: opcode, length:u16, npc_id,
// colon-separated option text.
type NpcChoiceButtons struct {
	NPCID uint32
	Text  string
}

func DecodeNpcChoiceButtons(c *wire.Cursor) (*NpcChoiceButtons, error) {
	length, err := c.U16("length")
	if err != nil {
		return nil, err
	}
	npcID, err := c.U32("npc_id")
	if err != nil {
		return nil, err
	}
	textLen := int(length) - 8
	if textLen < 0 {
		return nil, &wire.DecodeError{Kind: wire.UnexpectedEndOfStream, Field: "text", Offset: c.Offset()}
	}
	text, err := c.FixedString("text", textLen)
	if err != nil {
		return nil, err
	}
	return &NpcChoiceButtons{NPCID: npcID, Text: text}, nil
}

// UseSkillAtID is CZ_USE_SKILL: opcode, skill_level:u16, skill_id:u16,
// target_id.
type UseSkillAtID struct {
	SkillLevel uint16
	SkillID    uint16
	TargetID   uint32
}

func (p *UseSkillAtID) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpUseSkillAtID))
	enc.U16(p.SkillLevel)
	enc.U16(p.SkillID)
	enc.U32(p.TargetID)
	return nil
}

// UseSkillOnGround is CZ_USE_SKILL_TOGROUND: opcode, skill_level:u16,
// skill_id:u16, x:u16, y:u16, unused:1.
type UseSkillOnGround struct {
	SkillLevel uint16
	SkillID    uint16
	X, Y       int
}

func (p *UseSkillOnGround) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpUseSkillOnGround))
	enc.U16(p.SkillLevel)
	enc.U16(p.SkillID)
	enc.U16(uint16(p.X))
	enc.U16(uint16(p.Y))
	enc.U8(0)
	return nil
}

// StartUseSkill begins a channeled skill: opcode, skill_id:u16,
// skill_level:u16, target_id.
type StartUseSkill struct {
	SkillID    uint16
	SkillLevel uint16
	TargetID   uint32
}

func (p *StartUseSkill) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpStartUseSkill))
	enc.U16(p.SkillID)
	enc.U16(p.SkillLevel)
	enc.U32(p.TargetID)
	return nil
}

// EndUseSkill stops a channeled skill: opcode, skill_id:u16.
type EndUseSkill struct {
	SkillID uint16
}

func (p *EndUseSkill) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpEndUseSkill))
	enc.U16(p.SkillID)
	return nil
}

// EquipPosition mirrors the bitmask rAthena uses for equipment slots.
type EquipPosition uint32

// RequestEquipItem is CZ_REQ_WEAR_EQUIP: opcode, item_index:u16,
// equip_position:u32.
type RequestEquipItem struct {
	ItemIndex     uint16
	EquipPosition EquipPosition
}

func (p *RequestEquipItem) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRequestEquipItem))
	enc.U16(p.ItemIndex)
	enc.U32(uint32(p.EquipPosition))
	return nil
}

// RequestEquipItemStatus is ZC_REQ_WEAR_EQUIP_ACK.
type RequestEquipItemStatus struct {
	ItemIndex     uint16
	EquipPosition EquipPosition
	Result        uint8
}

func DecodeRequestEquipItemStatus(c *wire.Cursor) (*RequestEquipItemStatus, error) {
	index, err := c.U16("item_index")
	if err != nil {
		return nil, err
	}
	pos, err := c.U32("equip_position")
	if err != nil {
		return nil, err
	}
	result, err := c.U8("result")
	if err != nil {
		return nil, err
	}
	return &RequestEquipItemStatus{ItemIndex: index, EquipPosition: EquipPosition(pos), Result: result}, nil
}

// RequestUnequipItem is CZ_REQ_TAKEOFF_EQUIP: opcode, item_index:u16.
type RequestUnequipItem struct {
	ItemIndex uint16
}

func (p *RequestUnequipItem) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRequestUnequipItem))
	enc.U16(p.ItemIndex)
	return nil
}

// RequestUnequipItemStatus is ZC_REQ_TAKEOFF_EQUIP_ACK.
type RequestUnequipItemStatus struct {
	ItemIndex     uint16
	EquipPosition EquipPosition
	Result        uint8
}

func DecodeRequestUnequipItemStatus(c *wire.Cursor) (*RequestUnequipItemStatus, error) {
	index, err := c.U16("item_index")
	if err != nil {
		return nil, err
	}
	pos, err := c.U32("equip_position")
	if err != nil {
		return nil, err
	}
	result, err := c.U8("result")
	if err != nil {
		return nil, err
	}
	return &RequestUnequipItemStatus{ItemIndex: index, EquipPosition: EquipPosition(pos), Result: result}, nil
}

// AddFriend is CZ_ADD_FRIENDS: opcode, name:24.
type AddFriend struct {
	Name string
}

func (p *AddFriend) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpAddFriend))
	return enc.FixedString("name", p.Name, 24)
}

// RemoveFriend is CZ_DELETE_FRIENDS: opcode, account_id, character_id.
type RemoveFriend struct {
	AccountID   uint32
	CharacterID uint32
}

func (p *RemoveFriend) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRemoveFriend))
	enc.U32(p.AccountID)
	enc.U32(p.CharacterID)
	return nil
}

// FriendEntry is one entry in FriendList.
type FriendEntry struct {
	AccountID   uint32
	CharacterID uint32
	Name        string
}

const friendEntrySize = 4 + 4 + 24

// FriendList is ZC_FRIENDS_LIST: opcode, length:u16, entries.
type FriendList struct {
	Friends []FriendEntry
}

func DecodeFriendList(c *wire.Cursor) (*FriendList, error) {
	length, err := c.U16("length")
	if err != nil {
		return nil, err
	}
	end := int(length)
	var friends []FriendEntry
	for c.Offset() < end && end-c.Offset() >= friendEntrySize {
		accountID, err := c.U32("account_id")
		if err != nil {
			return nil, err
		}
		characterID, err := c.U32("character_id")
		if err != nil {
			return nil, err
		}
		name, err := c.FixedString("name", 24)
		if err != nil {
			return nil, err
		}
		friends = append(friends, FriendEntry{AccountID: accountID, CharacterID: characterID, Name: name})
	}
	return &FriendList{Friends: friends}, nil
}

// FriendRequest is ZC_REQ_ADD_FRIENDS: opcode, account_id,
// character_id, name:24.
type FriendRequest struct {
	AccountID   uint32
	CharacterID uint32
	Name        string
}

func DecodeFriendRequest(c *wire.Cursor) (*FriendRequest, error) {
	accountID, err := c.U32("account_id")
	if err != nil {
		return nil, err
	}
	characterID, err := c.U32("character_id")
	if err != nil {
		return nil, err
	}
	name, err := c.FixedString("name", 24)
	if err != nil {
		return nil, err
	}
	return &FriendRequest{AccountID: accountID, CharacterID: characterID, Name: name}, nil
}

// FriendRequestResponse is CZ_ACK_REQ_ADD_FRIENDS: opcode, account_id,
// character_id, accept:u8.
type FriendRequestResponse struct {
	AccountID   uint32
	CharacterID uint32
	Accept      bool
}

func (p *FriendRequestResponse) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpFriendRequestResponse))
	enc.U32(p.AccountID)
	enc.U32(p.CharacterID)
	if p.Accept {
		enc.U8(1)
	} else {
		enc.U8(0)
	}
	return nil
}

// FriendRequestResult is ZC_ACK_REQ_ADD_FRIENDS: opcode, account_id,
// character_id, result:u8.
type FriendRequestResult struct {
	AccountID   uint32
	CharacterID uint32
	Result      uint8
}

func DecodeFriendRequestResult(c *wire.Cursor) (*FriendRequestResult, error) {
	accountID, err := c.U32("account_id")
	if err != nil {
		return nil, err
	}
	characterID, err := c.U32("character_id")
	if err != nil {
		return nil, err
	}
	result, err := c.U8("result")
	if err != nil {
		return nil, err
	}
	return &FriendRequestResult{AccountID: accountID, CharacterID: characterID, Result: result}, nil
}

// FriendRemoved is ZC_FRIENDS_STATE: opcode, account_id, character_id.
type FriendRemoved struct {
	AccountID   uint32
	CharacterID uint32
}

func DecodeFriendRemoved(c *wire.Cursor) (*FriendRemoved, error) {
	accountID, err := c.U32("account_id")
	if err != nil {
		return nil, err
	}
	characterID, err := c.U32("character_id")
	if err != nil {
		return nil, err
	}
	return &FriendRemoved{AccountID: accountID, CharacterID: characterID}, nil
}
