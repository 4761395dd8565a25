package protocol

import "github.com/Faultbox/rocore/pkg/wire"

// CharacterLoginRequest is CH_ENTER.
type CharacterLoginRequest struct {
	AccountID uint32
	LoginID1  uint32
	LoginID2  uint32
	Sex       uint8
}

func (p *CharacterLoginRequest) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpCharacterLoginRequest))
	enc.U32(p.AccountID)
	enc.U32(p.LoginID1)
	enc.U32(p.LoginID2)
	enc.Zero(2) // unused
	enc.U8(p.Sex)
	return nil
}

// CharacterKeepAlive is the character server's keep-alive: opcode,
// account_id.
type CharacterKeepAlive struct {
	AccountID uint32
}

func (p *CharacterKeepAlive) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpCharacterKeepAlive))
	enc.U32(p.AccountID)
	return nil
}

// CharacterLoginSuccess is HC_ACCEPT_ENTER: opcode, length, normal
// slot count, 3 reserved bytes, then a sequence of fixed-size
// character records bounded by the packet's declared length. No
// terminator record is looked for; a trailing remainder shorter than
// one record is ignored.
type CharacterLoginSuccess struct {
	NormalSlotCount int
	Characters      []CharacterRecord
}

// CharacterRecord is the wire shape of one character-list entry. Only
// the fields the core cares about forwarding are modeled, full
// entity/inventory domain modeling is out of scope.
type CharacterRecord struct {
	CharacterID uint32
	BaseLevel   uint32
	JobLevel    uint32
	Name        string
	Slot        uint8
}

const characterRecordSize = 4 + 4 + 4 + 24 + 1 + 3 // ids, name, slot, padding

// DecodeCharacterLoginSuccess reads the cursor positioned after the
// opcode.
func DecodeCharacterLoginSuccess(c *wire.Cursor) (*CharacterLoginSuccess, error) {
	length, err := c.U16("length")
	if err != nil {
		return nil, err
	}
	normalSlots, err := c.U8("normal_slot_count")
	if err != nil {
		return nil, err
	}
	if err := c.Skip(3); err != nil { // reserved
		return nil, err
	}

	end := int(length)
	var records []CharacterRecord
	for c.Offset() < end && end-c.Offset() >= characterRecordSize {
		rec, err := decodeCharacterRecord(c)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return &CharacterLoginSuccess{NormalSlotCount: int(normalSlots), Characters: records}, nil
}

func decodeCharacterRecord(c *wire.Cursor) (*CharacterRecord, error) {
	charID, err := c.U32("char_id")
	if err != nil {
		return nil, err
	}
	baseLevel, err := c.U32("base_level")
	if err != nil {
		return nil, err
	}
	jobLevel, err := c.U32("job_level")
	if err != nil {
		return nil, err
	}
	name, err := c.FixedString("name", 24)
	if err != nil {
		return nil, err
	}
	slot, err := c.U8("slot")
	if err != nil {
		return nil, err
	}
	if err := c.Skip(3); err != nil {
		return nil, err
	}
	return &CharacterRecord{CharacterID: charID, BaseLevel: baseLevel, JobLevel: jobLevel, Name: name, Slot: slot}, nil
}

// CharacterLoginFailed is HC_REFUSE_ENTER: opcode, reason:u8.
type CharacterLoginFailed struct {
	Reason uint8
}

func DecodeCharacterLoginFailed(c *wire.Cursor) (*CharacterLoginFailed, error) {
	reason, err := c.U8("reason")
	if err != nil {
		return nil, err
	}
	return &CharacterLoginFailed{Reason: reason}, nil
}

// RequestCharacterList is CH_REQUEST_CHARACTER_LIST: opcode only.
type RequestCharacterList struct{}

func (RequestCharacterList) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRequestCharacterList))
	return nil
}

// RequestCharacterListSuccess wraps the same wire shape as
// CharacterLoginSuccess's record list, delivered on explicit refresh
// requests.
type RequestCharacterListSuccess = CharacterLoginSuccess

// DecodeRequestCharacterListSuccess reuses the login-success decoder
// since both packets share a record list bounded by a declared
// length.
var DecodeRequestCharacterListSuccess = DecodeCharacterLoginSuccess

// SelectCharacter is CH_SELECT_CHAR: opcode, slot:u8.
type SelectCharacter struct {
	Slot uint8
}

func (p *SelectCharacter) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpSelectCharacter))
	enc.U8(p.Slot)
	return nil
}

// CharacterSelectionSuccess is HC_NOTIFY_ZONESVR: opcode, char_id,
// map_name:16, map_ip:4, map_port:2.
type CharacterSelectionSuccess struct {
	CharacterID uint32
	MapName     string
	MapServerIP [4]byte
	MapPort     uint16
}

func DecodeCharacterSelectionSuccess(c *wire.Cursor) (*CharacterSelectionSuccess, error) {
	charID, err := c.U32("char_id")
	if err != nil {
		return nil, err
	}
	mapName, err := c.FixedString("map_name", 16)
	if err != nil {
		return nil, err
	}
	ip, err := c.Bytes("map_ip", 4)
	if err != nil {
		return nil, err
	}
	port, err := c.U16("map_port")
	if err != nil {
		return nil, err
	}
	var ipArr [4]byte
	copy(ipArr[:], ip)
	return &CharacterSelectionSuccess{CharacterID: charID, MapName: mapName, MapServerIP: ipArr, MapPort: port}, nil
}

// CharacterSelectionFailed carries a single reason byte.
type CharacterSelectionFailed struct {
	Reason uint8
}

func DecodeCharacterSelectionFailed(c *wire.Cursor) (*CharacterSelectionFailed, error) {
	reason, err := c.U8("reason")
	if err != nil {
		return nil, err
	}
	return &CharacterSelectionFailed{Reason: reason}, nil
}

// MapServerUnavailable carries no payload beyond the opcode.
type MapServerUnavailable struct{}

func DecodeMapServerUnavailable(c *wire.Cursor) (*MapServerUnavailable, error) {
	return &MapServerUnavailable{}, nil
}

// CreateCharacter is CH_MAKE_CHAR.
type CreateCharacter struct {
	Name      string
	Slot      uint8
	HairColor uint16
	HairStyle uint16
	StartJob  uint16
	Sex       uint8
}

func (p *CreateCharacter) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpCreateCharacter))
	if err := enc.FixedString("name", p.Name, 24); err != nil {
		return err
	}
	enc.U8(p.Slot)
	enc.U16(p.HairColor)
	enc.U16(p.HairStyle)
	enc.U16(p.StartJob)
	enc.U8(p.Sex)
	return nil
}

// CreateCharacterSuccess carries the newly created character's
// record.
type CreateCharacterSuccess struct {
	Character CharacterRecord
}

func DecodeCreateCharacterSuccess(c *wire.Cursor) (*CreateCharacterSuccess, error) {
	rec, err := decodeCharacterRecord(c)
	if err != nil {
		return nil, err
	}
	return &CreateCharacterSuccess{Character: *rec}, nil
}

// CreateCharacterFailed carries a single reason byte.
type CreateCharacterFailed struct {
	Reason uint8
}

func DecodeCreateCharacterFailed(c *wire.Cursor) (*CreateCharacterFailed, error) {
	reason, err := c.U8("reason")
	if err != nil {
		return nil, err
	}
	return &CreateCharacterFailed{Reason: reason}, nil
}

// DeleteCharacter is CH_DELETE_CHAR: opcode, char_id, email:40.
type DeleteCharacter struct {
	CharacterID uint32
	Email       string
}

func (p *DeleteCharacter) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpDeleteCharacter))
	enc.U32(p.CharacterID)
	return enc.FixedString("email", p.Email, 40)
}

type DeleteCharacterSuccess struct{}

func DecodeDeleteCharacterSuccess(c *wire.Cursor) (*DeleteCharacterSuccess, error) {
	return &DeleteCharacterSuccess{}, nil
}

type DeleteCharacterFailed struct {
	Reason uint8
}

func DecodeDeleteCharacterFailed(c *wire.Cursor) (*DeleteCharacterFailed, error) {
	reason, err := c.U8("reason")
	if err != nil {
		return nil, err
	}
	return &DeleteCharacterFailed{Reason: reason}, nil
}

// SwitchCharacterSlot is the client's slot-swap request.
type SwitchCharacterSlot struct {
	OriginSlot      uint16
	DestinationSlot uint16
}

func (p *SwitchCharacterSlot) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpSwitchCharacterSlot))
	enc.U16(p.OriginSlot)
	enc.U16(p.DestinationSlot)
	return nil
}

// SwitchCharacterSlotResponse carries a success/failure byte.
type SwitchCharacterSlotResponse struct {
	Success bool
}

func DecodeSwitchCharacterSlotResponse(c *wire.Cursor) (*SwitchCharacterSlotResponse, error) {
	status, err := c.U8("status")
	if err != nil {
		return nil, err
	}
	return &SwitchCharacterSlotResponse{Success: status == 0}, nil
}
