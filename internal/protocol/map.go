package protocol

import "github.com/Faultbox/rocore/pkg/wire"

// MapLoginRequest is CZ_ENTER: opcode, account_id,
// char_id, login_id1, client_tick, sex.
type MapLoginRequest struct {
	AccountID   uint32
	CharacterID uint32
	LoginID1    uint32
	ClientTick  uint32
	Sex         uint8
}

func (p *MapLoginRequest) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpMapLoginRequest))
	enc.U32(p.AccountID)
	enc.U32(p.CharacterID)
	enc.U32(p.LoginID1)
	enc.U32(p.ClientTick)
	enc.U8(p.Sex)
	return nil
}

// MapLoginSuccess is ZC_ACCEPT_ENTER: opcode, client_tick:u32,
// position:3 bytes packed, unknown:2 bytes. Decoding this packet is
// what produces the SetPlayerPosition event.
type MapLoginSuccess struct {
	ClientTick uint32
	X, Y       int
	Dir        uint8
}

func DecodeMapLoginSuccess(c *wire.Cursor) (*MapLoginSuccess, error) {
	tick, err := c.U32("client_tick")
	if err != nil {
		return nil, err
	}
	posBytes, err := c.Bytes("position", 3)
	if err != nil {
		return nil, err
	}
	if err := c.Skip(2); err != nil { // unknown
		return nil, err
	}
	var pos [3]byte
	copy(pos[:], posBytes)
	x, y, dir := DecodePosition(pos)
	return &MapLoginSuccess{ClientTick: tick, X: x, Y: y, Dir: dir}, nil
}

// MapLoaded is CZ_NOTIFY_ACTORINIT: opcode only, sent once client-side
// loading completes.
type MapLoaded struct{}

func (MapLoaded) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpMapLoaded))
	return nil
}

// MoveRequest is CZ_REQUEST_MOVE: opcode, packed destination (direction
// bits unused, always 0).
type MoveRequest struct {
	X, Y int
}

func (p *MoveRequest) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRequestMove))
	pos := EncodePosition(p.X, p.Y, 0)
	enc.RawBytes(pos[:])
	return nil
}

// Action enumerates CZ_REQUEST_ACT's action byte.
type Action uint8

const (
	ActionAttack Action = iota
	ActionSit
	ActionStand
)

// RequestAction is CZ_REQUEST_ACT: opcode, target_id, action.
type RequestAction struct {
	TargetID uint32
	Action   Action
}

func (p *RequestAction) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRequestAction))
	enc.U32(p.TargetID)
	enc.U8(uint8(p.Action))
	return nil
}

// GlobalMessage is CZ_REQUEST_CHAT: opcode, length:u16, text
// (NUL-terminated, length-4 bytes).
type GlobalMessage struct {
	Text string
}

func (p *GlobalMessage) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpGlobalMessage))
	length := 4 + len(p.Text) + 1
	enc.U16(uint16(length))
	enc.RawBytes([]byte(p.Text))
	enc.U8(0)
	return nil
}

// BroadcastMessage is a server-originated chat line with no sender
// context.
type BroadcastMessage struct {
	Text string
}

func DecodeBroadcastMessage(c *wire.Cursor) (*BroadcastMessage, error) {
	length, err := c.U16("length")
	if err != nil {
		return nil, err
	}
	textLen := int(length) - 4
	if textLen < 0 {
		return nil, &wire.DecodeError{Kind: wire.UnexpectedEndOfStream, Field: "text", Offset: c.Offset()}
	}
	text, err := c.FixedString("text", textLen)
	if err != nil {
		return nil, err
	}
	return &BroadcastMessage{Text: text}, nil
}

// ServerMessage is a status/system message, identical wire shape to
// BroadcastMessage.
type ServerMessage = BroadcastMessage

var DecodeServerMessage = DecodeBroadcastMessage

// RequestServerTick is CZ_REQUEST_TIME: opcode, client_tick:u32
//. The map connection task also uses this shape
// for its clock-synchronizing keep-alive.
type RequestServerTick struct {
	ClientTick uint32
}

func (p *RequestServerTick) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRequestServerTick))
	enc.U32(p.ClientTick)
	return nil
}

// ServerTick is ZC_NOTIFY_TIME: opcode, server_tick:u32. This is the
// map server's reply in the clock-sync round trip.
type ServerTick struct {
	ServerTick uint32
}

func DecodeServerTick(c *wire.Cursor) (*ServerTick, error) {
	tick, err := c.U32("server_tick")
	if err != nil {
		return nil, err
	}
	return &ServerTick{ServerTick: tick}, nil
}

// EntityAppeared is ZC_NOTIFY_STANDENTRY (standing entity spawn).
type EntityAppeared struct {
	EntityID uint32
	JobID    uint16
	X, Y     int
	Dir      uint8
}

func DecodeEntityAppeared(c *wire.Cursor) (*EntityAppeared, error) {
	id, err := c.U32("entity_id")
	if err != nil {
		return nil, err
	}
	jobID, err := c.U16("job_id")
	if err != nil {
		return nil, err
	}
	posBytes, err := c.Bytes("position", 3)
	if err != nil {
		return nil, err
	}
	var pos [3]byte
	copy(pos[:], posBytes)
	x, y, dir := DecodePosition(pos)
	return &EntityAppeared{EntityID: id, JobID: jobID, X: x, Y: y, Dir: dir}, nil
}

// MovingEntityAppeared is ZC_NOTIFY_MOVEENTRY: same as EntityAppeared
// but the entity is already walking towards a destination.
type MovingEntityAppeared struct {
	EntityID               uint32
	JobID                  uint16
	OriginX, OriginY       int
	DestinationX, DestinationY int
}

func DecodeMovingEntityAppeared(c *wire.Cursor) (*MovingEntityAppeared, error) {
	id, err := c.U32("entity_id")
	if err != nil {
		return nil, err
	}
	jobID, err := c.U16("job_id")
	if err != nil {
		return nil, err
	}
	originBytes, err := c.Bytes("origin", 3)
	if err != nil {
		return nil, err
	}
	destBytes, err := c.Bytes("destination", 3)
	if err != nil {
		return nil, err
	}
	var origin, dest [3]byte
	copy(origin[:], originBytes)
	copy(dest[:], destBytes)
	ox, oy, _ := DecodePosition(origin)
	dx, dy, _ := DecodePosition(dest)
	return &MovingEntityAppeared{EntityID: id, JobID: jobID, OriginX: ox, OriginY: oy, DestinationX: dx, DestinationY: dy}, nil
}

// EntityMove is ZC_NOTIFY_MOVE: an already-visible entity starts
// walking.
type EntityMove struct {
	EntityID                   uint32
	OriginX, OriginY           int
	DestinationX, DestinationY int
	Timestamp                  uint32
}

func DecodeEntityMove(c *wire.Cursor) (*EntityMove, error) {
	id, err := c.U32("entity_id")
	if err != nil {
		return nil, err
	}
	originBytes, err := c.Bytes("origin", 3)
	if err != nil {
		return nil, err
	}
	destBytes, err := c.Bytes("destination", 3)
	if err != nil {
		return nil, err
	}
	timestamp, err := c.U32("timestamp")
	if err != nil {
		return nil, err
	}
	var origin, dest [3]byte
	copy(origin[:], originBytes)
	copy(dest[:], destBytes)
	ox, oy, _ := DecodePosition(origin)
	dx, dy, _ := DecodePosition(dest)
	return &EntityMove{EntityID: id, OriginX: ox, OriginY: oy, DestinationX: dx, DestinationY: dy, Timestamp: timestamp}, nil
}

// EntityDisappeared is ZC_NOTIFY_VANISH: opcode, entity_id, reason:u8.
type EntityDisappeared struct {
	EntityID uint32
	Reason   uint8
}

func DecodeEntityDisappeared(c *wire.Cursor) (*EntityDisappeared, error) {
	id, err := c.U32("entity_id")
	if err != nil {
		return nil, err
	}
	reason, err := c.U8("reason")
	if err != nil {
		return nil, err
	}
	return &EntityDisappeared{EntityID: id, Reason: reason}, nil
}

// ChangeMap is ZC_NPCACK_MAPMOVE: opcode, map_name:16, x:u16, y:u16.
type ChangeMap struct {
	MapName string
	X, Y    int
}

func DecodeChangeMap(c *wire.Cursor) (*ChangeMap, error) {
	mapName, err := c.FixedString("map_name", 16)
	if err != nil {
		return nil, err
	}
	x, err := c.U16("x")
	if err != nil {
		return nil, err
	}
	y, err := c.U16("y")
	if err != nil {
		return nil, err
	}
	return &ChangeMap{MapName: mapName, X: int(x), Y: int(y)}, nil
}

// UpdateEntityHealth carries a current/max health pair for any
// entity.
type UpdateEntityHealth struct {
	EntityID  uint32
	Health    uint32
	MaxHealth uint32
}

func DecodeUpdateEntityHealth(c *wire.Cursor) (*UpdateEntityHealth, error) {
	id, err := c.U32("entity_id")
	if err != nil {
		return nil, err
	}
	hp, err := c.U32("health")
	if err != nil {
		return nil, err
	}
	maxHP, err := c.U32("max_health")
	if err != nil {
		return nil, err
	}
	return &UpdateEntityHealth{EntityID: id, Health: hp, MaxHealth: maxHP}, nil
}

// RestartType selects between respawn-in-place and a full logout.
type RestartType uint8

const (
	RestartRespawn RestartType = iota
	RestartDisconnect
)

// RestartRequest is CZ_REQ_RESTART: opcode, restart_type.
type RestartRequest struct {
	Type RestartType
}

func (p *RestartRequest) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpRestartRequest))
	enc.U8(uint8(p.Type))
	return nil
}

// RestartResponse carries a single result byte: 0 = ok, 1 = nothing.
type RestartResponse struct {
	OK bool
}

func DecodeRestartResponse(c *wire.Cursor) (*RestartResponse, error) {
	result, err := c.U8("result")
	if err != nil {
		return nil, err
	}
	return &RestartResponse{OK: result == 0}, nil
}

// DisconnectRequest is CZ_REQ_DISCONNECT: opcode only.
type DisconnectRequest struct{}

func (DisconnectRequest) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpDisconnectRequest))
	return nil
}

// DisconnectResponse carries a single result byte: 0 = ok, 1 = wait
// ten seconds.
type DisconnectResponse struct {
	OK bool
}

func DecodeDisconnectResponse(c *wire.Cursor) (*DisconnectResponse, error) {
	result, err := c.U8("result")
	if err != nil {
		return nil, err
	}
	return &DisconnectResponse{OK: result == 0}, nil
}
