// Package network implements the networking façade: the
// single-threaded API the game loop drives, owning the three per-role
// connection slots and translating typed calls into outbound packet
// bytes.
package network

import (
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rocore/internal/clock"
	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/internal/logger"
	"github.com/Faultbox/rocore/internal/netconn"
	"github.com/Faultbox/rocore/internal/protocol"
	"github.com/Faultbox/rocore/internal/protocol/handler"
	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

// ErrNotConnected is returned by action methods when the target
// role's slot is not Connected.
var ErrNotConnected = errors.New("network: not connected")

// outboundBuffer and inboundBuffer size the channels connecting each
// connection task to the Facade: generous enough that the game loop
// and the connection task never contend, since Go channels are not
// literally unbounded.
const (
	outboundBuffer = 64
	inboundBuffer  = 256
)

type slotState int

const (
	disconnected slotState = iota
	connectedState
	closingManually
)

// connectionSlot tracks one role's connection state. Go has no
// tagged-union syntax, so the three variants share one struct and the
// owning Facade never reads outbound/inbound/version outside of
// connectedState.
type connectionSlot struct {
	state    slotState
	outbound chan []byte
	inbound  chan events.Event
	version  wire.Version
}

// LoginSession carries the identifiers the login server hands back,
// needed to open the character-server connection.
type LoginSession struct {
	AccountID uint32
	LoginID1  uint32
	LoginID2  uint32
	Sex       uint8
}

// CharacterSession carries the identifiers the character server hands
// back, needed to open the map-server connection.
type CharacterSession struct {
	AccountID   uint32
	CharacterID uint32
	LoginID1    uint32
	Sex         uint8
}

// KeepAliveOverrides carries per-role keep-alive interval overrides
// sourced from config.NetworkConfig; a zero field means "use the
// role's built-in default" (see protocol.Role.KeepAliveInterval).
type KeepAliveOverrides struct {
	Login     time.Duration
	Character time.Duration
	Map       time.Duration
}

func (o KeepAliveOverrides) forRole(role protocol.Role) time.Duration {
	var override time.Duration
	switch role {
	case protocol.RoleLogin:
		override = o.Login
	case protocol.RoleCharacter:
		override = o.Character
	case protocol.RoleMap:
		override = o.Map
	}
	if override > 0 {
		return override
	}
	return time.Duration(role.KeepAliveInterval()) * time.Second
}

// Facade owns the three connection slots and the shared clock state,
// the single entry point the game loop uses.
type Facade struct {
	slots       [3]connectionSlot
	clock       *clock.Synchronizer
	table       encoding.Table
	log         *zap.Logger
	dialTimeout time.Duration
	keepAlive   KeepAliveOverrides

	loginHandler     *handler.Handler
	characterHandler *handler.Handler
	mapHandler       *handler.Handler
}

// New builds a Facade with its three dispatch tables wired, ready for
// Connect* calls. log must not be nil; pass zap.NewNop() in tests.
func New(table encoding.Table, dialTimeout time.Duration, keepAlive KeepAliveOverrides, log *zap.Logger) (*Facade, error) {
	loginHandler, err := newLoginHandler()
	if err != nil {
		return nil, fmt.Errorf("building login handler: %w", err)
	}
	characterHandler, err := newCharacterHandler()
	if err != nil {
		return nil, fmt.Errorf("building character handler: %w", err)
	}
	clk := clock.New()
	mapHandler, err := newMapHandler(clk)
	if err != nil {
		return nil, fmt.Errorf("building map handler: %w", err)
	}

	return &Facade{
		clock:            clk,
		table:            table,
		log:              log,
		dialTimeout:      dialTimeout,
		keepAlive:        keepAlive,
		loginHandler:     loginHandler,
		characterHandler: characterHandler,
		mapHandler:       mapHandler,
	}, nil
}

func (f *Facade) handlerFor(role protocol.Role) *handler.Handler {
	switch role {
	case protocol.RoleLogin:
		return f.loginHandler
	case protocol.RoleCharacter:
		return f.characterHandler
	default:
		return f.mapHandler
	}
}

// connect implements the steps common to connecting to any of the
// login, character, or map servers: check Disconnected, dial, spawn
// the connection task, push the initial login packet, install
// Connected.
func (f *Facade) connect(role protocol.Role, addr string, version wire.Version, initial []byte, keepAlive netconn.KeepAliveFactory) error {
	slot := &f.slots[role]
	if slot.state != disconnected {
		return nil // abort silently if not Disconnected
	}

	conn, err := net.DialTimeout("tcp", addr, f.dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s server at %s: %w", role, addr, err)
	}

	outbound := make(chan []byte, outboundBuffer)
	inbound := make(chan events.Event, inboundBuffer)

	roleLog := logger.ForRole(f.log, role)
	go netconn.Run(conn, role, f.handlerFor(role), version, f.table, outbound, inbound, keepAlive, f.keepAlive.forRole(role), roleLog)

	outbound <- initial

	*slot = connectionSlot{state: connectedState, outbound: outbound, inbound: inbound, version: version}
	return nil
}

func constantKeepAlive(packet []byte) netconn.KeepAliveFactory {
	return func(time.Time) []byte { return packet }
}

// ConnectToLogin opens the login-server connection and sends
// CA_LOGIN.
func (f *Facade) ConnectToLogin(addr string, version wire.Version, username, password string, clientType uint8) error {
	enc := wire.NewEncoder(version, f.table)
	req := &protocol.LoginRequest{Version: uint32(version), Username: username, Password: password, ClientType: clientType}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding login request: %w", err)
	}

	keepAliveEnc := wire.NewEncoder(version, f.table)
	if err := (&protocol.LoginKeepAlive{}).Encode(keepAliveEnc); err != nil {
		return fmt.Errorf("encoding login keep-alive: %w", err)
	}

	return f.connect(protocol.RoleLogin, addr, version, enc.Bytes(), constantKeepAlive(keepAliveEnc.Bytes()))
}

// ConnectToCharacter opens the character-server connection using the
// session identifiers obtained from LoginServerConnected.
func (f *Facade) ConnectToCharacter(addr string, version wire.Version, session LoginSession) error {
	enc := wire.NewEncoder(version, f.table)
	req := &protocol.CharacterLoginRequest{AccountID: session.AccountID, LoginID1: session.LoginID1, LoginID2: session.LoginID2, Sex: session.Sex}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding character login request: %w", err)
	}

	keepAliveEnc := wire.NewEncoder(version, f.table)
	if err := (&protocol.CharacterKeepAlive{AccountID: session.AccountID}).Encode(keepAliveEnc); err != nil {
		return fmt.Errorf("encoding character keep-alive: %w", err)
	}

	return f.connect(protocol.RoleCharacter, addr, version, enc.Bytes(), constantKeepAlive(keepAliveEnc.Bytes()))
}

// ConnectToMap opens the map-server connection using the session
// identifiers obtained from CharacterSelected.
func (f *Facade) ConnectToMap(addr string, version wire.Version, session CharacterSession) error {
	now := time.Now()
	enc := wire.NewEncoder(version, f.table)
	req := &protocol.MapLoginRequest{
		AccountID: session.AccountID, CharacterID: session.CharacterID, LoginID1: session.LoginID1,
		ClientTick: f.clock.BuildRequestTick(now), Sex: session.Sex,
	}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding map login request: %w", err)
	}

	clk := f.clock
	keepAlive := func(now time.Time) []byte {
		tickEnc := wire.NewEncoder(version, f.table)
		(&protocol.RequestServerTick{ClientTick: clk.BuildRequestTick(now)}).Encode(tickEnc)
		return tickEnc.Bytes()
	}

	return f.connect(protocol.RoleMap, addr, version, enc.Bytes(), keepAlive)
}

func (f *Facade) disconnect(role protocol.Role) {
	slot := &f.slots[role]
	if slot.state != connectedState {
		return
	}
	close(slot.outbound)
	slot.state = closingManually
}

func (f *Facade) DisconnectFromLogin()     { f.disconnect(protocol.RoleLogin) }
func (f *Facade) DisconnectFromCharacter() { f.disconnect(protocol.RoleCharacter) }
func (f *Facade) DisconnectFromMap()       { f.disconnect(protocol.RoleMap) }

// PollEvents drains every currently available event from the three
// slots, synthesizing Disconnected events for closed or
// manually-closed slots.
func (f *Facade) PollEvents() []events.Event {
	var out []events.Event
	for i := range f.slots {
		role := protocol.Role(i)
		slot := &f.slots[i]

		switch slot.state {
		case disconnected:
			continue

		case closingManually:
			out = append(out, events.Disconnected{Role: role.String(), Reason: events.ClosedByClient})
			*slot = connectionSlot{}

		case connectedState:
		drain:
			for {
				select {
				case e, ok := <-slot.inbound:
					if !ok {
						out = append(out, events.Disconnected{Role: role.String(), Reason: events.ConnectionError})
						*slot = connectionSlot{}
						break drain
					}
					out = append(out, e)
					if _, isDisconnect := e.(events.Disconnected); isDisconnect {
						*slot = connectionSlot{}
						break drain
					}
				default:
					break drain
				}
			}
		}
	}
	return out
}

// send pushes an already-encoded packet into role's outbound channel,
// failing with ErrNotConnected when the slot is not Connected.
func (f *Facade) send(role protocol.Role, packet []byte) error {
	slot := &f.slots[role]
	if slot.state != connectedState {
		return ErrNotConnected
	}
	slot.outbound <- packet
	return nil
}

func (f *Facade) encodeFor(role protocol.Role) *wire.Encoder {
	return wire.NewEncoder(f.slots[role].version, f.table)
}

// GetClientTick projects the clock synchronizer's estimate forward to
// now.
func (f *Facade) GetClientTick(now time.Time) uint32 {
	return f.clock.EstimateAt(now)
}

// RequestClientTick sends a map-server tick request stamped with the
// current estimate; the response is absorbed inside the map
// handler's ServerTick decoder.
func (f *Facade) RequestClientTick() error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.RequestServerTick{ClientTick: f.clock.BuildRequestTick(time.Now())}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// RequestCharacterList asks the character server to resend the
// account's character roster.
func (f *Facade) RequestCharacterList() error {
	enc := f.encodeFor(protocol.RoleCharacter)
	(&protocol.RequestCharacterList{}).Encode(enc)
	return f.send(protocol.RoleCharacter, enc.Bytes())
}

// SelectCharacter chooses a character slot to enter the world with.
func (f *Facade) SelectCharacter(slot uint8) error {
	enc := f.encodeFor(protocol.RoleCharacter)
	(&protocol.SelectCharacter{Slot: slot}).Encode(enc)
	return f.send(protocol.RoleCharacter, enc.Bytes())
}

// CreateCharacter requests a new character in the given slot.
func (f *Facade) CreateCharacter(name string, slot uint8, hairColor, hairStyle, startJob uint16, sex uint8) error {
	enc := f.encodeFor(protocol.RoleCharacter)
	req := &protocol.CreateCharacter{
		Name: name, Slot: slot, HairColor: hairColor, HairStyle: hairStyle, StartJob: startJob, Sex: sex,
	}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding create character request: %w", err)
	}
	return f.send(protocol.RoleCharacter, enc.Bytes())
}

// DeleteCharacter requests permanent deletion of a character.
func (f *Facade) DeleteCharacter(characterID uint32, email string) error {
	enc := f.encodeFor(protocol.RoleCharacter)
	req := &protocol.DeleteCharacter{CharacterID: characterID, Email: email}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding delete character request: %w", err)
	}
	return f.send(protocol.RoleCharacter, enc.Bytes())
}

// SwitchCharacterSlot swaps the characters occupying two slots.
func (f *Facade) SwitchCharacterSlot(origin, destination uint16) error {
	enc := f.encodeFor(protocol.RoleCharacter)
	(&protocol.SwitchCharacterSlot{OriginSlot: origin, DestinationSlot: destination}).Encode(enc)
	return f.send(protocol.RoleCharacter, enc.Bytes())
}

// MapLoaded tells the map server the client finished loading the map
// and is ready to receive the world state.
func (f *Facade) MapLoaded() error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.MapLoaded{}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// LogOut requests a character-select return (restart) rather than a
// full client disconnect.
func (f *Facade) LogOut() error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.RestartRequest{Type: protocol.RestartDisconnect}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// PlayerMove requests the player's character walk to x,y.
func (f *Facade) PlayerMove(x, y int) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.MoveRequest{X: x, Y: y}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// PlayerAttack requests an attack on targetID.
func (f *Facade) PlayerAttack(targetID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.RequestAction{TargetID: targetID, Action: protocol.ActionAttack}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// SendChatMessage sends a chat line formatted the way the map server
// expects from a player-originated global message.
func (f *Facade) SendChatMessage(playerName, message string) error {
	enc := f.encodeFor(protocol.RoleMap)
	req := &protocol.GlobalMessage{Text: playerName + " : " + message}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding chat message: %w", err)
	}
	return f.send(protocol.RoleMap, enc.Bytes())
}

// StartDialog opens an NPC's dialog window.
func (f *Facade) StartDialog(npcID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.StartDialog{NPCID: npcID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// NextDialog advances an NPC's dialog to the next line.
func (f *Facade) NextDialog(npcID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.NextDialog{NPCID: npcID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// CloseDialog closes an NPC's dialog window.
func (f *Facade) CloseDialog(npcID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.CloseDialog{NPCID: npcID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// ChooseDialogOption picks a numbered option from an NPC's menu.
func (f *Facade) ChooseDialogOption(npcID uint32, option int8) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.ChooseDialogOption{NPCID: npcID, Option: option}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// CastSkill fires a single-target skill immediately.
func (f *Facade) CastSkill(skillID, skillLevel uint16, targetID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.UseSkillAtID{SkillLevel: skillLevel, SkillID: skillID, TargetID: targetID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// CastGroundSkill fires a ground-targeted skill immediately.
func (f *Facade) CastGroundSkill(skillID, skillLevel uint16, x, y int) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.UseSkillOnGround{SkillLevel: skillLevel, SkillID: skillID, X: x, Y: y}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// CastChannelingSkill begins a channeled skill against targetID; the
// server keeps the effect running until StopChannelingSkill is sent.
func (f *Facade) CastChannelingSkill(skillID, skillLevel uint16, targetID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.StartUseSkill{SkillID: skillID, SkillLevel: skillLevel, TargetID: targetID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// StopChannelingSkill ends a previously started channeled skill.
func (f *Facade) StopChannelingSkill(skillID uint16) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.EndUseSkill{SkillID: skillID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// RequestItemEquip asks the server to equip the inventory item at
// itemIndex into position.
func (f *Facade) RequestItemEquip(itemIndex uint16, position protocol.EquipPosition) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.RequestEquipItem{ItemIndex: itemIndex, EquipPosition: position}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// RequestItemUnequip asks the server to unequip the item at itemIndex.
func (f *Facade) RequestItemUnequip(itemIndex uint16) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.RequestUnequipItem{ItemIndex: itemIndex}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// AddFriend sends a friend request by character name.
func (f *Facade) AddFriend(name string) error {
	enc := f.encodeFor(protocol.RoleMap)
	req := &protocol.AddFriend{Name: name}
	if err := req.Encode(enc); err != nil {
		return fmt.Errorf("encoding add friend request: %w", err)
	}
	return f.send(protocol.RoleMap, enc.Bytes())
}

// RemoveFriend removes an existing friend.
func (f *Facade) RemoveFriend(accountID, characterID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.RemoveFriend{AccountID: accountID, CharacterID: characterID}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// AcceptFriendRequest answers an incoming friend request with accept.
func (f *Facade) AcceptFriendRequest(accountID, characterID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.FriendRequestResponse{AccountID: accountID, CharacterID: characterID, Accept: true}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}

// RejectFriendRequest answers an incoming friend request with refuse.
func (f *Facade) RejectFriendRequest(accountID, characterID uint32) error {
	enc := f.encodeFor(protocol.RoleMap)
	(&protocol.FriendRequestResponse{AccountID: accountID, CharacterID: characterID, Accept: false}).Encode(enc)
	return f.send(protocol.RoleMap, enc.Bytes())
}
