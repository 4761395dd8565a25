package network

import (
	"strings"
	"time"

	"github.com/Faultbox/rocore/internal/clock"
	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/internal/protocol"
	"github.com/Faultbox/rocore/internal/protocol/handler"
	"github.com/Faultbox/rocore/pkg/wire"
)

func reasonString(reason protocol.LoginFailedReason) string {
	switch reason {
	case protocol.LoginAlreadyLoggedIn:
		return "already_logged_in"
	case protocol.LoginAlreadyOnline:
		return "already_online"
	default:
		return "server_closed"
	}
}

func reason2String(reason protocol.LoginFailedReason2) string {
	names := [...]string{
		"unregistered_id", "incorrect_password", "id_expired", "rejected_from_server",
		"blocked_by_gm_team", "game_outdated", "login_prohibited_until", "server_full",
		"company_account_limit_reached",
	}
	if int(reason) < len(names) {
		return names[reason]
	}
	return "unknown"
}

func toEventServers(servers []protocol.CharacterServerInfo) []events.CharacterServerInfo {
	out := make([]events.CharacterServerInfo, len(servers))
	for i, s := range servers {
		out[i] = events.CharacterServerInfo{IP: s.IP, Port: s.Port, Name: s.Name, Users: s.Users}
	}
	return out
}

func toEventCharacters(records []protocol.CharacterRecord) []events.CharacterInfo {
	out := make([]events.CharacterInfo, len(records))
	for i, r := range records {
		out[i] = events.CharacterInfo{CharacterID: r.CharacterID, BaseLevel: r.BaseLevel, JobLevel: r.JobLevel, Name: r.Name, Slot: r.Slot}
	}
	return out
}

// newLoginHandler builds the opcode dispatch table for the login role
//.
func newLoginHandler() (*handler.Handler, error) {
	h := handler.New()

	if err := h.Register(uint16(protocol.OpLoginAccept), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeLoginSuccess(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.LoginServerConnected{
			AccountID:        p.AccountID,
			LoginID1:         p.LoginID1,
			LoginID2:         p.LoginID2,
			Sex:              p.Sex,
			CharacterServers: toEventServers(p.CharacterServers),
		}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpLoginFailed), handler.Fixed, 26, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeLoginFailed(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.LoginServerConnectionFailed{Reason: reasonString(p.Reason), Message: p.Reason.Message()}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpLoginFailed2), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeLoginFailed2(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.LoginServerConnectionFailed{Reason: reason2String(p.Reason), Message: p.Reason.Message()}}, nil
	}); err != nil {
		return nil, err
	}

	return h, nil
}

// newCharacterHandler builds the opcode dispatch table for the
// character role.
func newCharacterHandler() (*handler.Handler, error) {
	h := handler.New()

	if err := h.Register(uint16(protocol.OpCharacterLoginAccept), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeCharacterLoginSuccess(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterServerConnected{NormalSlotCount: p.NormalSlotCount}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpCharacterLoginFailed), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		if _, err := protocol.DecodeCharacterLoginFailed(c); err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterServerConnectionFailed{Reason: "refused", Message: "character server refused entry"}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpRequestCharacterListSuccess), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeRequestCharacterListSuccess(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterList{Characters: toEventCharacters(p.Characters)}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpCharacterSelectionSuccess), handler.Fixed, 28, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeCharacterSelectionSuccess(c)
		if err != nil {
			return nil, err
		}
		mapName := strings.TrimSuffix(p.MapName, ".gat")
		return []events.Event{events.CharacterSelected{
			MapServerIP:   p.MapServerIP,
			MapServerPort: p.MapPort,
			CharacterID:   p.CharacterID,
			MapName:       mapName,
		}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpCharacterSelectionFailed), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		_, err := protocol.DecodeCharacterSelectionFailed(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterSelectionFailed{Reason: "refused", Message: "character selection failed"}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpMapServerUnavailable), handler.Fixed, 2, func(c *wire.Cursor) ([]events.Event, error) {
		if _, err := protocol.DecodeMapServerUnavailable(c); err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterSelectionFailed{Reason: "map_server_unavailable", Message: "map server unavailable"}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpCreateCharacterSuccess), handler.Fixed, 42, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeCreateCharacterSuccess(c)
		if err != nil {
			return nil, err
		}
		rec := p.Character
		return []events.Event{events.CharacterCreated{Character: events.CharacterInfo{
			CharacterID: rec.CharacterID, BaseLevel: rec.BaseLevel, JobLevel: rec.JobLevel, Name: rec.Name, Slot: rec.Slot,
		}}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpCreateCharacterFailed), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		_, err := protocol.DecodeCreateCharacterFailed(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterCreationFailed{Reason: "refused", Message: "character creation failed"}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpDeleteCharacterSuccess), handler.Fixed, 2, func(c *wire.Cursor) ([]events.Event, error) {
		return []events.Event{events.CharacterDeleted{}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpDeleteCharacterFailed), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		_, err := protocol.DecodeDeleteCharacterFailed(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.CharacterDeletionFailed{Reason: "refused", Message: "character deletion failed"}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpSwitchCharacterSlotResponse), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeSwitchCharacterSlotResponse(c)
		if err != nil {
			return nil, err
		}
		if p.Success {
			return []events.Event{events.CharacterSlotSwitched{}}, nil
		}
		return []events.Event{events.CharacterSlotSwitchFailed{}}, nil
	}); err != nil {
		return nil, err
	}

	return h, nil
}

// newMapHandler builds the opcode dispatch table for the map role.
// clk is folded into the ServerTick decoder closure so the map
// connection's tick round-trip is absorbed at decode time, inside the
// map connection's decoding path rather than below it.
func newMapHandler(clk *clock.Synchronizer) (*handler.Handler, error) {
	h := handler.New()

	if err := h.Register(uint16(protocol.OpMapLoginSuccess), handler.Fixed, 11, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeMapLoginSuccess(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{
			events.UpdateClientTick{ClientTick: p.ClientTick, ReceivedAt: time.Now()},
			events.SetPlayerPosition{X: p.X, Y: p.Y, Dir: p.Dir},
		}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpServerTick), handler.Fixed, 6, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeServerTick(c)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		tick := clk.AbsorbResponse(p.ServerTick, now)
		return []events.Event{events.UpdateClientTick{ClientTick: tick, ReceivedAt: now}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpEntityAppeared), handler.Fixed, 11, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeEntityAppeared(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.AddEntity{EntityID: events.EntityID(p.EntityID), X: p.X, Y: p.Y, Dir: p.Dir, JobID: p.JobID}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpMovingEntityAppeared), handler.Fixed, 14, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeMovingEntityAppeared(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{
			events.AddEntity{EntityID: events.EntityID(p.EntityID), X: p.OriginX, Y: p.OriginY, JobID: p.JobID},
			events.EntityMove{
				EntityID: events.EntityID(p.EntityID), OriginX: p.OriginX, OriginY: p.OriginY,
				DestinationX: p.DestinationX, DestinationY: p.DestinationY,
			},
		}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpEntityMove), handler.Fixed, 16, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeEntityMove(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.EntityMove{
			EntityID: events.EntityID(p.EntityID), OriginX: p.OriginX, OriginY: p.OriginY,
			DestinationX: p.DestinationX, DestinationY: p.DestinationY, Timestamp: p.Timestamp,
		}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpEntityDisappeared), handler.Fixed, 7, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeEntityDisappeared(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.RemoveEntity{EntityID: events.EntityID(p.EntityID)}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpBroadcastMessage), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeBroadcastMessage(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.ChatMessage{Text: p.Text, Color: events.ColorBroadcast}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpServerMessage), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeServerMessage(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.ChatMessage{Text: p.Text, Color: events.ColorServer}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpChangeMap), handler.Fixed, 22, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeChangeMap(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.ChangeMap{MapName: strings.TrimSuffix(p.MapName, ".gat"), X: p.X, Y: p.Y}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.RegisterNoop(uint16(protocol.OpUpdateStatus), 8); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpUpdateEntityHealth), handler.Fixed, 14, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeUpdateEntityHealth(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.UpdateEntityHealth{EntityID: events.EntityID(p.EntityID), Health: int(p.Health), MaxHealth: int(p.MaxHealth)}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpRestartResponse), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeRestartResponse(c)
		if err != nil {
			return nil, err
		}
		if p.OK {
			return []events.Event{events.LoggedOut{}}, nil
		}
		return nil, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpDisconnectResponse), handler.Fixed, 3, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeDisconnectResponse(c)
		if err != nil {
			return nil, err
		}
		if p.OK {
			return []events.Event{events.LoggedOut{}}, nil
		}
		return nil, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpNpcDialog), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeNpcDialogLine(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.NpcDialog{NPCID: events.EntityID(p.NPCID), Text: p.Text}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpNextButton), handler.Fixed, 6, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeNpcNextButton(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.NpcNextButton{NPCID: events.EntityID(p.NPCID)}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpCloseButton), handler.Fixed, 6, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeNpcCloseButton(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.NpcCloseButton{NPCID: events.EntityID(p.NPCID)}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpChoiceButtons), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeNpcChoiceButtons(c)
		if err != nil {
			return nil, err
		}
		options := strings.Split(strings.TrimRight(p.Text, "\x00"), ":")
		return []events.Event{events.NpcChoiceButtons{NPCID: events.EntityID(p.NPCID), Options: options}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpRequestEquipItemStatus), handler.Fixed, 9, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeRequestEquipItemStatus(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.ItemEquipped{ItemIndex: p.ItemIndex, Success: p.Result == 0}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpRequestUnequipItemStatus), handler.Fixed, 9, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeRequestUnequipItemStatus(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.ItemUnequipped{ItemIndex: p.ItemIndex, Success: p.Result == 0}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpFriendList), handler.Prefixed, 0, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeFriendList(c)
		if err != nil {
			return nil, err
		}
		friends := make([]events.FriendInfo, len(p.Friends))
		for i, f := range p.Friends {
			friends[i] = events.FriendInfo{AccountID: f.AccountID, CharacterID: f.CharacterID, Name: f.Name}
		}
		return []events.Event{events.FriendListReceived{Friends: friends}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpFriendRequest), handler.Fixed, 34, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeFriendRequest(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.FriendRequestReceived{AccountID: p.AccountID, CharacterID: p.CharacterID, Name: p.Name}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpFriendRequestResult), handler.Fixed, 11, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeFriendRequestResult(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.FriendRequestResolved{AccountID: p.AccountID, CharacterID: p.CharacterID, Accepted: p.Result == 0}}, nil
	}); err != nil {
		return nil, err
	}

	if err := h.Register(uint16(protocol.OpFriendRemoved), handler.Fixed, 10, func(c *wire.Cursor) ([]events.Event, error) {
		p, err := protocol.DecodeFriendRemoved(c)
		if err != nil {
			return nil, err
		}
		return []events.Event{events.FriendRemoved{AccountID: p.AccountID, CharacterID: p.CharacterID}}, nil
	}); err != nil {
		return nil, err
	}

	return h, nil
}
