package protocol

import "github.com/Faultbox/rocore/pkg/wire"

// LoginRequest is CA_LOGIN: opcode, version, username,
// password, client type.
type LoginRequest struct {
	Version    uint32
	Username   string
	Password   string
	ClientType uint8
}

// Encode renders the full wire packet, including the opcode header.
func (p *LoginRequest) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpLoginRequest))
	enc.U32(p.Version)
	if err := enc.FixedString("username", p.Username, 24); err != nil {
		return err
	}
	if err := enc.FixedString("password", p.Password, 24); err != nil {
		return err
	}
	enc.U8(p.ClientType)
	return nil
}

// LoginKeepAlive is the login server's keep-alive: opcode only.
type LoginKeepAlive struct{}

func (LoginKeepAlive) Encode(enc *wire.Encoder) error {
	enc.U16(uint16(OpLoginKeepAlive))
	return nil
}

// LoginSuccess is AC_ACCEPT_LOGIN: a length-prefixed
// packet carrying session identifiers and the list of character
// servers to choose from.
type LoginSuccess struct {
	AuthCode         uint32
	AccountID        uint32
	LoginID1         uint32
	LoginID2         uint32
	Sex              uint8
	CharacterServers []CharacterServerInfo
}

// CharacterServerInfo is one entry in LoginSuccess's server-info
// array.
type CharacterServerInfo struct {
	IP    [4]byte
	Port  uint16
	Name  string
	Users uint16
	Type  uint16
	New   uint16
}

const characterServerInfoSize = 4 + 2 + 20 + 2 + 2 + 2 + 128 // ip, port, name, users, type, new, reserved

// DecodeLoginSuccess reads the cursor (positioned after the opcode,
// covering exactly the packet's declared length) into a LoginSuccess.
func DecodeLoginSuccess(c *wire.Cursor) (*LoginSuccess, error) {
	length, err := c.U16("length")
	if err != nil {
		return nil, err
	}
	authCode, err := c.U32("auth_code")
	if err != nil {
		return nil, err
	}
	accountID, err := c.U32("account_id")
	if err != nil {
		return nil, err
	}
	loginID1, err := c.U32("login_id1")
	if err != nil {
		return nil, err
	}
	// bytes: user_level (4), login_id2 (4), unused (4), sex (1).
	if err := c.Skip(4); err != nil { // user_level
		return nil, err
	}
	loginID2, err := c.U32("login_id2")
	if err != nil {
		return nil, err
	}
	if err := c.Skip(4); err != nil { // unused
		return nil, err
	}
	sex, err := c.U8("sex")
	if err != nil {
		return nil, err
	}

	serverListEnd := int(length)
	var servers []CharacterServerInfo
	for c.Offset() < serverListEnd && serverListEnd-c.Offset() >= characterServerInfoSize {
		info, err := decodeCharacterServerInfo(c)
		if err != nil {
			return nil, err
		}
		servers = append(servers, *info)
	}

	return &LoginSuccess{
		AuthCode:         authCode,
		AccountID:        accountID,
		LoginID1:         loginID1,
		LoginID2:         loginID2,
		Sex:              sex,
		CharacterServers: servers,
	}, nil
}

func decodeCharacterServerInfo(c *wire.Cursor) (*CharacterServerInfo, error) {
	ipBytes, err := c.Bytes("ip", 4)
	if err != nil {
		return nil, err
	}
	port, err := c.U16("port")
	if err != nil {
		return nil, err
	}
	name, err := c.FixedString("name", 20)
	if err != nil {
		return nil, err
	}
	users, err := c.U16("users")
	if err != nil {
		return nil, err
	}
	serverType, err := c.U16("type")
	if err != nil {
		return nil, err
	}
	newFlag, err := c.U16("new")
	if err != nil {
		return nil, err
	}
	if err := c.Skip(128); err != nil { // unknown/reserved tail
		return nil, err
	}

	var ip [4]byte
	copy(ip[:], ipBytes)

	return &CharacterServerInfo{IP: ip, Port: port, Name: name, Users: users, Type: serverType, New: newFlag}, nil
}

// LoginFailedReason enumerates AC_REFUSE_LOGIN's single-byte reason
// code.
type LoginFailedReason uint8

const (
	LoginServerClosed LoginFailedReason = iota
	LoginAlreadyLoggedIn
	LoginAlreadyOnline
)

// LoginFailed is AC_REFUSE_LOGIN.
type LoginFailed struct {
	Reason LoginFailedReason
}

// DecodeLoginFailed reads a fixed 26-byte packet: opcode, reason:u32,
// block_date:20 bytes.
func DecodeLoginFailed(c *wire.Cursor) (*LoginFailed, error) {
	reason, err := c.U32("reason")
	if err != nil {
		return nil, err
	}
	if err := c.Skip(20); err != nil { // block date, unused here
		return nil, err
	}
	return &LoginFailed{Reason: LoginFailedReason(reason)}, nil
}

// LoginFailedReason2 enumerates AC_NOTIFY_ERROR's extended reason
// codes, used by modern rAthena in place of LoginFailed.
type LoginFailedReason2 uint8

const (
	LoginUnregisteredID LoginFailedReason2 = iota
	LoginIncorrectPassword
	LoginIDExpired
	LoginRejectedFromServer
	LoginBlockedByGMTeam
	LoginGameOutdated
	LoginProhibitedUntil
	LoginServerFull
	LoginCompanyAccountLimitReached
)

// LoginFailed2 is AC_NOTIFY_ERROR.
type LoginFailed2 struct {
	Reason LoginFailedReason2
}

// DecodeLoginFailed2 reads a fixed 3-byte packet: opcode, reason:u8.
func DecodeLoginFailed2(c *wire.Cursor) (*LoginFailed2, error) {
	reason, err := c.U8("reason")
	if err != nil {
		return nil, err
	}
	return &LoginFailed2{Reason: LoginFailedReason2(reason)}, nil
}

// Message returns the user-facing message for a
// LoginFailedReason.
func (r LoginFailedReason) Message() string {
	switch r {
	case LoginAlreadyLoggedIn:
		return "Someone has already logged in with this id"
	case LoginAlreadyOnline:
		return "Already online"
	default:
		return "Server closed"
	}
}

// Message returns the user-facing message for a LoginFailedReason2.
func (r LoginFailedReason2) Message() string {
	switch r {
	case LoginIncorrectPassword:
		return "Incorrect password"
	case LoginIDExpired:
		return "Id has expired"
	case LoginRejectedFromServer:
		return "Rejected from server"
	case LoginBlockedByGMTeam:
		return "Blocked by gm team"
	case LoginGameOutdated:
		return "Game outdated"
	case LoginProhibitedUntil:
		return "Login prohibited until"
	case LoginServerFull:
		return "Server is full"
	case LoginCompanyAccountLimitReached:
		return "Company account limit reached"
	default:
		return "Unregistered id"
	}
}
