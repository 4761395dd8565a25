// Package protocol declares the rAthena-compatible wire protocol: the
// opcode namespace per server role, the packet types for version
// 20220406, and their codec methods. It owns no I/O and no
// connection state; internal/netconn and internal/network drive it.
package protocol

import "github.com/Faultbox/rocore/pkg/wire"

// Role identifies which of the three servers a packet or connection
// belongs to. Each role has its own opcode namespace and keep-alive
// cadence.
type Role int

const (
	RoleLogin Role = iota
	RoleCharacter
	RoleMap
)

func (r Role) String() string {
	switch r {
	case RoleLogin:
		return "login"
	case RoleCharacter:
		return "character"
	case RoleMap:
		return "map"
	default:
		return "unknown"
	}
}

// KeepAliveInterval returns the role-specific keep-alive cadence:
// login 58s, character 10s, map 10s.
func (r Role) KeepAliveInterval() (seconds int) {
	switch r {
	case RoleLogin:
		return 58
	default:
		return 10
	}
}

// Version20220406 is the one protocol revision this module
// implements.
const Version20220406 wire.Version = 20220406
