// Package main is a minimal driver for the networking core: it wires
// config, logging, and the façade together and drives the three-server
// connect sequence, printing every event it receives.
// It stands in for the rendering game loop the core itself never
// implements.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rocore/internal/config"
	"github.com/Faultbox/rocore/internal/events"
	"github.com/Faultbox/rocore/internal/logger"
	"github.com/Faultbox/rocore/internal/network"
	"github.com/Faultbox/rocore/internal/protocol"
	"github.com/Faultbox/rocore/pkg/encoding"
	"github.com/Faultbox/rocore/pkg/wire"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== rocore netclient ===")
	logger.Sugar.Debugf("config: %+v", cfg)

	keepAlive := network.KeepAliveOverrides{
		Login:     cfg.Network.LoginKeepAlive,
		Character: cfg.Network.CharacterKeepAlive,
		Map:       cfg.Network.MapKeepAlive,
	}
	facade, err := network.New(encoding.EUCKR, cfg.Network.ConnectTimeout, keepAlive, logger.Log)
	if err != nil {
		logger.Error("failed to build facade", zap.Error(err))
		os.Exit(1)
	}

	version := wire.Version(cfg.Network.ProtocolVersion)
	if err := facade.ConnectToLogin(cfg.Network.LoginServer, version, cfg.Network.Username, cfg.Network.Password, 0); err != nil {
		logger.Error("connecting to login server", zap.Error(err))
		os.Exit(1)
	}

	run(facade, cfg, version)
}

// run polls the façade until the map connection ends or a handshake
// step fails, driving the login -> character -> map handshake as each
// stage's event arrives.
func run(facade *network.Facade, cfg *config.Config, version wire.Version) {
	var loginSession network.LoginSession
	var characterSession network.CharacterSession
	active := true

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for active {
		<-ticker.C
		for _, evt := range facade.PollEvents() {
			active = handle(facade, cfg, version, evt, &loginSession, &characterSession) && active
		}
	}
}

func handle(facade *network.Facade, cfg *config.Config, version wire.Version, evt events.Event, loginSession *network.LoginSession, characterSession *network.CharacterSession) bool {
	switch e := evt.(type) {
	case events.LoginServerConnected:
		logger.Info("login accepted", zap.Uint32("account_id", e.AccountID))
		*loginSession = network.LoginSession{AccountID: e.AccountID, LoginID1: e.LoginID1, LoginID2: e.LoginID2, Sex: e.Sex}

		addr := cfg.Network.CharacterServer
		if addr == "" && len(e.CharacterServers) > 0 {
			srv := e.CharacterServers[0]
			addr = net.JoinHostPort(net.IP(srv.IP[:]).String(), fmt.Sprint(srv.Port))
		}
		if err := facade.ConnectToCharacter(addr, version, *loginSession); err != nil {
			logger.Error("connecting to character server", zap.Error(err))
			return false
		}

	case events.LoginServerConnectionFailed:
		logger.Error("login failed", zap.String("message", e.Message))
		return false

	case events.CharacterServerConnected:
		logger.Info("character server accepted", zap.Int("slots", e.NormalSlotCount))
		if err := facade.RequestCharacterList(); err != nil {
			logger.Error("requesting character list", zap.Error(err))
		}

	case events.CharacterServerConnectionFailed:
		logger.Error("character server rejected login", zap.String("message", e.Message))
		return false

	case events.CharacterList:
		if len(e.Characters) == 0 {
			logger.Warn("no characters on this account")
			return false
		}
		logger.Info("character list received", zap.Int("count", len(e.Characters)))
		if err := facade.SelectCharacter(e.Characters[0].Slot); err != nil {
			logger.Error("selecting character", zap.Error(err))
		}

	case events.CharacterSelected:
		logger.Info("character selected", zap.String("map", e.MapName))
		*characterSession = network.CharacterSession{
			AccountID: loginSession.AccountID, CharacterID: e.CharacterID,
			LoginID1: loginSession.LoginID1, Sex: loginSession.Sex,
		}
		addr := cfg.Network.MapServer
		if addr == "" {
			addr = net.JoinHostPort(net.IP(e.MapServerIP[:]).String(), fmt.Sprint(e.MapServerPort))
		}
		if err := facade.ConnectToMap(addr, version, *characterSession); err != nil {
			logger.Error("connecting to map server", zap.Error(err))
			return false
		}

	case events.CharacterSelectionFailed:
		logger.Error("character selection failed", zap.String("message", e.Message))
		return false

	case events.SetPlayerPosition:
		logger.Info("map server accepted", zap.Int("x", e.X), zap.Int("y", e.Y))
		if err := facade.MapLoaded(); err != nil {
			logger.Error("signaling map loaded", zap.Error(err))
		}

	case events.ChatMessage:
		logger.Info("chat", zap.String("text", e.Text))

	case events.Disconnected:
		logger.Info("disconnected", zap.String("role", e.Role), zap.String("reason", e.Reason.String()))
		// The login and character connections close once they've handed
		// off to the next server; only the map connection ending closes
		// this demo down.
		return e.Role != protocol.RoleMap.String()

	default:
		logger.Debug("event", zap.Any("event", e))
	}
	return true
}
