// Package config handles client configuration loading and management.
package config

import "time"

// Config holds all client settings.
type Config struct {
	Network NetworkConfig `yaml:"network"`
	Logging LoggingConfig `yaml:"logging"`
}

// NetworkConfig holds the three server addresses and connection
// tuning the networking façade needs to dial in.
type NetworkConfig struct {
	LoginServer     string        `yaml:"login_server"`
	CharacterServer string        `yaml:"character_server"`
	MapServer       string        `yaml:"map_server"`
	ProtocolVersion uint32        `yaml:"protocol_version"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`

	// Per-role keep-alive intervals override protocol.Role's built-in
	// defaults; zero means "use the role's default".
	LoginKeepAlive     time.Duration `yaml:"login_keep_alive"`
	CharacterKeepAlive time.Duration `yaml:"character_keep_alive"`
	MapKeepAlive       time.Duration `yaml:"map_keep_alive"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			LoginServer:     "127.0.0.1:6900",
			CharacterServer: "",
			MapServer:       "",
			ProtocolVersion: 20220406,
			ConnectTimeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
