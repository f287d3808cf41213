package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Network (reserved for the connection layer)
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Game loop
	TickInterval     int `yaml:"tick_interval"`     // ms between world ticks
	AutosaveInterval int `yaml:"autosave_interval"` // seconds between effect autosaves

	// Effects
	MaxEffects int `yaml:"max_effects"` // active effect cap per character

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress:      "0.0.0.0",
		Port:             4000,
		LogLevel:         "info",
		TickInterval:     1000,
		AutosaveInterval: 60,
		MaxEffects:       32,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "duskmud",
			Password: "duskmud",
			DBName:   "duskmud",
			SSLMode:  "disable",
		},
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.clampIntervals()
	return cfg, nil
}

// clampIntervals resets non-positive loop intervals to their defaults.
// Tickers cannot be created with a zero or negative period.
func (c *GameServer) clampIntervals() {
	def := DefaultGameServer()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.AutosaveInterval <= 0 {
		c.AutosaveInterval = def.AutosaveInterval
	}
	if c.MaxEffects <= 0 {
		c.MaxEffects = def.MaxEffects
	}
}
