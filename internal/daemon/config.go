// Package daemon manages the tempo daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tempo-sh/tempo/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	Node      NodeConfig      `toml:"node"`
	API       APIConfig       `toml:"api"`
	Timer     TimerConfig     `toml:"timer"`
	Sync      SyncConfig      `toml:"sync"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// NodeConfig identifies this installation.
type NodeConfig struct {
	DataDir string `toml:"data_dir"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TimerConfig controls session defaults.
type TimerConfig struct {
	DefaultDuration int    `toml:"default_duration"` // seconds for a fresh timer
	MaxDuration     int    `toml:"max_duration"`     // add-time cap in seconds
	Tick            string `toml:"tick"`             // engine tick interval
}

// SyncConfig controls best-effort remote sync of terminal records.
type SyncConfig struct {
	Endpoint string `toml:"endpoint"` // empty disables sync
	Token    string `toml:"token"`
	Timeout  string `toml:"timeout"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns sensible defaults for a local install.
func DefaultConfig() Config {
	home := tempoHome()
	return Config{
		Node: NodeConfig{
			DataDir: home,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7313,
		},
		Timer: TimerConfig{
			DefaultDuration: domain.DefaultDuration,
			MaxDuration:     domain.MaxDuration,
			Tick:            "1s",
		},
		Sync: SyncConfig{
			Timeout: "10s",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "tempo.log"),
		},
	}
}

// LoadConfig reads config from ~/.tempo/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(tempoHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.tempo/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(tempoHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// tempoHome returns the tempo data directory.
func tempoHome() string {
	if env := os.Getenv("TEMPO_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tempo")
}

// TempoHome is exported for use by other packages.
func TempoHome() string {
	return tempoHome()
}
