// Package config provides configuration management for the automation
// client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	// Host is the websocket URL of the remote display endpoint.
	Host string `mapstructure:"host"`

	// Keymap selects the keysym translation layout.
	Keymap string `mapstructure:"keymap"`

	// ToggleDelayMs is held between a press and its matching release.
	ToggleDelayMs int `mapstructure:"toggle_delay_ms"`

	// DoubleClickDelayMs separates repeated clicks of one multi-click.
	DoubleClickDelayMs int `mapstructure:"double_click_delay_ms"`

	// KeyIntervalMs separates characters while typing.
	KeyIntervalMs int `mapstructure:"key_interval_ms"`

	// CaptureDir is prepended to relative capture paths.
	CaptureDir string `mapstructure:"capture_dir"`
}

// DefaultConfig returns a new Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:               "ws://127.0.0.1:5901/websockify",
		Keymap:             "US",
		ToggleDelayMs:      100,
		DoubleClickDelayMs: 250,
		KeyIntervalMs:      20,
		CaptureDir:         ".",
	}
}

// Manager handles loading configuration from file, environment and flags.
type Manager struct {
	mu     sync.Mutex
	v      *viper.Viper
	config *Config
}

// NewManager creates a configuration manager with defaults applied. The
// config file lives at <config dir>/vncpilot/config.yaml and every key is
// overridable through VNCPILOT_* environment variables.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	v.AddConfigPath(dir)
	v.AddConfigPath(".")
	v.SetEnvPrefix("VNCPILOT")
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("keymap", defaults.Keymap)
	v.SetDefault("toggle_delay_ms", defaults.ToggleDelayMs)
	v.SetDefault("double_click_delay_ms", defaults.DoubleClickDelayMs)
	v.SetDefault("key_interval_ms", defaults.KeyIntervalMs)
	v.SetDefault("capture_dir", defaults.CaptureDir)

	return &Manager{v: v, config: defaults}, nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "vncpilot"), nil
}

// Viper exposes the underlying viper instance so the CLI can bind flags.
func (m *Manager) Viper() *viper.Viper {
	return m.v
}

// Load reads the configuration. A missing config file is not an error;
// defaults and environment apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	cfg := DefaultConfig()
	if err := m.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	m.config = cfg
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}
