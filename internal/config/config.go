package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"multipick/internal/eventbus"
)

// Multi modifier choices
const (
	MultiKeyAuto = "auto"
	MultiKeyCtrl = "ctrl"
	MultiKeyMeta = "meta"
)

// Cancel zone names: screen regions whose clicks never change the selection
const (
	ZoneButton = "button" // row controls such as [info] and [open]
	ZoneHeader = "header"
	ZoneFooter = "footer"
)

// Config represents the application configuration
type Config struct {
	Version     int               `toml:"version"`
	LogFile     string            `toml:"log_file"`
	ShowHidden  bool              `toml:"show_hidden"`
	Include     string            `toml:"include"`      // glob a name must match to be selectable
	MultiKey    string            `toml:"multi_key"`    // auto, ctrl or meta
	CancelZones []string          `toml:"cancel_zones"` // regions that never change the selection
	Keys        map[string]string `toml:"keys"`         // key -> public selection method
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns ~/.config/multipick/config.toml, or the closest
// equivalent on the current platform
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "multipick", "config.toml")
}

// NewConfigService creates a config service reading path, or DefaultPath()
// when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing fields keep
// their default values; unknown fields are rejected.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Keys == nil {
		cfg.Keys = make(map[string]string)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values a user can get wrong
func (c *Config) Validate() error {
	switch c.MultiKey {
	case "", MultiKeyAuto, MultiKeyCtrl, MultiKeyMeta:
	default:
		return fmt.Errorf("multi_key must be %q, %q or %q, got %q", MultiKeyAuto, MultiKeyCtrl, MultiKeyMeta, c.MultiKey)
	}

	if _, err := filepath.Match(c.Include, ""); err != nil {
		return fmt.Errorf("include pattern %q: %w", c.Include, err)
	}

	for _, zone := range c.CancelZones {
		if !slices.Contains([]string{ZoneButton, ZoneHeader, ZoneFooter}, zone) {
			return fmt.Errorf("unknown cancel zone %q", zone)
		}
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		LogFile:     "multipick.log",
		Include:     "*",
		MultiKey:    MultiKeyAuto,
		CancelZones: []string{ZoneButton, ZoneFooter},
		Keys: map[string]string{
			"a":      "selectAll",
			"ctrl+a": "selectAll",
			"x":      "clearSelection",
		},
	}
}
