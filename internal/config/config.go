package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"wardview/internal/eventbus"
)

// DefaultInterval is the refresh cadence in seconds when nothing overrides it.
const DefaultInterval = 30

// FileName is the per-data-dir config file.
const FileName = ".wardview.toml"

// Config represents the application configuration
type Config struct {
	Version          int             `toml:"version"`
	DataDir          string          `toml:"data_dir"`
	Interval         int             `toml:"interval"` // refresh cadence, seconds
	Watch            bool            `toml:"watch"`
	UISettings       UISettings      `toml:"ui"`
	ExpandedSections map[string]bool `toml:"expanded_sections"` // roster section name -> open
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowStats      bool   `toml:"show_stats"`      // queue summary in the title bar
	ExpandDetails  bool   `toml:"expand_details"`  // activity panels start open
	SortMode       string `toml:"sort_mode"`       // name | role | status
	AutosaveOnExit bool   `toml:"autosave_on_exit"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the user config dir.
// Per-data-dir files are handled through LoadFromPath/SaveToPath.
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "wardview")
	os.MkdirAll(appDir, 0755)

	return &configService{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// No file yet: hand back defaults
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{DataDir: cfg.DataDir})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{DataDir: cfg.DataDir})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	normalize(&cfg)

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
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

// normalize fills in values a hand-edited file may have left out or broken.
func normalize(cfg *Config) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ExpandedSections == nil {
		cfg.ExpandedSections = make(map[string]bool)
	}
	switch cfg.UISettings.SortMode {
	case "name", "role", "status":
	default:
		cfg.UISettings.SortMode = "name"
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &Config{
		Version:          1,
		DataDir:          cwd,
		Interval:         DefaultInterval,
		Watch:            false,
		ExpandedSections: make(map[string]bool),
		UISettings: UISettings{
			ShowStats:      true,
			ExpandDetails:  false,
			SortMode:       "name",
			AutosaveOnExit: true,
		},
	}
}
