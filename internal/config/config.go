package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all phonechat configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// The phone owner and the person on the other side of the chat
	User    ProfileConfig `yaml:"user"`
	Chatter ProfileConfig `yaml:"chatter"`

	// Status bar defaults
	Phone PhoneConfig `yaml:"phone"`

	// Terminal rendering
	UI UIConfig `yaml:"ui"`

	// Conversation seed file
	Fixture FixtureConfig `yaml:"fixture"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProfileConfig names a chat participant.
type ProfileConfig struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// PhoneConfig configures the simulated status bar.
type PhoneConfig struct {
	Charge        int      `yaml:"charge"`         // initial battery percentage
	SignalBars    int      `yaml:"signal_bars"`    // initial bars, 1-4
	Carriers      []string `yaml:"carriers"`       // cycled by clicking the carrier label
	Networks      []string `yaml:"networks"`       // cycled by clicking the network label
	ClockInterval string   `yaml:"clock_interval"` // status bar clock refresh
}

// FixtureConfig locates the YAML conversation seed.
type FixtureConfig struct {
	Path     string `yaml:"path"`
	Watch    bool   `yaml:"watch"`    // reload on change
	Debounce string `yaml:"debounce"` // quiet period before reloading
}

// DefaultProfile is used for both participants when nothing is configured.
var DefaultProfile = ProfileConfig{Name: "时光", Avatar: "default_avatar.png"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "phonechat",
		Version: "0.3.0",

		User:    DefaultProfile,
		Chatter: DefaultProfile,

		Phone: PhoneConfig{
			Charge:        64,
			SignalBars:    3,
			Carriers:      []string{"中国移动", "中国联通", "中国电信"},
			Networks:      []string{"wifi", "3G", "4G", "5G", "6G"},
			ClockInterval: "30s",
		},

		UI: *DefaultUIConfig(),

		Fixture: FixtureConfig{
			Debounce: "300ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Dir:    ".phonechat/logs",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks values the status bar cannot work without.
func (c *Config) Validate() error {
	if c.Phone.SignalBars < 1 || c.Phone.SignalBars > 4 {
		return fmt.Errorf("phone.signal_bars must be 1-4, got %d", c.Phone.SignalBars)
	}
	if c.Phone.Charge < 0 || c.Phone.Charge > 100 {
		return fmt.Errorf("phone.charge must be 0-100, got %d", c.Phone.Charge)
	}
	if len(c.Phone.Carriers) == 0 {
		return fmt.Errorf("phone.carriers must not be empty")
	}
	if len(c.Phone.Networks) == 0 {
		return fmt.Errorf("phone.networks must not be empty")
	}
	if c.UI.ScreenWidth < 24 || c.UI.ScreenHeight < 12 {
		return fmt.Errorf("ui screen must be at least 24x12, got %dx%d", c.UI.ScreenWidth, c.UI.ScreenHeight)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if name := os.Getenv("PHONECHAT_USER"); name != "" {
		c.User.Name = name
	}
	if name := os.Getenv("PHONECHAT_CHATTER"); name != "" {
		c.Chatter.Name = name
	}
	if path := os.Getenv("PHONECHAT_FIXTURE"); path != "" {
		c.Fixture.Path = path
	}
	if os.Getenv("PHONECHAT_DARK_MODE") == "1" {
		c.UI.Dark = true
	}
	if os.Getenv("PHONECHAT_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
	if dir := os.Getenv("PHONECHAT_LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
	}
}

// GetClockInterval returns the status bar refresh interval as a duration.
func (c *Config) GetClockInterval() time.Duration {
	d, err := time.ParseDuration(c.Phone.ClockInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetFixtureDebounce returns the fixture reload quiet period as a duration.
func (c *Config) GetFixtureDebounce() time.Duration {
	d, err := time.ParseDuration(c.Fixture.Debounce)
	if err != nil || d < 0 {
		return 300 * time.Millisecond
	}
	return d
}
