package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Dark switches the phone to the dark palette
	Dark bool `json:"dark" yaml:"dark"`

	// ScreenWidth is the inner width of the phone screen in cells
	ScreenWidth int `json:"screen_width" yaml:"screen_width"`

	// ScreenHeight is the inner height of the phone screen in rows
	ScreenHeight int `json:"screen_height" yaml:"screen_height"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Dark:         false,
		ScreenWidth:  40,
		ScreenHeight: 28,
	}
}
