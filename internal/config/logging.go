package config

// LoggingConfig controls the per-category log files under Dir. The screen
// owns the terminal, so nothing is logged unless DebugMode is on.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json lines
	Dir    string `yaml:"dir"`    // one <date>_<category>.log per category

	// DebugMode turns file logging on. PHONECHAT_DEBUG=1 and --verbose set it.
	DebugMode bool `yaml:"debug_mode"`

	// Categories mutes individual files, e.g. {phone: false} to silence
	// clock ticks. Unlisted categories stay on.
	Categories map[string]bool `yaml:"categories"`
}

// IsCategoryEnabled reports whether the named category (chat, phone,
// moments, fixture, ui, boot) writes to its file.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	enabled, listed := c.Categories[category]
	return !listed || enabled
}
