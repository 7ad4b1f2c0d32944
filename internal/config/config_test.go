package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "phonechat" {
		t.Errorf("expected Name=phonechat, got %s", cfg.Name)
	}
	if cfg.Phone.Charge != 64 {
		t.Errorf("expected Charge=64, got %d", cfg.Phone.Charge)
	}
	if cfg.Phone.SignalBars != 3 {
		t.Errorf("expected SignalBars=3, got %d", cfg.Phone.SignalBars)
	}
	if cfg.User.Name != "时光" || cfg.Chatter.Name != "时光" {
		t.Errorf("expected default participant names, got %q/%q", cfg.User.Name, cfg.Chatter.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("PHONECHAT_USER", "")
	t.Setenv("PHONECHAT_CHATTER", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Chatter = ProfileConfig{Name: "[kiss] 汤圆。", Avatar: "avatar2.jpg"}
	cfg.Phone.Charge = 15

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Chatter.Name != "[kiss] 汤圆。" {
		t.Errorf("expected chatter name to round-trip, got %s", loaded.Chatter.Name)
	}
	if loaded.Phone.Charge != 15 {
		t.Errorf("expected Charge=15, got %d", loaded.Phone.Charge)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if cfg.Phone.ClockInterval != "30s" {
		t.Errorf("expected default clock interval, got %s", cfg.Phone.ClockInterval)
	}
}

func TestConfig_LoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("phone:\n  charge: 12\n  signal_bars: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Phone.Charge != 12 || cfg.Phone.SignalBars != 1 {
		t.Errorf("expected file values, got charge=%d bars=%d", cfg.Phone.Charge, cfg.Phone.SignalBars)
	}
	if len(cfg.Phone.Carriers) != 3 {
		t.Errorf("expected default carriers to survive, got %v", cfg.Phone.Carriers)
	}
}

func TestConfig_LoadInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("phone: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	outOfRange := filepath.Join(dir, "range.yaml")
	if err := os.WriteFile(outOfRange, []byte("phone:\n  signal_bars: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(outOfRange); err == nil {
		t.Error("expected validation error for signal_bars")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Phone.Charge = 101
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for charge")
	}

	cfg = DefaultConfig()
	cfg.Phone.Networks = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty networks")
	}

	cfg = DefaultConfig()
	cfg.UI.ScreenWidth = 10
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for a tiny screen")
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetClockInterval(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
	if got := cfg.GetFixtureDebounce(); got != 300*time.Millisecond {
		t.Errorf("expected 300ms, got %v", got)
	}

	cfg.Phone.ClockInterval = "garbage"
	cfg.Fixture.Debounce = "-1s"
	if got := cfg.GetClockInterval(); got != 30*time.Second {
		t.Errorf("expected fallback 30s, got %v", got)
	}
	if got := cfg.GetFixtureDebounce(); got != 300*time.Millisecond {
		t.Errorf("expected fallback 300ms, got %v", got)
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("chat") {
		t.Error("categories must be off without debug mode")
	}

	lc.DebugMode = true
	if !lc.IsCategoryEnabled("chat") {
		t.Error("categories default on in debug mode")
	}

	lc.Categories = map[string]bool{"chat": false}
	if lc.IsCategoryEnabled("chat") {
		t.Error("explicitly disabled category reported enabled")
	}
	if !lc.IsCategoryEnabled("phone") {
		t.Error("unlisted category should default on")
	}
}

func TestConfig_LoadLoggingCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "logging:\n  debug_mode: true\n  categories:\n    phone: false\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.IsCategoryEnabled("phone") {
		t.Error("phone ticks should be muted")
	}
	if !cfg.Logging.IsCategoryEnabled("chat") {
		t.Error("chat should stay on")
	}
	if cfg.Logging.Dir != ".phonechat/logs" {
		t.Errorf("expected default log dir to survive, got %s", cfg.Logging.Dir)
	}
}
