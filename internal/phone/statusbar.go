// Package phone models the simulated handset around the chat screen:
// status bar controls that cycle on click, the battery, and the clock.
package phone

import (
	"fmt"
	"math/rand/v2"

	"phonechat/internal/cycle"
	"phonechat/internal/logging"
)

// BatteryMode is the battery icon state.
type BatteryMode string

const (
	BatteryNormal BatteryMode = "normal"
	BatteryCharge BatteryMode = "charge"
	BatterySaving BatteryMode = "saving"
)

// Tone is the colour class of the battery fill.
type Tone int

const (
	ToneNormal   Tone = iota // black fill
	ToneLow                  // red fill, normal mode at or below LowCharge
	ToneCharging             // green fill
	ToneSaving               // yellow fill
)

// LowCharge is the charge at or below which a normal battery turns red.
const LowCharge = 20

// WiFi is the network label drawn as an icon instead of text.
const WiFi = "wifi"

var (
	signalLevels   = []int{1, 2, 3, 4}
	batteryModes   = []BatteryMode{BatteryNormal, BatteryCharge, BatterySaving}
	buttonCaptions = cycle.MustNew([]string{"扶贫", "加餐", "打赏", "点赞"}, 0)
)

// Options seeds a StatusBar.
type Options struct {
	Charge     int
	SignalBars int
	Carriers   []string
	Networks   []string

	// RandIntN overrides the random step source used by Nudge.
	RandIntN func(n int) int
}

// StatusBar is the row of clickable indicators at the top of the screen.
// Each indicator is a cycle.Choice replaced by its Next on click.
type StatusBar struct {
	Signal  cycle.Choice[int]
	Carrier cycle.Choice[string]
	Network cycle.Choice[string]
	Battery cycle.Choice[BatteryMode]

	charge   int
	caption  string
	randIntN func(n int) int
}

// NewStatusBar builds a status bar from opts.
func NewStatusBar(opts Options) (*StatusBar, error) {
	signal, err := cycle.New(signalLevels, opts.SignalBars-1)
	if err != nil {
		return nil, fmt.Errorf("signal bars %d: %w", opts.SignalBars, err)
	}
	carrier, err := cycle.New(opts.Carriers, 0)
	if err != nil {
		return nil, fmt.Errorf("carriers: %w", err)
	}
	network, err := cycle.New(opts.Networks, 0)
	if err != nil {
		return nil, fmt.Errorf("networks: %w", err)
	}

	randIntN := opts.RandIntN
	if randIntN == nil {
		randIntN = rand.IntN
	}

	sb := &StatusBar{
		Signal:   signal,
		Carrier:  carrier,
		Network:  network,
		Battery:  cycle.MustNew(batteryModes, 0),
		charge:   clampCharge(opts.Charge),
		caption:  buttonCaptions.Random(),
		randIntN: randIntN,
	}
	return sb, nil
}

// CycleSignal advances the signal bars.
func (s *StatusBar) CycleSignal() {
	s.Signal = s.Signal.Next()
	logging.PhoneDebug("signal -> %d", s.Signal.Current())
}

// CycleCarrier advances the carrier name.
func (s *StatusBar) CycleCarrier() {
	s.Carrier = s.Carrier.Next()
	logging.PhoneDebug("carrier -> %s", s.Carrier.Current())
}

// CycleNetwork advances the network type.
func (s *StatusBar) CycleNetwork() {
	s.Network = s.Network.Next()
	logging.PhoneDebug("network -> %s", s.Network.Current())
}

// CycleBattery advances the battery mode.
func (s *StatusBar) CycleBattery() {
	s.Battery = s.Battery.Next()
	logging.PhoneDebug("battery -> %s", s.Battery.Current())
}

// Bars returns the number of visible signal bars.
func (s *StatusBar) Bars() int {
	return s.Signal.Current()
}

// IsWiFi reports whether the network indicator shows the wifi icon.
func (s *StatusBar) IsWiFi() bool {
	return s.Network.Current() == WiFi
}

// Charge returns the battery percentage.
func (s *StatusBar) Charge() int {
	return s.charge
}

// AdjustCharge changes the battery percentage by delta, clamped to 0-100.
func (s *StatusBar) AdjustCharge(delta int) {
	s.charge = clampCharge(s.charge + delta)
}

// Nudge moves the charge up or down by a random step of 0-9.
func (s *StatusBar) Nudge(up bool) {
	step := s.randIntN(10)
	if !up {
		step = -step
	}
	s.AdjustCharge(step)
}

func clampCharge(c int) int {
	return max(0, min(100, c))
}

// Tone returns the colour class of the battery fill.
func (s *StatusBar) Tone() Tone {
	switch s.Battery.Current() {
	case BatteryNormal:
		if s.charge <= LowCharge {
			return ToneLow
		}
		return ToneNormal
	case BatteryCharge:
		return ToneCharging
	default:
		return ToneSaving
	}
}

// Charging reports whether the lightning icon is shown.
func (s *StatusBar) Charging() bool {
	return s.Battery.Current() == BatteryCharge
}

// FillCells returns how many of width cells the battery fill occupies.
// A full battery fills 80% of the body, leaving room for the cap.
func (s *StatusBar) FillCells(width int) int {
	return s.charge * width * 8 / 1000
}

// Caption is the label of the button under the screen, picked once.
func (s *StatusBar) Caption() string {
	return s.caption
}
