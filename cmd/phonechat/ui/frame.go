package ui

import (
	"fmt"
	"strings"

	"phonechat/internal/phone"

	"github.com/charmbracelet/lipgloss"
)

// batteryCells is the width of the battery body, cap excluded.
const batteryCells = 10

var signalGlyphs = []string{"▂", "▄", "▆", "█"}

// RenderStatusBar draws the top row of the phone screen: signal, carrier and
// network on the left, the clock centred, the battery on the right.
func RenderStatusBar(s Styles, bar *phone.StatusBar, clock string, width int) string {
	var signal strings.Builder
	for i, g := range signalGlyphs {
		if i < bar.Bars() {
			signal.WriteString(s.StatusBar.Render(g))
		} else {
			signal.WriteString(s.Muted.Render(g))
		}
	}

	network := bar.Network.Current()
	if bar.IsWiFi() {
		network = "≋"
	}
	left := signal.String() + " " + s.StatusBar.Render(bar.Carrier.Current()) + " " + s.StatusBar.Render(network)
	right := s.StatusBar.Render(fmt.Sprintf("%d%%", bar.Charge())) + " " + RenderBattery(s, bar)
	center := s.StatusBar.Render(clock)

	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	pad1 := max((width-cw)/2-lw, 1)
	pad2 := max(width-lw-pad1-cw-rw, 1)
	return left + strings.Repeat(" ", pad1) + center + strings.Repeat(" ", pad2) + right
}

// RenderBattery draws the battery icon with its fill coloured by tone.
func RenderBattery(s Styles, bar *phone.StatusBar) string {
	fill := bar.FillCells(batteryCells)
	inner := batteryCells * 8 / 10

	fillStyle := lipgloss.NewStyle().Foreground(toneColor(bar.Tone()))
	icon := s.Muted.Render("[") +
		fillStyle.Render(strings.Repeat("█", fill)) +
		strings.Repeat(" ", max(inner-fill, 0)) +
		s.Muted.Render("]▪")
	if bar.Charging() {
		icon += fillStyle.Render("⚡")
	}
	return icon
}

func toneColor(t phone.Tone) lipgloss.Color {
	switch t {
	case phone.ToneLow:
		return BatteryLow
	case phone.ToneCharging:
		return BatteryCharging
	case phone.ToneSaving:
		return BatterySaving
	default:
		return BatteryNormal
	}
}

// RenderHeader draws the chat title row.
func RenderHeader(s Styles, title string, width int) string {
	left := "< " + title
	right := "···"
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFrame wraps the screen sections in the phone outline and puts the
// caption button underneath.
func RenderFrame(s Styles, sections []string, caption string, width int) string {
	screen := s.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	button := lipgloss.PlaceHorizontal(lipgloss.Width(screen), lipgloss.Center, s.Button.Render(caption))
	return lipgloss.JoinVertical(lipgloss.Left, screen, button)
}
