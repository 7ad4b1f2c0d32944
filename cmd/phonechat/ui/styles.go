// Package ui renders the phone shell, the chat screen and the moments feed
// for the phonechat terminal interface.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette modelled on the messenger's own colours
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#EDEDED") // chat body grey
	LightForeground = lipgloss.Color("#191919")
	LightHeader     = lipgloss.Color("#F7F7F7")
	LightMineBubble = lipgloss.Color("#95EC69") // outgoing green
	LightBubble     = lipgloss.Color("#FFFFFF") // incoming white
	LightMuted      = lipgloss.Color("#9E9E9E")
	LightFrame      = lipgloss.Color("#1C1C1E")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#111111")
	DarkForeground = lipgloss.Color("#D5D5D5")
	DarkHeader     = lipgloss.Color("#1E1E1E")
	DarkMineBubble = lipgloss.Color("#3EB575")
	DarkBubble     = lipgloss.Color("#2C2C2C")
	DarkMuted      = lipgloss.Color("#6E6E6E")
	DarkFrame      = lipgloss.Color("#8E8E93")

	// Battery fill colours (same in both modes)
	BatteryNormal   = lipgloss.Color("#000000")
	BatteryLow      = lipgloss.Color("#FF0000")
	BatteryCharging = lipgloss.Color("#56EB2C")
	BatterySaving   = lipgloss.Color("#FFCC0C")

	// Semantic Colors
	Destructive = lipgloss.Color("#FA5151")
	RedPacket   = lipgloss.Color("#FF2400")
	Link        = lipgloss.Color("#576B95") // moments names
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Header     lipgloss.Color
	MineBubble lipgloss.Color
	Bubble     lipgloss.Color
	Muted      lipgloss.Color
	Frame      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Header:     LightHeader,
		MineBubble: LightMineBubble,
		Bubble:     LightBubble,
		Muted:      LightMuted,
		Frame:      LightFrame,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Header:     DarkHeader,
		MineBubble: DarkMineBubble,
		Bubble:     DarkBubble,
		Muted:      DarkMuted,
		Frame:      DarkFrame,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or PHONECHAT_DARK_MODE,
// light mode otherwise.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				// 0-6 and 8 (dark grey) are likely dark backgrounds
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("PHONECHAT_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Shell
	Frame     lipgloss.Style
	StatusBar lipgloss.Style
	Header    lipgloss.Style
	Body      lipgloss.Style
	Button    lipgloss.Style

	// Messages
	MineBubble  lipgloss.Style
	OtherBubble lipgloss.Style
	Avatar      lipgloss.Style
	DateLine    lipgloss.Style
	SystemLine  lipgloss.Style
	RedPacket   lipgloss.Style
	Selected    lipgloss.Style

	// Input
	InputBar  lipgloss.Style
	Panel     lipgloss.Style
	PanelItem lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style

	// Moments
	Name    lipgloss.Style
	Likes   lipgloss.Style
	Comment lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(theme.Header).
			Foreground(theme.Foreground).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Button: lipgloss.NewStyle().
			Foreground(theme.Frame).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 2),

		MineBubble: lipgloss.NewStyle().
			Background(theme.MineBubble).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1),

		OtherBubble: lipgloss.NewStyle().
			Background(theme.Bubble).
			Foreground(theme.Foreground).
			Padding(0, 1),

		Avatar: lipgloss.NewStyle().
			Background(theme.Muted).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),

		DateLine: lipgloss.NewStyle().
			Foreground(theme.Muted),

		SystemLine: lipgloss.NewStyle().
			Foreground(theme.Muted),

		RedPacket: lipgloss.NewStyle().
			Foreground(RedPacket),

		Selected: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		InputBar: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Muted),

		Panel: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		PanelItem: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Cursor: lipgloss.NewStyle().
			Reverse(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Name: lipgloss.NewStyle().
			Foreground(Link).
			Bold(true),

		Likes: lipgloss.NewStyle().
			Foreground(Link),

		Comment: lipgloss.NewStyle().
			Foreground(theme.Foreground),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}
