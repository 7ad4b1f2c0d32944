package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"phonechat/internal/chat"
	"phonechat/internal/emoji"

	"github.com/charmbracelet/lipgloss"
)

// Participants are the display names behind the two avatars.
type Participants struct {
	User    string
	Chatter string
}

// Terminal cells reserved around a bubble: avatar, gap, selection marker,
// and the empty margin on the far side.
const (
	avatarCells  = 2
	bubbleChrome = avatarCells + 1 + 2 + 4
)

// RenderMessages draws the chat body for the given fragments.
func RenderMessages(s Styles, frags []chat.Fragment, width int, now time.Time, p Participants, selected chat.ID) string {
	rows := make([]string, 0, len(frags))
	for _, f := range frags {
		rows = append(rows, renderFragment(s, f, width, now, p, f.ID == selected && selected != ""))
	}
	return strings.Join(rows, "\n\n")
}

func renderFragment(s Styles, f chat.Fragment, width int, now time.Time, p Participants, selected bool) string {
	switch f.Kind {
	case chat.KindDate:
		line := s.DateLine.Render(chat.FormatDivider(f.At, now))
		return center(s, line, width, selected)
	case chat.KindRedPacket:
		prefix := emoji.Expand(strings.TrimSuffix(f.Content, "红包"))
		line := s.SystemLine.Render("🧧 "+prefix) + s.RedPacket.Render("红包")
		return center(s, line, width, selected)
	}

	maxBubble := max(width-bubbleChrome, 4)
	bubble := renderBubble(s, f, maxBubble)

	name := p.Chatter
	if f.Mine {
		name = p.User
	}
	avatar := s.Avatar.Width(avatarCells).Render(Initial(name))

	marker := " "
	if selected {
		marker = s.Selected.Render("●")
	}

	if f.Mine {
		row := lipgloss.JoinHorizontal(lipgloss.Top, marker, " ", bubble, " ", avatar)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, row)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", bubble, " ", marker)
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, row)
}

func renderBubble(s Styles, f chat.Fragment, maxWidth int) string {
	style := s.OtherBubble
	if f.Mine {
		style = s.MineBubble
	}

	var text string
	switch f.Kind {
	case chat.KindImage:
		text = "🖼 " + imageLabel(f.ImageRef)
	case chat.KindVoice:
		text = voiceLabel(f.Seconds, f.Mine, maxWidth)
	default:
		text = segmentsText(f.Segments)
	}

	// Padding counts towards Width, so compare against the padded size.
	if lipgloss.Width(text)+2 > maxWidth {
		style = style.Width(maxWidth)
	}
	return style.Render(text)
}

func segmentsText(segs []emoji.Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Emoji != nil {
			sb.WriteString(seg.Emoji.Glyph)
			continue
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

func imageLabel(ref string) string {
	if ref == chat.PlaceholderImage || strings.HasPrefix(ref, "data:") {
		return "图片"
	}
	return filepath.Base(ref)
}

// voiceLabel grows with the note length, like the messenger's voice bubble.
func voiceLabel(seconds int, mine bool, maxWidth int) string {
	length := fmt.Sprintf("%d\"", seconds)
	room := max(maxWidth-2-lipgloss.Width(length)-4, 0)
	pad := strings.Repeat(" ", (seconds-chat.MinVoiceSeconds)*room/(chat.MaxVoiceSeconds-chat.MinVoiceSeconds))
	if mine {
		return length + pad + " )))"
	}
	return "((( " + pad + length
}

func center(s Styles, line string, width int, selected bool) string {
	if selected {
		line = s.Selected.Render("● ") + line
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// Initial is the avatar letter for a display name: its first visible rune
// after emoji tokens are expanded.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	for _, seg := range emoji.Split(name) {
		if seg.Emoji != nil {
			continue
		}
		for _, r := range strings.TrimSpace(seg.Text) {
			return string(r)
		}
	}
	if name == "" {
		return "?"
	}
	for _, r := range emoji.Expand(name) {
		return string(r)
	}
	return "?"
}
