package ui

import (
	"strings"
	"time"

	"phonechat/internal/emoji"
	"phonechat/internal/moments"

	"github.com/charmbracelet/lipgloss"
)

// RenderMoments draws the friend-circle feed. The post at cursor is marked
// and hearts are filled for posts the user has liked.
func RenderMoments(s Styles, posts []moments.Post, now time.Time, width int, user string, cursor int) string {
	if len(posts) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.Muted.Render("朋友圈还没有内容"))
	}

	blocks := make([]string, 0, len(posts))
	for i, p := range posts {
		blocks = append(blocks, renderPost(s, p, now, width, user, i == cursor))
	}
	return strings.Join(blocks, "\n"+s.RenderDivider(width)+"\n")
}

func renderPost(s Styles, p moments.Post, now time.Time, width int, user string, selected bool) string {
	textWidth := max(width-avatarCells-1, 4)

	var lines []string
	lines = append(lines, s.Name.Render(emoji.Expand(p.UserName)))
	if p.Text != "" {
		lines = append(lines, s.Body.Width(textWidth).Render(emoji.Expand(p.Text)))
	}

	heart := "♡"
	if p.LikedBy(user) {
		heart = "♥"
	}
	meta := s.Muted.Render(moments.RelativeTime(p.At, now))
	gap := max(textWidth-lipgloss.Width(meta)-2, 1)
	lines = append(lines, meta+strings.Repeat(" ", gap)+s.Likes.Render(heart))

	if len(p.Likes) > 0 {
		names := make([]string, len(p.Likes))
		for i, n := range p.Likes {
			names[i] = emoji.Expand(n)
		}
		lines = append(lines, s.Likes.Width(textWidth).Render("♥ "+strings.Join(names, ", ")))
	}
	for _, c := range p.Comments {
		lines = append(lines, renderComment(s, c, textWidth))
	}

	avatar := s.Avatar.Width(avatarCells).Render(Initial(p.UserName))
	if selected {
		avatar = s.Selected.Width(avatarCells).Render("▶")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderComment(s Styles, c moments.Comment, width int) string {
	head := s.Name.Render(emoji.Expand(c.By))
	if c.To != "" {
		head += s.Comment.Render("回复") + s.Name.Render(emoji.Expand(c.To))
	}
	return lipgloss.NewStyle().Width(width).Render(head + s.Comment.Render(": "+emoji.Expand(c.Content)))
}
