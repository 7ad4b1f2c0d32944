package ui

import (
	"fmt"
	"strings"

	"phonechat/internal/emoji"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole phone.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := emoji.Expand(m.chatter.Name)
	if m.showMoments {
		title = "朋友圈"
	}
	sections := []string{
		RenderStatusBar(m.styles, m.bar, m.clock.String(), m.width),
		RenderHeader(m.styles, title, m.width),
		m.viewport.View(),
		m.renderFooter(),
	}
	return RenderFrame(m.styles, sections, m.bar.Caption(), m.width)
}

// layout sizes the viewport around the footer and refreshes its content.
func (m Model) layout() Model {
	footer := m.renderFooter()
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-2-lipgloss.Height(footer), 3)
	m.viewport.SetContent(m.renderBody())
	return m
}

func (m Model) renderBody() string {
	now := m.clock.Now()
	if m.showMoments {
		return RenderMoments(m.styles, m.feed.Posts(), now, m.width, m.user.Name, m.postCursor)
	}
	return RenderMessages(m.styles, m.log.Fragments(), m.width, now, m.participants(), m.selected)
}

func (m Model) renderFooter() string {
	s := m.styles
	var lines []string

	switch m.panel {
	case PanelNone:
		hint := "tab 输入 · ↑↓ 选择 · ^D 删除 · F9 朋友圈"
		if m.showMoments {
			hint = "↑↓ 选择 · enter 赞 · c 评论 · F9 返回"
		}
		lines = append(lines, s.Muted.Render(hint))
	case PanelVoice:
		lines = append(lines, m.senderLabel()+s.Panel.Render(fmt.Sprintf("🎤 按住说话  ◀ %d\" ▶", m.voiceSeconds)))
	case PanelText:
		lines = append(lines, m.senderLabel()+m.input.View())
	case PanelEmoji:
		lines = append(lines, m.senderLabel()+m.input.View())
		lines = append(lines, m.renderEmojiGrid()...)
	case PanelAddition:
		items := make([]string, len(additionLabels))
		for i, label := range additionLabels {
			if i == m.additionIndex {
				items[i] = s.Cursor.Render(" " + label + " ")
			} else {
				items[i] = s.PanelItem.Render(" " + label + " ")
			}
		}
		lines = append(lines, m.senderLabel()+strings.Join(items, " "))
	case PanelClock:
		lines = append(lines, s.Panel.Render("设置时间 ")+m.input.View())
	case PanelDate:
		lines = append(lines, s.Panel.Render("插入时间 ")+m.input.View())
	case PanelImage:
		lines = append(lines, m.senderLabel()+s.Panel.Render("图片 ")+m.input.View())
	case PanelComment:
		lines = append(lines, s.Panel.Render("评论 ")+m.input.View())
	}

	if m.status != "" {
		if m.statusErr {
			lines = append(lines, s.Error.Render(m.status))
		} else {
			lines = append(lines, s.Muted.Render(m.status))
		}
	}
	return s.InputBar.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// senderLabel shows which side the next message is sent from.
func (m Model) senderLabel() string {
	name := "我"
	if !m.sendAsMine {
		name = Initial(m.chatter.Name)
	}
	return m.styles.Name.Render(name) + " "
}

func (m Model) renderEmojiGrid() []string {
	picker := emoji.Picker()
	var rows []string
	for start := 0; start < len(picker); start += emojiColumns {
		end := min(start+emojiColumns, len(picker))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			if i == m.emojiCursor {
				cells = append(cells, m.styles.Cursor.Render(picker[i].Glyph))
			} else {
				cells = append(cells, picker[i].Glyph)
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	rows = append(rows, m.styles.Muted.Render(m.pickerEmoji().Token()))
	return rows
}
