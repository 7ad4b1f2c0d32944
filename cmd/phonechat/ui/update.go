package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"phonechat/internal/chat"
	"phonechat/internal/emoji"
	"phonechat/internal/logging"
	"phonechat/internal/moments"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles one message. Every mutation of the log, the feed and the
// phone happens here, on the program goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The phone keeps its configured size; nothing to do.

	case ClockTickMsg:
		cmds = append(cmds, waitForTick(m.ticks))

	case FixtureReloadedMsg:
		m = m.reload(msg)

	case FixtureErrorMsg:
		m = m.setError(fmt.Sprintf("fixture: %v", msg.Err))

	case tea.KeyMsg:
		var cmd tea.Cmd
		var handled bool
		m, cmd, handled = m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if !handled && m.panel.prompt() {
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m = m.layout()
	if m.changes.n != m.seen {
		m.seen = m.changes.n
		m.viewport.GotoBottom()
	}
	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input. handled=false means the key should
// fall through to the text input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.Shutdown()
		return m, tea.Quit, true
	case "f1":
		m.bar.CycleSignal()
		return m, nil, true
	case "f2":
		m.bar.CycleCarrier()
		return m, nil, true
	case "f3":
		m.bar.CycleNetwork()
		return m, nil, true
	case "f4":
		m.bar.CycleBattery()
		return m, nil, true
	case "f5":
		m = m.openPrompt(PanelClock, m.clock.String())
		return m, textinput.Blink, true
	case "f6":
		m.clock.Resume(m.ctx, m.clockInterval, m.onTick)
		m = m.setStatus("时间已恢复")
		return m, nil, true
	case "f9":
		m.showMoments = !m.showMoments
		m = m.closePanel()
		m.viewport.GotoTop()
		return m, nil, true
	case "ctrl+o":
		m.sendAsMine = !m.sendAsMine
		return m, nil, true
	case "ctrl+t":
		m = m.openPrompt(PanelDate, chat.DefaultDividerInput(m.clock.Now()))
		return m, textinput.Blink, true
	case "esc":
		m = m.closePanel()
		return m, nil, true
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}

	if m.showMoments {
		return m.handleMomentsKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.tabs = m.tabs.Next()
		m = m.setPanel(m.tabs.Current())
		return m, textinput.Blink, true
	case "up":
		if m.panel == PanelEmoji {
			m.emojiCursor = max(m.emojiCursor-emojiColumns, 0)
			return m, nil, true
		}
		m = m.moveSelection(-1)
		return m, nil, true
	case "down":
		if m.panel == PanelEmoji {
			m.emojiCursor = min(m.emojiCursor+emojiColumns, len(emoji.Picker())-1)
			return m, nil, true
		}
		m = m.moveSelection(1)
		return m, nil, true
	case "ctrl+d", "delete":
		m = m.deleteSelected()
		return m, nil, true
	case "enter":
		m = m.submit()
		return m, nil, true
	}

	switch m.panel {
	case PanelNone:
		switch msg.String() {
		case "+", "=":
			m.bar.Nudge(true)
			return m, nil, true
		case "-":
			m.bar.Nudge(false)
			return m, nil, true
		}
	case PanelVoice:
		switch msg.String() {
		case "left":
			m.voiceSeconds = max(m.voiceSeconds-1, chat.MinVoiceSeconds)
			return m, nil, true
		case "right":
			m.voiceSeconds = min(m.voiceSeconds+1, chat.MaxVoiceSeconds)
			return m, nil, true
		}
	case PanelEmoji:
		switch msg.String() {
		case "left":
			m.emojiCursor = max(m.emojiCursor-1, 0)
			return m, nil, true
		case "right":
			m.emojiCursor = min(m.emojiCursor+1, len(emoji.Picker())-1)
			return m, nil, true
		}
	case PanelAddition:
		switch msg.String() {
		case "left":
			m.additionIndex = max(m.additionIndex-1, 0)
			return m, nil, true
		case "right":
			m.additionIndex = min(m.additionIndex+1, len(additionLabels)-1)
			return m, nil, true
		}
	}
	return m, nil, false
}

// handleMomentsKey drives the feed. An open prompt (comment, clock or date)
// takes the keys instead.
func (m Model) handleMomentsKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.panel.prompt() {
		if msg.String() == "enter" {
			m = m.submit()
			return m, nil, true
		}
		return m, nil, false
	}

	posts := m.feed.Posts()
	switch msg.String() {
	case "up":
		m.postCursor = max(m.postCursor-1, 0)
	case "down":
		m.postCursor = max(min(m.postCursor+1, len(posts)-1), 0)
	case "enter", "l":
		if len(posts) == 0 {
			break
		}
		liked, err := m.feed.ToggleLike(posts[m.postCursor].ID, m.user.Name)
		if err != nil {
			m = m.setError(err.Error())
			break
		}
		if liked {
			m = m.setStatus("已赞")
		} else {
			m = m.setStatus("已取消")
		}
	case "c":
		if len(posts) > 0 {
			m = m.openPrompt(PanelComment, "")
			return m, textinput.Blink, true
		}
	case "ctrl+d", "delete":
		if len(posts) == 0 {
			break
		}
		if err := m.feed.Remove(posts[m.postCursor].ID); err != nil {
			m = m.setError(err.Error())
			break
		}
		m.postCursor = max(min(m.postCursor, m.feed.Len()-1), 0)
	}
	return m, nil, true
}

// submit acts on enter for the open panel.
func (m Model) submit() Model {
	value := strings.TrimSpace(m.input.Value())
	mine, avatar := m.sendAsMine, m.senderAvatar()

	switch m.panel {
	case PanelEmoji:
		m.input.SetValue(m.input.Value() + m.pickerEmoji().Token())
		m.input.CursorEnd()
		m = m.setPanel(PanelText)

	case PanelText:
		if value == "" {
			return m
		}
		m.log.Append(chat.NewText(mine, avatar, m.input.Value()))
		m.input.Reset()

	case PanelVoice:
		m.log.Append(chat.NewVoice(mine, avatar, m.voiceSeconds))

	case PanelAddition:
		return m.submitAddition()

	case PanelImage:
		m.log.Append(chat.NewImage(mine, avatar, value))
		m = m.closePanel()

	case PanelDate:
		at, err := chat.ParseDivider(value, m.clock.Now())
		if err != nil {
			return m.setError(err.Error())
		}
		m.log.Append(chat.NewDivider(at))
		m = m.closePanel()

	case PanelClock:
		at, err := time.Parse("15:04", value)
		if err != nil {
			return m.setError(fmt.Sprintf("时间格式%s错误: 时:分", value))
		}
		if err := m.clock.Set(at.Hour(), at.Minute()); err != nil {
			return m.setError(err.Error())
		}
		m = m.closePanel()
		m = m.setStatus("时间已设为 " + m.clock.String())

	case PanelComment:
		m = m.submitComment(value)
	}
	return m
}

func (m Model) submitAddition() Model {
	switch additionItem(m.additionIndex) {
	case addImage:
		return m.openPrompt(PanelImage, "")
	case addRedPacket:
		body := chat.RedPacketReceived{Sender: m.chatter.Name}
		if m.sendAsMine {
			body = chat.RedPacketReceived{Friend: m.chatter.Name}
		}
		m.log.Append(chat.Message{Mine: m.sendAsMine, Body: body})
		return m
	case addDate:
		return m.openPrompt(PanelDate, chat.DefaultDividerInput(m.clock.Now()))
	}
	return m
}

func (m Model) submitComment(content string) Model {
	posts := m.feed.Posts()
	if len(posts) == 0 {
		return m.closePanel()
	}
	err := m.feed.AddComment(posts[m.postCursor].ID, moments.Comment{By: m.user.Name, Content: content})
	if errors.Is(err, moments.ErrEmptyComment) {
		return m.setError("评论不能为空")
	}
	if err != nil {
		return m.setError(err.Error())
	}
	return m.closePanel()
}

// moveSelection walks the highlight through the log by ID. Moving past
// either end clears it.
func (m Model) moveSelection(delta int) Model {
	n := m.log.Len()
	if n == 0 {
		m.selected = ""
		return m
	}
	i := m.log.IndexOf(m.selected)
	switch {
	case i < 0 && delta < 0:
		i = n - 1
	case i < 0:
		i = 0
	default:
		i += delta
	}
	entry, ok := m.log.At(i)
	if !ok {
		m.selected = ""
		return m
	}
	m.selected = entry.ID
	return m
}

func (m Model) deleteSelected() Model {
	if m.selected == "" {
		return m.setStatus("先用 ↑/↓ 选择消息")
	}
	if err := m.log.DeleteByID(m.selected); err != nil {
		m.selected = ""
		return m.setError(err.Error())
	}
	logging.UIDebug("deleted %s", m.selected)
	m.selected = ""
	return m.setStatus("已删除")
}

func (m Model) reload(msg FixtureReloadedMsg) Model {
	if msg.File == nil {
		return m
	}
	now := m.clock.Now()
	m.user, m.chatter = msg.File.Profiles(m.user, m.chatter)
	m.log.Reset(msg.File.ChatMessages(now))
	m.feed = moments.NewFeed(msg.File.Posts(now))
	m.postCursor = 0
	if m.log.IndexOf(m.selected) < 0 {
		m.selected = ""
	}
	logging.UIDebug("fixture reloaded (%d messages)", m.log.Len())
	return m.setStatus("已重新载入 " + strconv.Itoa(m.log.Len()) + " 条消息")
}

func (m Model) setPanel(p Panel) Model {
	m.panel = p
	if p.prompt() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

// openPrompt shows a one-line prompt outside the tab order.
func (m Model) openPrompt(p Panel, initial string) Model {
	m = m.setPanel(p)
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m
}

func (m Model) closePanel() Model {
	if m.panel != PanelText && m.panel != PanelEmoji {
		m.input.Reset()
	}
	m.tabs = tabPanels
	return m.setPanel(PanelNone)
}

func (m Model) setStatus(s string) Model {
	m.status, m.statusErr = s, false
	return m
}

func (m Model) setError(s string) Model {
	logging.Get(logging.CategoryUI).Warn("%s", s)
	m.status, m.statusErr = s, true
	return m
}
