package ui

import (
	"context"
	"fmt"
	"time"

	"phonechat/internal/chat"
	"phonechat/internal/config"
	"phonechat/internal/cycle"
	"phonechat/internal/emoji"
	"phonechat/internal/fixture"
	"phonechat/internal/logging"
	"phonechat/internal/moments"
	"phonechat/internal/phone"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Panel is the input area shown under the chat.
type Panel int

const (
	PanelNone Panel = iota
	PanelVoice
	PanelText
	PanelEmoji
	PanelAddition

	// Prompts opened by a key or an addition item rather than by tab.
	PanelClock
	PanelDate
	PanelImage
	PanelComment
)

func (p Panel) String() string {
	switch p {
	case PanelVoice:
		return "voice"
	case PanelText:
		return "text"
	case PanelEmoji:
		return "emoji"
	case PanelAddition:
		return "addition"
	case PanelClock:
		return "clock"
	case PanelDate:
		return "date"
	case PanelImage:
		return "image"
	case PanelComment:
		return "comment"
	default:
		return "none"
	}
}

// prompt reports whether the panel takes typed text.
func (p Panel) prompt() bool {
	switch p {
	case PanelText, PanelEmoji, PanelClock, PanelDate, PanelImage, PanelComment:
		return true
	}
	return false
}

// tabPanels is the order tab walks through, starting closed.
var tabPanels = cycle.MustNew([]Panel{PanelNone, PanelVoice, PanelText, PanelEmoji, PanelAddition}, 0)

type additionItem int

const (
	addImage additionItem = iota
	addRedPacket
	addDate
)

var additionLabels = []string{"图片", "红包", "时间"}

// emojiColumns is the picker grid width in glyphs.
const emojiColumns = 8

// ClockTickMsg carries a clock refresh into the program.
type ClockTickMsg time.Time

// FixtureReloadedMsg is sent when the watched fixture file changed.
type FixtureReloadedMsg struct {
	File *fixture.File
}

// FixtureErrorMsg is sent when the watched fixture could not be reloaded.
type FixtureErrorMsg struct {
	Err error
}

// Options configures a Model.
type Options struct {
	// Context bounds the clock ticker. Defaults to context.Background.
	Context context.Context
	Config  *config.Config
	// Fixture seeds the conversation and the feed. May be nil.
	Fixture *fixture.File
	Styles  *Styles
	// Moments opens the feed instead of the chat.
	Moments bool

	Now      func() time.Time
	RandIntN func(n int) int
}

// changeCounter is bumped by the message log's change callback.
type changeCounter struct {
	n int
}

// Model is the phone screen.
type Model struct {
	ctx           context.Context
	styles        Styles
	width         int
	height        int
	clockInterval time.Duration

	user    config.ProfileConfig
	chatter config.ProfileConfig

	log     *chat.Log
	changes *changeCounter
	seen    int
	feed    *moments.Feed

	bar   *phone.StatusBar
	clock *phone.Clock
	ticks chan time.Time

	viewport viewport.Model
	input    textinput.Model

	tabs          cycle.Choice[Panel]
	panel         Panel
	sendAsMine    bool
	selected      chat.ID
	voiceSeconds  int
	emojiCursor   int
	additionIndex int

	showMoments bool
	postCursor  int

	status    string
	statusErr bool
	quitting  bool
}

// New builds the phone screen from configuration and an optional fixture.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	bar, err := phone.NewStatusBar(phone.Options{
		Charge:     cfg.Phone.Charge,
		SignalBars: cfg.Phone.SignalBars,
		Carriers:   cfg.Phone.Carriers,
		Networks:   cfg.Phone.Networks,
		RandIntN:   opts.RandIntN,
	})
	if err != nil {
		return Model{}, fmt.Errorf("status bar: %w", err)
	}
	clock := phone.NewClock(opts.Now)
	now := clock.Now()

	user, chatter := cfg.User, cfg.Chatter
	var seed []chat.Message
	var posts []moments.Post
	if opts.Fixture != nil {
		user, chatter = opts.Fixture.Profiles(cfg.User, cfg.Chatter)
		seed = opts.Fixture.ChatMessages(now)
		posts = opts.Fixture.Posts(now)
	}

	changes := &changeCounter{}
	log := chat.NewLog(seed,
		chat.WithDefaultAvatars(user.Avatar, chatter.Avatar),
		chat.WithOnChange(func(entries []chat.Message) {
			changes.n++
			logging.UIDebug("log changed (len=%d)", len(entries))
		}),
	)

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500
	input.Width = cfg.UI.ScreenWidth - 6
	input.Cursor.Style = styles.Cursor

	m := Model{
		ctx:           ctx,
		styles:        styles,
		width:         cfg.UI.ScreenWidth,
		height:        cfg.UI.ScreenHeight,
		clockInterval: cfg.GetClockInterval(),
		user:          user,
		chatter:       chatter,
		log:           log,
		changes:       changes,
		feed:          moments.NewFeed(posts),
		bar:           bar,
		clock:         clock,
		ticks:         make(chan time.Time, 1),
		viewport:      viewport.New(cfg.UI.ScreenWidth, cfg.UI.ScreenHeight),
		input:         input,
		tabs:          tabPanels,
		sendAsMine:    true,
		voiceSeconds:  5,
		showMoments:   opts.Moments,
	}
	m = m.layout()
	m.viewport.GotoBottom()
	return m, nil
}

// Log exposes the conversation, for callers that render without a program.
func (m Model) Log() *chat.Log { return m.log }

// Feed exposes the moments feed.
func (m Model) Feed() *moments.Feed { return m.feed }

// StatusBar exposes the phone indicators.
func (m Model) StatusBar() *phone.StatusBar { return m.bar }

// Clock exposes the status bar clock.
func (m Model) Clock() *phone.Clock { return m.clock }

// Panel returns the open input panel.
func (m Model) Panel() Panel { return m.panel }

// Selected returns the ID of the highlighted message, if any.
func (m Model) Selected() chat.ID { return m.selected }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

// Init starts the clock ticker.
func (m Model) Init() tea.Cmd {
	m.clock.Start(m.ctx, m.clockInterval, m.onTick)
	return tea.Batch(textinput.Blink, waitForTick(m.ticks))
}

// Shutdown stops background work owned by the model.
func (m Model) Shutdown() {
	m.clock.Stop()
}

// onTick runs on the ticker goroutine. A pending tick is enough to redraw,
// so extra ticks are dropped.
func (m Model) onTick(t time.Time) {
	select {
	case m.ticks <- t:
	default:
	}
}

func waitForTick(ch <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return ClockTickMsg(t)
	}
}

func (m Model) participants() Participants {
	return Participants{User: m.user.Name, Chatter: m.chatter.Name}
}

// senderAvatar returns the avatar for a message sent from the current side.
func (m Model) senderAvatar() string {
	if m.sendAsMine {
		return m.user.Avatar
	}
	return m.chatter.Avatar
}

func (m Model) pickerEmoji() emoji.Emoji {
	picker := emoji.Picker()
	return picker[m.emojiCursor%len(picker)]
}
