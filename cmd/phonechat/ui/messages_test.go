package ui

import (
	"strings"
	"testing"
	"time"

	"phonechat/internal/chat"
	"phonechat/internal/moments"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStyles() Styles {
	return NewStyles(LightTheme())
}

func TestRenderMessagesSides(t *testing.T) {
	log := chat.NewLog([]chat.Message{
		chat.NewText(true, "", "mine [kiss]"),
		chat.NewText(false, "", "theirs"),
	})
	out := RenderMessages(testStyles(), log.Fragments(), 40, testNow, Participants{User: "我", Chatter: "汤圆"}, "")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	mine, theirs := lines[0], lines[2]
	assert.Contains(t, mine, "mine 😘")
	assert.True(t, strings.HasSuffix(strings.TrimRight(mine, " "), "我"), "own avatar on the right: %q", mine)
	assert.True(t, strings.HasPrefix(theirs, "汤"), "their avatar on the left: %q", theirs)
	assert.Equal(t, 40, lipgloss.Width(mine))
}

func TestRenderMessagesKinds(t *testing.T) {
	yesterday := testNow.Add(-24 * time.Hour)
	log := chat.NewLog([]chat.Message{
		chat.NewDivider(yesterday),
		chat.NewImage(false, "", ""),
		chat.NewImage(true, "", "photos/cat.jpg"),
		chat.NewVoice(true, "", 12),
		chat.NewVoice(false, "", 3),
		{Mine: false, Body: chat.RedPacketReceived{Sender: "汤圆"}},
		{Mine: true},
	})
	out := RenderMessages(testStyles(), log.Fragments(), 40, testNow, Participants{User: "我", Chatter: "汤圆"}, "")

	assert.Contains(t, out, "昨天 09:41")
	assert.Contains(t, out, "🖼 图片")
	assert.Contains(t, out, "🖼 cat.jpg")
	assert.Contains(t, out, "12\"")
	assert.Contains(t, out, " )))")
	assert.Contains(t, out, "((( ")
	assert.Contains(t, out, "🧧 汤圆领取了你的")
	assert.Contains(t, out, chat.PlaceholderText)
}

func TestRenderMessagesMarksSelection(t *testing.T) {
	log := chat.NewLog([]chat.Message{chat.NewText(true, "", "a"), chat.NewText(true, "", "b")})
	frags := log.Fragments()

	out := RenderMessages(testStyles(), frags, 40, testNow, Participants{}, frags[1].ID)
	rows := strings.Split(out, "\n\n")
	require.Len(t, rows, 2)
	assert.NotContains(t, rows[0], "●")
	assert.Contains(t, rows[1], "●")
}

func TestLongTextWraps(t *testing.T) {
	log := chat.NewLog([]chat.Message{chat.NewText(false, "", strings.Repeat("word ", 30))})
	out := RenderMessages(testStyles(), log.Fragments(), 40, testNow, Participants{Chatter: "x"}, "")

	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 40)
	}
}

func TestVoiceLabelGrowsWithLength(t *testing.T) {
	short := lipgloss.Width(voiceLabel(1, true, 30))
	long := lipgloss.Width(voiceLabel(60, true, 30))
	assert.Less(t, short, long)
	assert.LessOrEqual(t, long, 30)
}

func TestInitial(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"汤圆", "汤"},
		{"  alice", "a"},
		{"[kiss] 汤圆。", "汤"},
		{"[kiss]", "😘"},
		{"", "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initial(tt.name))
		})
	}
}

func TestRenderMoments(t *testing.T) {
	feed := moments.NewFeed([]moments.Post{{
		UserName: "汤圆",
		Text:     "今天[玫瑰]",
		Likes:    []string{"我"},
		Comments: []moments.Comment{{By: "我", To: "汤圆", Content: "羡慕"}},
		At:       testNow.Add(-2 * time.Hour),
	}})
	out := RenderMoments(testStyles(), feed.Posts(), testNow, 40, "我", 0)

	assert.Contains(t, out, "今天🌹")
	assert.Contains(t, out, "2小时前")
	assert.Contains(t, out, "♥ 我")
	assert.Contains(t, out, "回复")
	assert.Contains(t, out, "羡慕")
}

func TestRenderMomentsEmpty(t *testing.T) {
	out := RenderMoments(testStyles(), nil, testNow, 40, "我", 0)
	assert.Contains(t, out, "朋友圈还没有内容")
}

func TestRenderBatteryTone(t *testing.T) {
	bar := mustStatusBar(t, nil)
	assert.Equal(t, BatteryNormal, toneColor(bar.Tone()))
	bar.AdjustCharge(-100)
	assert.Equal(t, BatteryLow, toneColor(bar.Tone()))

	bar.CycleBattery()
	out := RenderBattery(testStyles(), bar)
	assert.Contains(t, out, "⚡")
}

func TestRenderStatusBarFitsWidth(t *testing.T) {
	bar := mustStatusBar(t, nil)
	out := RenderStatusBar(testStyles(), bar, "09:41", 40)
	assert.Contains(t, out, "中国移动")
	assert.Contains(t, out, "4G")
	assert.Contains(t, out, "09:41")
	assert.Contains(t, out, "64%")
	assert.LessOrEqual(t, lipgloss.Width(out), 40)
}
