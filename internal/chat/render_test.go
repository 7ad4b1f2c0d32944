package chat

import (
	"testing"
	"time"

	"phonechat/internal/emoji"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unknownBody is a Body the render switch does not list.
type unknownBody struct{}

func (unknownBody) kind() Kind { return Kind(99) }

func TestRenderVariants(t *testing.T) {
	at := time.Date(2019, 7, 1, 9, 30, 0, 0, time.UTC)
	log := NewLog([]Message{
		NewDivider(at),
		NewText(false, "", "[kiss]可以"),
		NewImage(true, "me.jpg", "photo.png"),
		NewVoice(false, "", 12),
		{Mine: true, Body: RedPacketReceived{Friend: "汤圆"}},
	}, WithIDGenerator(sequentialIDs()), WithDefaultAvatars("mine.jpg", "other.jpg"))

	kiss, _ := emoji.Lookup("kiss")
	want := []Fragment{
		{ID: "m-1", Kind: KindDate, At: at},
		{ID: "m-2", Kind: KindText, Avatar: "other.jpg", Content: "[kiss]可以",
			Segments: []emoji.Segment{{Text: "[kiss]", Emoji: &kiss}, {Text: "可以"}}},
		{ID: "m-3", Kind: KindImage, Mine: true, Avatar: "me.jpg", ImageRef: "photo.png"},
		{ID: "m-4", Kind: KindVoice, Avatar: "other.jpg", Seconds: 12},
		{ID: "m-5", Kind: KindRedPacket, Mine: true, Content: "你领取了汤圆的红包",
			Segments: []emoji.Segment{{Text: "你领取了汤圆的红包"}}},
	}

	if diff := cmp.Diff(want, log.Fragments()); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFallbacks(t *testing.T) {
	log := NewLog([]Message{
		NewText(false, "", ""),
		NewImage(false, "", ""),
		NewVoice(false, "", 0),
		NewVoice(false, "", 600),
		NewDivider(time.Time{}),
		{Mine: false},
		{Body: unknownBody{}},
	}, WithDefaultAvatars("mine.jpg", "other.jpg"))

	got := log.Fragments()
	require.Len(t, got, 7)

	placeholder := Fragment{Kind: KindText, Mine: true, Avatar: "mine.jpg", Content: PlaceholderText,
		Segments: []emoji.Segment{{Text: PlaceholderText}}, Fallback: true}
	ignoreID := cmpopts.IgnoreFields(Fragment{}, "ID")

	assert.Equal(t, "Nothing", got[0].Content)
	assert.False(t, got[0].Mine, "empty text keeps its side")
	assert.False(t, got[0].Fallback, "empty text is a default fill, not a malformed entry")

	assert.Equal(t, PlaceholderImage, got[1].ImageRef)
	assert.False(t, got[1].Fallback)

	for _, i := range []int{2, 4, 5, 6} {
		if diff := cmp.Diff(placeholder, got[i], ignoreID); diff != "" {
			t.Errorf("entry %d: placeholder mismatch (-want +got):\n%s", i, diff)
		}
	}

	assert.Equal(t, KindVoice, got[3].Kind)
	assert.Equal(t, MaxVoiceSeconds, got[3].Seconds)
}

func TestRenderIsLazyAndStoppable(t *testing.T) {
	log := NewLog([]Message{NewText(true, "", "a"), NewText(true, "", "b"), NewText(true, "", "c")})

	var seen []string
	for f := range log.Render() {
		seen = append(seen, f.Content)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestRenderDoesNotMutateEntries(t *testing.T) {
	log := NewLog([]Message{NewText(true, "", "")})
	_ = log.Fragments()

	entries := log.Entries()
	assert.Equal(t, Text{Content: ""}, entries[0].Body)
}

func TestRedPacketLine(t *testing.T) {
	b := RedPacketReceived{Sender: "琳琳", Friend: "朋友A"}
	assert.Equal(t, "琳琳领取了你的红包", RedPacketLine(false, b))
	assert.Equal(t, "你领取了朋友A的红包", RedPacketLine(true, b))
}
