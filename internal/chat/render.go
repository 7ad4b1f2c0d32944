package chat

import (
	"iter"
	"time"

	"phonechat/internal/emoji"
)

const (
	// PlaceholderText is shown for text bubbles with no content and for
	// entries that cannot be classified.
	PlaceholderText = "Nothing"

	// PlaceholderImage is the built-in picture used when an image has no ref.
	PlaceholderImage = "builtin:placeholder.jpg"
)

// Fragment is the display-ready projection of one Message.
type Fragment struct {
	ID     ID
	Kind   Kind
	Mine   bool
	Avatar string

	// Text and red-packet lines
	Content  string
	Segments []emoji.Segment

	ImageRef string
	Seconds  int
	At       time.Time

	// Fallback is set when the entry could not be classified and was drawn
	// as the placeholder bubble. Default fills for an empty text or image
	// leave it false.
	Fallback bool
}

// Render lazily projects every entry into a Fragment, in display order.
// Malformed entries yield a placeholder fragment instead of an error.
func (l *Log) Render() iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for _, m := range l.entries {
			if !yield(l.fragment(m)) {
				return
			}
		}
	}
}

// Fragments collects Render into a slice.
func (l *Log) Fragments() []Fragment {
	out := make([]Fragment, 0, len(l.entries))
	for f := range l.Render() {
		out = append(out, f)
	}
	return out
}

func (l *Log) fragment(m Message) Fragment {
	f := Fragment{ID: m.ID, Mine: m.Mine, Avatar: l.avatarFor(m)}

	switch b := m.Body.(type) {
	case Text:
		f.Kind = KindText
		f.Content = b.Content
		if f.Content == "" {
			f.Content = PlaceholderText
		}
		f.Segments = emoji.Split(f.Content)
	case Image:
		f.Kind = KindImage
		f.ImageRef = b.Ref
		if f.ImageRef == "" {
			f.ImageRef = PlaceholderImage
		}
	case Voice:
		if b.Seconds < MinVoiceSeconds {
			return l.fallback(m)
		}
		f.Kind = KindVoice
		f.Seconds = min(b.Seconds, MaxVoiceSeconds)
	case DateDivider:
		if b.At.IsZero() {
			return l.fallback(m)
		}
		f.Kind = KindDate
		f.At = b.At
		f.Avatar = ""
	case RedPacketReceived:
		f.Kind = KindRedPacket
		f.Content = RedPacketLine(m.Mine, b)
		f.Segments = emoji.Split(f.Content)
		f.Avatar = ""
	default:
		return l.fallback(m)
	}
	return f
}

// fallback renders an unclassifiable entry as a placeholder text bubble on
// the owner's side.
func (l *Log) fallback(m Message) Fragment {
	return Fragment{
		ID:       m.ID,
		Kind:     KindText,
		Mine:     true,
		Avatar:   l.avatars.mine,
		Content:  PlaceholderText,
		Segments: emoji.Split(PlaceholderText),
		Fallback: true,
	}
}

func (l *Log) avatarFor(m Message) string {
	if m.Avatar != "" {
		return m.Avatar
	}
	if m.Mine {
		return l.avatars.mine
	}
	return l.avatars.other
}

// RedPacketLine is the system text for an opened red packet. The trailing
// "红包" is part of the line.
func RedPacketLine(mine bool, b RedPacketReceived) string {
	if mine {
		return "你领取了" + b.Friend + "的红包"
	}
	return b.Sender + "领取了你的红包"
}
