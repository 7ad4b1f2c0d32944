// Package chat holds the conversation model of the simulated messenger:
// the message variants, the ordered message log and its render projection.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// ID identifies a message for its whole lifetime in a Log.
type ID string

// NewID returns a fresh random message ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Kind is the display kind of a rendered fragment.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindVoice
	KindDate
	KindRedPacket
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindVoice:
		return "voice"
	case KindDate:
		return "date"
	case KindRedPacket:
		return "red_packet"
	default:
		return "unknown"
	}
}

// Body is the variant payload of a Message. The set of implementations is
// closed: Text, Image, Voice, DateDivider and RedPacketReceived.
type Body interface {
	kind() Kind
}

// Text is a plain text bubble. Content may contain emoji tokens like "[微笑]".
type Text struct {
	Content string
}

// Image is a picture bubble. Ref is an opaque handle (path, URL, data URI).
type Image struct {
	Ref string
}

// Voice is a voice-note bubble.
type Voice struct {
	Seconds int
}

// DateDivider is the centred timestamp line between message groups.
type DateDivider struct {
	At time.Time
}

// RedPacketReceived is the system line shown after a red packet is opened.
// Sender opened one of ours, or, when the message is Mine, we opened Friend's.
type RedPacketReceived struct {
	Sender string
	Friend string
}

func (Text) kind() Kind              { return KindText }
func (Image) kind() Kind             { return KindImage }
func (Voice) kind() Kind             { return KindVoice }
func (DateDivider) kind() Kind       { return KindDate }
func (RedPacketReceived) kind() Kind { return KindRedPacket }

// Voice lengths accepted by the input panel.
const (
	MinVoiceSeconds = 1
	MaxVoiceSeconds = 60
)

// Message is one entry of a conversation.
type Message struct {
	ID     ID
	Mine   bool
	Avatar string
	Body   Body
}

// Kind reports the variant of the message body.
// ok is false for a message without a body.
func (m Message) Kind() (k Kind, ok bool) {
	if m.Body == nil {
		return 0, false
	}
	return m.Body.kind(), true
}

// NewText builds a text message.
func NewText(mine bool, avatar, content string) Message {
	return Message{Mine: mine, Avatar: avatar, Body: Text{Content: content}}
}

// NewImage builds an image message.
func NewImage(mine bool, avatar, ref string) Message {
	return Message{Mine: mine, Avatar: avatar, Body: Image{Ref: ref}}
}

// NewVoice builds a voice message.
func NewVoice(mine bool, avatar string, seconds int) Message {
	return Message{Mine: mine, Avatar: avatar, Body: Voice{Seconds: seconds}}
}

// NewDivider builds a date divider. Dividers carry no sender.
func NewDivider(at time.Time) Message {
	return Message{Body: DateDivider{At: at}}
}
