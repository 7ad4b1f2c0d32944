package chat

import (
	"errors"
	"fmt"

	"phonechat/internal/logging"
)

var (
	// ErrIndexOutOfRange is returned by DeleteAt for a position outside the log.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned by DeleteByID for an ID not present in the log.
	ErrNotFound = errors.New("message not found")
)

// Log is the ordered message list of one conversation, oldest first.
// It owns its entries: the seed is copied and readers receive copies.
// A Log is not safe for concurrent use; the UI owns it.
type Log struct {
	entries  []Message
	onChange func([]Message)
	newID    func() ID
	avatars  avatars
}

type avatars struct {
	mine, other string
}

// Option configures a Log.
type Option func(*Log)

// WithOnChange registers a callback invoked with a copy of the full
// sequence after every Append, DeleteAt, DeleteByID and Reset.
func WithOnChange(fn func([]Message)) Option {
	return func(l *Log) { l.onChange = fn }
}

// WithIDGenerator replaces the random ID source, mainly for tests.
func WithIDGenerator(fn func() ID) Option {
	return func(l *Log) { l.newID = fn }
}

// WithDefaultAvatars sets the avatars rendered for messages that carry none.
func WithDefaultAvatars(mine, other string) Option {
	return func(l *Log) { l.avatars = avatars{mine: mine, other: other} }
}

// NewLog creates a log seeded with a copy of seed. Seed entries without an
// ID are assigned one.
func NewLog(seed []Message, opts ...Option) *Log {
	l := &Log{newID: NewID}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = l.adopt(seed)
	return l
}

func (l *Log) adopt(seed []Message) []Message {
	out := make([]Message, len(seed))
	copy(out, seed)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = l.newID()
		}
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in display order.
func (l *Log) Entries() []Message {
	out := make([]Message, len(l.entries))
	copy(out, l.entries)
	return out
}

// At returns the entry at position i.
func (l *Log) At(i int) (Message, bool) {
	if i < 0 || i >= len(l.entries) {
		return Message{}, false
	}
	return l.entries[i], true
}

// IndexOf returns the current position of id, or -1.
func (l *Log) IndexOf(id ID) int {
	for i, m := range l.entries {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Append adds msg at the end and returns the ID it was stored under.
// An ID already set on msg is replaced so IDs stay unique within the log.
func (l *Log) Append(msg Message) ID {
	msg.ID = l.newID()
	l.entries = append(l.entries, msg)
	logging.ChatDebug("append %s (len=%d)", msg.ID, len(l.entries))
	l.notify()
	return msg.ID
}

// DeleteAt removes the entry at position i, shifting later entries down.
// The log is unchanged when i is out of range.
func (l *Log) DeleteAt(i int) error {
	if i < 0 || i >= len(l.entries) {
		return fmt.Errorf("delete at %d (len %d): %w", i, len(l.entries), ErrIndexOutOfRange)
	}
	id := l.entries[i].ID
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	logging.ChatDebug("delete %s at %d (len=%d)", id, i, len(l.entries))
	l.notify()
	return nil
}

// DeleteByID removes the entry with the given ID wherever it currently is.
func (l *Log) DeleteByID(id ID) error {
	i := l.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return l.DeleteAt(i)
}

// Reset replaces every entry with a copy of seed.
func (l *Log) Reset(seed []Message) {
	l.entries = l.adopt(seed)
	logging.Chat("reset (len=%d)", len(l.entries))
	l.notify()
}

func (l *Log) notify() {
	if l.onChange != nil {
		l.onChange(l.Entries())
	}
}
