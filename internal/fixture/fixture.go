// Package fixture loads YAML conversation seeds: the participants, the
// initial message log and the moments feed of a staged screenshot.
package fixture

import (
	"fmt"
	"os"
	"time"

	"phonechat/internal/chat"
	"phonechat/internal/config"
	"phonechat/internal/logging"
	"phonechat/internal/moments"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a fixture.
type File struct {
	User     *config.ProfileConfig `yaml:"user,omitempty"`
	Chatter  *config.ProfileConfig `yaml:"chatter,omitempty"`
	Messages []MessageSpec         `yaml:"messages"`
	Moments  []PostSpec            `yaml:"moments"`
}

// MessageSpec is one message entry. Kind selects which fields apply.
type MessageSpec struct {
	Kind    string `yaml:"kind"` // text, image, voice, date, red_packet
	Mine    bool   `yaml:"mine"`
	Avatar  string `yaml:"avatar,omitempty"`
	Content string `yaml:"content,omitempty"`
	Image   string `yaml:"image,omitempty"`
	Seconds int    `yaml:"seconds,omitempty"`
	At      string `yaml:"at,omitempty"`  // absolute time
	Ago     string `yaml:"ago,omitempty"` // or a duration before load time
	Sender  string `yaml:"sender,omitempty"`
	Friend  string `yaml:"friend,omitempty"`
}

// PostSpec is one moments post.
type PostSpec struct {
	User     string        `yaml:"user"`
	Avatar   string        `yaml:"avatar,omitempty"`
	Text     string        `yaml:"text"`
	Likes    []string      `yaml:"likes,omitempty"`
	Comments []CommentSpec `yaml:"comments,omitempty"`
	At       string        `yaml:"at,omitempty"`
	Ago      string        `yaml:"ago,omitempty"`
}

// CommentSpec is one comment under a post.
type CommentSpec struct {
	By      string `yaml:"by"`
	To      string `yaml:"to,omitempty"`
	Content string `yaml:"content"`
}

// Load reads and parses a fixture file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Fixture("loaded %s: %d messages, %d posts", path, len(f.Messages), len(f.Moments))
	return f, nil
}

// Parse decodes fixture YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// ChatMessages converts the message specs into chat messages. Entries with an
// unknown kind or an unparsable time become body-less messages so the
// log renders its placeholder for them instead of dropping them.
func (f *File) ChatMessages(now time.Time) []chat.Message {
	out := make([]chat.Message, 0, len(f.Messages))
	for i, s := range f.Messages {
		m := chat.Message{Mine: s.Mine, Avatar: s.Avatar}
		switch s.Kind {
		case "text", "":
			m.Body = chat.Text{Content: s.Content}
		case "image":
			m.Body = chat.Image{Ref: s.Image}
		case "voice":
			m.Body = chat.Voice{Seconds: s.Seconds}
		case "date":
			at, err := resolveTime(s.At, s.Ago, now)
			if err != nil {
				logging.Get(logging.CategoryFixture).Warn("message %d: %v", i, err)
				break
			}
			m.Body = chat.DateDivider{At: at}
		case "red_packet":
			m.Body = chat.RedPacketReceived{Sender: s.Sender, Friend: s.Friend}
		default:
			logging.Get(logging.CategoryFixture).Warn("message %d: unknown kind %q", i, s.Kind)
		}
		out = append(out, m)
	}
	return out
}

// Posts converts the moments specs. Posts with an unparsable time are
// stamped with now.
func (f *File) Posts(now time.Time) []moments.Post {
	out := make([]moments.Post, 0, len(f.Moments))
	for i, s := range f.Moments {
		at, err := resolveTime(s.At, s.Ago, now)
		if err != nil {
			logging.Get(logging.CategoryFixture).Warn("post %d: %v", i, err)
			at = now
		}
		p := moments.Post{
			UserName: s.User,
			Avatar:   s.Avatar,
			Text:     s.Text,
			Likes:    append([]string(nil), s.Likes...),
			At:       at,
		}
		for _, c := range s.Comments {
			p.Comments = append(p.Comments, moments.Comment{By: c.By, To: c.To, Content: c.Content})
		}
		out = append(out, p)
	}
	return out
}

// Profiles returns the participants, falling back to defaults.
func (f *File) Profiles(defaults config.ProfileConfig, defaultChatter config.ProfileConfig) (user, chatter config.ProfileConfig) {
	user, chatter = defaults, defaultChatter
	if f.User != nil {
		user = mergeProfile(*f.User, defaults)
	}
	if f.Chatter != nil {
		chatter = mergeProfile(*f.Chatter, defaultChatter)
	}
	return user, chatter
}

func mergeProfile(p, fallback config.ProfileConfig) config.ProfileConfig {
	if p.Name == "" {
		p.Name = fallback.Name
	}
	if p.Avatar == "" {
		p.Avatar = fallback.Avatar
	}
	return p
}

func resolveTime(at, ago string, now time.Time) (time.Time, error) {
	if ago != "" {
		d, err := time.ParseDuration(ago)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad ago %q: %w", ago, err)
		}
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t, nil
	}
	return chat.ParseDivider(at, now)
}
