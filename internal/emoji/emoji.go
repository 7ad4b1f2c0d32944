// Package emoji maps bracketed emoji tokens such as "[微笑]" to terminal glyphs
// and splits message text into literal and emoji segments.
package emoji

import "strings"

// Emoji is one picker entry.
type Emoji struct {
	Name  string // token name without brackets
	Glyph string
}

// Token returns the bracketed form used inside message text.
func (e Emoji) Token() string {
	return "[" + e.Name + "]"
}

// table is ordered as shown in the picker.
var table = []Emoji{
	{"微笑", "🙂"},
	{"撇嘴", "😒"},
	{"色", "😍"},
	{"发呆", "😳"},
	{"得意", "😎"},
	{"流泪", "😢"},
	{"害羞", "😊"},
	{"闭嘴", "🤐"},
	{"睡", "😴"},
	{"大哭", "😭"},
	{"尴尬", "😅"},
	{"发怒", "😡"},
	{"调皮", "😜"},
	{"呲牙", "😁"},
	{"惊讶", "😮"},
	{"难过", "🙁"},
	{"抓狂", "😫"},
	{"吐", "🤮"},
	{"偷笑", "🤭"},
	{"愉快", "😄"},
	{"白眼", "🙄"},
	{"困", "😪"},
	{"惊恐", "😱"},
	{"流汗", "😓"},
	{"憨笑", "😀"},
	{"疑问", "❓"},
	{"嘘", "🤫"},
	{"晕", "😵"},
	{"再见", "👋"},
	{"鼓掌", "👏"},
	{"坏笑", "😏"},
	{"亲亲", "😚"},
	{"kiss", "😘"},
	{"玫瑰", "🌹"},
	{"爱心", "❤️"},
	{"心碎", "💔"},
	{"蛋糕", "🎂"},
	{"咖啡", "☕"},
	{"啤酒", "🍺"},
	{"月亮", "🌙"},
	{"太阳", "☀️"},
	{"拥抱", "🤗"},
	{"强", "👍"},
	{"弱", "👎"},
	{"握手", "🤝"},
	{"胜利", "✌️"},
	{"抱拳", "🙏"},
	{"OK", "👌"},
	{"红包", "🧧"},
	{"炸弹", "💣"},
	{"便便", "💩"},
}

var byName = func() map[string]Emoji {
	m := make(map[string]Emoji, len(table))
	for _, e := range table {
		m[e.Name] = e
	}
	return m
}()

// Picker returns the picker entries in display order.
func Picker() []Emoji {
	out := make([]Emoji, len(table))
	copy(out, table)
	return out
}

// Lookup finds an emoji by name (without brackets).
func Lookup(name string) (Emoji, bool) {
	e, ok := byName[name]
	return e, ok
}

// Segment is a run of message text. Emoji is set for recognised tokens.
type Segment struct {
	Text  string
	Emoji *Emoji
}

// Split splits text into literal runs and emoji tokens.
// Unknown or unterminated bracket tokens are kept as literal text.
func Split(text string) []Segment {
	var (
		segs    []Segment
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			segs = append(segs, Segment{Text: literal.String()})
			literal.Reset()
		}
	}

	rest := text
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			literal.WriteString(rest)
			break
		}
		literal.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest[1:], ']')
		if end < 0 {
			literal.WriteString(rest)
			break
		}
		name := rest[1 : end+1]
		if e, ok := byName[name]; ok {
			flush()
			e := e
			segs = append(segs, Segment{Text: e.Token(), Emoji: &e})
			rest = rest[end+2:]
			continue
		}
		// Not an emoji: keep the bracket and continue after it so a nested
		// "[[kiss]" still finds the token.
		literal.WriteByte('[')
		rest = rest[1:]
	}
	flush()
	return segs
}

// Expand replaces every known token with its glyph.
func Expand(text string) string {
	var sb strings.Builder
	for _, s := range Split(text) {
		if s.Emoji != nil {
			sb.WriteString(s.Emoji.Glyph)
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
