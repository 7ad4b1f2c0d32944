package chat

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var weekdays = [...]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// FormatDivider renders a divider timestamp the way the messenger does:
// time only for today, "昨天" for yesterday, the weekday within the last
// week, and the full date otherwise. Both times are compared in now's zone.
func FormatDivider(at, now time.Time) string {
	at = at.In(now.Location())
	clock := at.Format("15:04")

	today := startOfDay(now)
	day := startOfDay(at)
	switch days := int(math.Round(today.Sub(day).Hours() / 24)); {
	case days == 0:
		return clock
	case days == 1:
		return "昨天 " + clock
	case days > 1 && days < 7:
		return weekdays[at.Weekday()] + " " + clock
	default:
		return fmt.Sprintf("%d年%d月%d日 %s", at.Year(), int(at.Month()), at.Day(), clock)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var dividerLayouts = []string{
	"2006-1-2 15:4:5",
	"2006-1-2 15:4",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
}

// ParseDivider parses the "append time" prompt input (年-月-日 时:分:秒) in
// now's location. Empty input means now.
func ParseDivider(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	for _, layout := range dividerLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("时间格式%s错误: 年-月-日 时:分:秒", s)
}

// DefaultDividerInput is the prompt's pre-filled value for now.
func DefaultDividerInput(now time.Time) string {
	return now.Format("2006-1-2 15:4:5")
}
