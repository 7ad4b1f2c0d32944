package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDivider(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	now := time.Date(2019, 7, 10, 20, 0, 0, 0, loc) // Wednesday

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"today", time.Date(2019, 7, 10, 9, 5, 0, 0, loc), "09:05"},
		{"yesterday", time.Date(2019, 7, 9, 23, 59, 0, 0, loc), "昨天 23:59"},
		{"this week", time.Date(2019, 7, 7, 8, 0, 0, 0, loc), "星期日 08:00"},
		{"older", time.Date(2019, 7, 1, 8, 0, 0, 0, loc), "2019年7月1日 08:00"},
		{"future", time.Date(2019, 7, 12, 8, 0, 0, 0, loc), "2019年7月12日 08:00"},
		{"other zone", time.Date(2019, 7, 10, 1, 0, 0, 0, time.UTC), "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDivider(tt.at, now))
		})
	}
}

func TestParseDivider(t *testing.T) {
	now := time.Date(2019, 7, 10, 20, 0, 0, 0, time.UTC)

	got, err := ParseDivider("2019-7-9 8:5:3", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 7, 9, 8, 5, 3, 0, time.UTC), got)

	got, err = ParseDivider("2019-07-09 08:05", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 7, 9, 8, 5, 0, 0, time.UTC), got)

	got, err = ParseDivider("  ", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	_, err = ParseDivider("yesterday", now)
	assert.Error(t, err)
}

func TestDefaultDividerInputRoundTrips(t *testing.T) {
	now := time.Date(2019, 7, 10, 20, 4, 9, 0, time.UTC)
	s := DefaultDividerInput(now)
	assert.Equal(t, "2019-7-10 20:4:9", s)

	got, err := ParseDivider(s, now)
	require.NoError(t, err)
	assert.True(t, got.Equal(now))
}
