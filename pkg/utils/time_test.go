package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself at midnight",
			in:   time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midweek maps back to monday",
			in:   time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday midnight is a fixed point",
			in:   time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			// 2026-08-31 03:00 KST is still Sunday 18:00 UTC
			name: "non-utc input is normalized to utc",
			in:   time.Date(2026, 8, 31, 3, 0, 0, 0, time.FixedZone("KST", 9*3600)),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestWeekStart_StableAcrossWeek(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 7; day++ {
		at := monday.AddDate(0, 0, day).Add(12 * time.Hour)
		assert.True(t, monday.Equal(WeekStart(at)), "day offset %d", day)
	}
	nextMonday := monday.AddDate(0, 0, 7)
	assert.True(t, nextMonday.Equal(WeekStart(nextMonday)))
}

func TestParseRFC3339_RoundTrip(t *testing.T) {
	s := NowRFC3339()
	parsed, err := ParseRFC3339(s)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 2*time.Second)

	_, err = ParseRFC3339("not-a-timestamp")
	assert.Error(t, err)
}
