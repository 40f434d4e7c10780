package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pokerdash/internal/stats"
)

func TestParseTimestamp_Layouts(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "naive is read in zone",
			input: "2024-01-01T10:00:00",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, loc),
		},
		{
			name:  "fractional seconds",
			input: "2024-01-01T10:00:00.250",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 250_000_000, loc),
		},
		{
			name:  "utc offset is converted",
			input: "2024-01-01T22:30:00Z",
			want:  time.Date(2024, 1, 2, 1, 30, 0, 0, loc),
		},
		{
			name:  "explicit offset",
			input: "2024-01-01T22:30:00+00:00",
			want:  time.Date(2024, 1, 2, 1, 30, 0, 0, loc),
		},
		{
			name:  "space separator",
			input: "2024-01-01 10:00:00",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stats.ParseTimestamp(tt.input, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, loc, got.Location())
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := stats.ParseTimestamp("yesterday", time.UTC)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := stats.ParseDate("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2024-02-30", "02/01/2024", "2024-1-1"} {
		_, err := stats.ParseDate(bad, time.UTC)
		assert.Error(t, err, bad)
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	noon := time.Date(2024, 7, 4, 12, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 7, 4, 0, 0, 0, 0, loc), stats.StartOfDay(noon))
	assert.Equal(t, time.Date(2024, 7, 4, 23, 59, 59, 0, loc), stats.EndOfDay(noon))
	assert.Equal(t, "2024-07-04", stats.FormatDate(noon))
}
