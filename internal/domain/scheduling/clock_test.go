package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
)

func TestMondayIndexedWeekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-08-24", 0}, // Monday
		{"2026-08-25", 1},
		{"2026-08-28", 4}, // Friday
		{"2026-08-29", 5}, // Saturday
		{"2026-08-30", 6}, // Sunday
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, MondayIndexedWeekday(d), tt.date)
	}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, min)

	min, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	_, err = ParseClock("9:30am")
	assert.Equal(t, "invalid_time", httperr.BusinessCode(err))

	_, err = ParseClock("25:00")
	assert.Equal(t, "invalid_time", httperr.BusinessCode(err))
}

func TestParseClockRange(t *testing.T) {
	start, end, err := ParseClockRange("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 540, start)
	assert.Equal(t, 1020, end)

	_, _, err = ParseClockRange("10:00", "10:00")
	assert.Equal(t, "invalid_time_range", httperr.BusinessCode(err))

	_, _, err = ParseClockRange("11:00", "10:00")
	assert.Equal(t, "invalid_time_range", httperr.BusinessCode(err))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 600, 660, 600, 660, true},
		{"partial", 600, 660, 630, 690, true},
		{"contained", 600, 720, 630, 660, true},
		{"back to back", 600, 660, 660, 720, false},
		{"back to back reversed", 660, 720, 600, 660, false},
		{"disjoint", 600, 660, 720, 780, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	d := DateOnly(time.Date(2026, 8, 29, 23, 45, 12, 0, loc))
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), d)
}
