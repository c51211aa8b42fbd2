package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return DateOnly(d)
}

func TestWindowContains(t *testing.T) {
	window := models.AvailabilityWindow{StartTime: "09:00", EndTime: "17:00"}

	tests := []struct {
		name     string
		startMin int
		endMin   int
		want     bool
	}{
		{"fully inside", 10 * 60, 11 * 60, true},
		{"exact match", 9 * 60, 17 * 60, true},
		{"starts at open", 9 * 60, 10 * 60, true},
		{"ends at close", 16 * 60, 17 * 60, true},
		{"starts before open", 8*60 + 30, 10 * 60, false},
		{"ends after close", 16 * 60, 17*60 + 30, false},
		{"spans the window", 8 * 60, 18 * 60, false},
		{"entirely outside", 18 * 60, 19 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowContains(window, tt.startMin, tt.endMin))
		})
	}
}

func TestAvailabilityIndex_IsAvailable(t *testing.T) {
	monday := mustDate(t, "2026-08-24")
	tuesday := mustDate(t, "2026-08-25")

	windows := []models.AvailabilityWindow{
		{ProviderID: 1, Weekday: 0, StartTime: "09:00", EndTime: "12:00"},
		{ProviderID: 1, Weekday: 0, StartTime: "14:00", EndTime: "18:00"},
	}

	t.Run("inside a window", func(t *testing.T) {
		ix := NewAvailabilityIndex(windows, nil)
		assert.True(t, ix.IsAvailable(monday, 9*60, 10*60))
		assert.True(t, ix.IsAvailable(monday, 14*60, 18*60))
	})

	t.Run("between windows", func(t *testing.T) {
		ix := NewAvailabilityIndex(windows, nil)
		assert.False(t, ix.IsAvailable(monday, 12*60, 14*60))
	})

	t.Run("slot spanning two windows", func(t *testing.T) {
		ix := NewAvailabilityIndex(windows, nil)
		assert.False(t, ix.IsAvailable(monday, 11*60, 15*60))
	})

	t.Run("wrong weekday", func(t *testing.T) {
		ix := NewAvailabilityIndex(windows, nil)
		assert.False(t, ix.IsAvailable(tuesday, 9*60, 10*60))
	})

	t.Run("unavailable date overrides windows", func(t *testing.T) {
		ix := NewAvailabilityIndex(windows, []models.UnavailableDate{
			{ProviderID: 1, Date: monday},
		})
		assert.True(t, ix.DateBlocked(monday))
		assert.False(t, ix.IsAvailable(monday, 9*60, 10*60))
		assert.False(t, ix.DateBlocked(tuesday))
	})

	t.Run("no windows at all", func(t *testing.T) {
		ix := NewAvailabilityIndex(nil, nil)
		assert.False(t, ix.IsAvailable(monday, 9*60, 10*60))
	})
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}
