package scheduling

import (
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
)

// All weekday math in the service goes through this package: Monday=0 ..
// Sunday=6, and time ranges are half-open [start, end) on minutes since
// midnight.

// MondayIndexedWeekday converts Go's Sunday=0 weekday to Monday=0.
func MondayIndexedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseClock parses a "15:04" wall-clock string into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseClockRange parses a start/end pair and enforces start < end.
func ParseClockRange(startHM, endHM string) (int, int, error) {
	start, err := ParseClock(startHM)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(endHM)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, httperr.ErrBusiness("invalid_time_range")
	}
	return start, end, nil
}

// Overlaps reports whether two half-open ranges intersect. Back-to-back
// ranges (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// DateOnly truncates to the calendar date in UTC. Every appointment_date and
// unavailable_date value passes through here before hitting the store so
// date equality is exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
