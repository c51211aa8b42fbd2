package scheduling

import (
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

// AvailabilityIndex answers whether a provider is nominally open for a given
// date and time range, from the provider's weekly windows and one-off
// unavailable dates. It holds plain loaded rows; persistence stays behind
// the Repository.
type AvailabilityIndex struct {
	windows     []models.AvailabilityWindow
	unavailable []models.UnavailableDate
}

func NewAvailabilityIndex(
	windows []models.AvailabilityWindow,
	unavailable []models.UnavailableDate,
) *AvailabilityIndex {
	return &AvailabilityIndex{
		windows:     windows,
		unavailable: unavailable,
	}
}

// SameDate compares calendar dates ignoring the time of day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateBlocked reports whether the date is covered by an unavailable date.
func (ix *AvailabilityIndex) DateBlocked(date time.Time) bool {
	for _, ud := range ix.unavailable {
		if SameDate(ud.Date, date) {
			return true
		}
	}
	return false
}

// WindowContains reports whether the window fully contains [startMin, endMin).
// Partial overlap is not enough to accept a slot.
func WindowContains(w models.AvailabilityWindow, startMin, endMin int) bool {
	ws, err := ParseClock(w.StartTime)
	if err != nil {
		return false
	}
	we, err := ParseClock(w.EndTime)
	if err != nil {
		return false
	}
	return ws <= startMin && we >= endMin
}

// IsAvailable reports whether the provider is nominally open for
// [startMin, endMin) on the given date. Absence of a matching window is a
// normal "not available", not an error.
func (ix *AvailabilityIndex) IsAvailable(date time.Time, startMin, endMin int) bool {
	if ix.DateBlocked(date) {
		return false
	}

	weekday := MondayIndexedWeekday(date)
	for _, w := range ix.windows {
		if w.Weekday != weekday {
			continue
		}
		if WindowContains(w, startMin, endMin) {
			return true
		}
	}
	return false
}
