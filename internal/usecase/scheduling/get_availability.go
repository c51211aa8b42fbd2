package scheduling

import (
	"context"
	"time"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GetAvailability lists the free slots of a given duration for a provider
// and date: weekly windows minus unavailable dates minus active
// appointments. Results are memoized in redis per provider/date/duration.
type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	providerID uint,
	dateStr string,
	durationMin int,
) ([]TimeSlot, error) {

	if durationMin <= 0 {
		durationMin = 60
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	date = domain.DateOnly(date)

	if uc.deps.Cache != nil {
		var cached []TimeSlot
		if uc.deps.Cache.Get(ctx, providerID, dateStr, durationMin, &cached) {
			return cached, nil
		}
	}

	weekday := domain.MondayIndexedWeekday(date)

	windows, err := uc.deps.Repo.ListWindowsForDay(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}
	unavailable, err := uc.deps.Repo.ListUnavailableDates(ctx, providerID, date)
	if err != nil {
		return nil, err
	}

	index := domain.NewAvailabilityIndex(windows, unavailable)
	if index.DateBlocked(date) {
		return []TimeSlot{}, nil
	}

	active, err := uc.deps.Repo.ListActiveForDate(ctx, providerID, date, 0)
	if err != nil {
		return nil, err
	}
	guardedMins := make([][2]int, 0, len(active))
	for _, ap := range active {
		s, err1 := domain.ParseClock(ap.StartTime)
		e, err2 := domain.ParseClock(ap.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		guardedMins = append(guardedMins, [2]int{s, e})
	}

	slots := []TimeSlot{}
	for _, w := range windows {
		ws, err1 := domain.ParseClock(w.StartTime)
		we, err2 := domain.ParseClock(w.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}

		for cur := ws; cur+durationMin <= we; cur += durationMin {
			slotStart, slotEnd := cur, cur+durationMin

			conflict := false
			for _, g := range guardedMins {
				if domain.Overlaps(g[0], g[1], slotStart, slotEnd) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			slots = append(slots, TimeSlot{
				Start: formatClock(slotStart),
				End:   formatClock(slotEnd),
			})
		}
	}

	if uc.deps.Cache != nil {
		uc.deps.Cache.Set(ctx, providerID, dateStr, durationMin, slots)
	}

	return slots, nil
}

func formatClock(min int) string {
	return time.Date(0, 1, 1, min/60, min%60, 0, 0, time.UTC).Format("15:04")
}
