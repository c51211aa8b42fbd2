package scheduling

import (
	"context"
	"time"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

// SlotChecker decides whether a candidate slot may be booked: service
// offered, then provider nominally available, then no overlap with active
// appointments, short-circuiting on the first failure.
type SlotChecker struct {
	repo domain.Repository
}

func NewSlotChecker(repo domain.Repository) *SlotChecker {
	return &SlotChecker{repo: repo}
}

type SlotQuery struct {
	ProviderID        uint
	ServiceCategoryID *uint
	Date              time.Time
	StartMin          int
	EndMin            int

	// ExcludeAppointmentID is set when rescheduling, so the appointment
	// being moved does not conflict with itself.
	ExcludeAppointmentID uint
}

// CheckBookable runs the service and availability checks. The overlap check
// runs separately inside the booking transaction (OverlapGuard) so it sees
// locked rows; Check is the combined read-only form.
func (s *SlotChecker) CheckBookable(ctx context.Context, q SlotQuery) error {
	if q.ServiceCategoryID != nil {
		offered, err := s.repo.ProviderOffersCategory(ctx, q.ProviderID, *q.ServiceCategoryID)
		if err != nil {
			return err
		}
		if !offered {
			return httperr.ErrBusiness("service_not_offered")
		}
	}

	weekday := domain.MondayIndexedWeekday(q.Date)

	windows, err := s.repo.ListWindowsForDay(ctx, q.ProviderID, weekday)
	if err != nil {
		return err
	}
	unavailable, err := s.repo.ListUnavailableDates(ctx, q.ProviderID, q.Date)
	if err != nil {
		return err
	}

	index := domain.NewAvailabilityIndex(windows, unavailable)
	if !index.IsAvailable(q.Date, q.StartMin, q.EndMin) {
		return httperr.ErrBusiness("provider_unavailable")
	}

	return nil
}

// Check is the full conflict check, including overlap against the current
// active appointments. Callers that go on to write must use the
// transactional re-check instead of trusting this snapshot.
func (s *SlotChecker) Check(ctx context.Context, q SlotQuery) error {
	if err := s.CheckBookable(ctx, q); err != nil {
		return err
	}

	active, err := s.repo.ListActiveForDate(ctx, q.ProviderID, q.Date, q.ExcludeAppointmentID)
	if err != nil {
		return err
	}
	return OverlapGuard(q.StartMin, q.EndMin)(active)
}

// OverlapGuard returns the overlap predicate run inside the booking
// transaction: half-open intervals, so a slot ending exactly when another
// begins is not a conflict.
func OverlapGuard(startMin, endMin int) func(active []models.Appointment) error {
	return func(active []models.Appointment) error {
		for _, existing := range active {
			exStart, err := domain.ParseClock(existing.StartTime)
			if err != nil {
				continue
			}
			exEnd, err := domain.ParseClock(existing.EndTime)
			if err != nil {
				continue
			}
			if domain.Overlaps(exStart, exEnd, startMin, endMin) {
				return httperr.ErrBusiness("time_slot_taken")
			}
		}
		return nil
	}
}
