package scheduling

import (
	"context"
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/audit"
	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type RequestAppointmentInput struct {
	ClientID   uint
	ProviderID uint

	ServiceCategoryID *uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:mm
	EndTime   string // HH:mm

	Notes         string
	Location      string
	EstimatedCost *float64
}

// ======================================================
// USE CASE
// ======================================================

type RequestAppointment struct {
	deps    Deps
	checker *SlotChecker
}

func NewRequestAppointment(deps Deps) *RequestAppointment {
	return &RequestAppointment{
		deps:    deps,
		checker: NewSlotChecker(deps.Repo),
	}
}

func (uc *RequestAppointment) Execute(
	ctx context.Context,
	in RequestAppointmentInput,
) (*models.Appointment, error) {

	provider, err := uc.deps.Repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	date = domain.DateOnly(date)

	startMin, endMin, err := domain.ParseClockRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	query := SlotQuery{
		ProviderID:        provider.ID,
		ServiceCategoryID: in.ServiceCategoryID,
		Date:              date,
		StartMin:          startMin,
		EndMin:            endMin,
	}
	if err := uc.checker.CheckBookable(ctx, query); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:          in.ClientID,
		ProviderID:        provider.ID,
		ServiceCategoryID: in.ServiceCategoryID,
		AppointmentDate:   date,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Status:            string(domain.InitialStatus()),
		Notes:             in.Notes,
		Location:          in.Location,
		EstimatedCost:     in.EstimatedCost,
	}

	// overlap is decided inside the locked transaction, never from a
	// stale read
	err = uc.deps.Repo.CreateChecked(ctx, ap, OverlapGuard(startMin, endMin))
	if err != nil {
		return nil, err
	}

	if uc.deps.Cache != nil {
		uc.deps.Cache.Invalidate(ctx, provider.ID)
	}

	uc.deps.dispatchAudit(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_requested",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.deps.dispatchNotify(notify.Event{
		UserIDs:           []uint{provider.UserID},
		Type:              models.NotificationAppointment,
		Title:             "New appointment request",
		Content:           "A client requested an appointment on " + in.Date + " at " + in.StartTime + ".",
		RelatedObjectID:   &ap.ID,
		RelatedObjectType: "appointment",
	})

	return ap, nil
}
