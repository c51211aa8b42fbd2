package scheduling

import (
	"context"
	"time"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.ProviderProfile, error)

	ProviderOffersCategory(
		ctx context.Context,
		providerID uint,
		categoryID uint,
	) (bool, error)

	// -------- Availability --------
	ListWindowsForDay(
		ctx context.Context,
		providerID uint,
		weekday int,
	) ([]models.AvailabilityWindow, error)

	ListUnavailableDates(
		ctx context.Context,
		providerID uint,
		date time.Time,
	) ([]models.UnavailableDate, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// ListActiveForDate returns the provider's REQUESTED/CONFIRMED
	// appointments on the date, excluding excludeID when non-zero.
	ListActiveForDate(
		ctx context.Context,
		providerID uint,
		date time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	// CreateChecked re-runs the overlap check and inserts in a single
	// transaction holding row locks on the provider's same-date
	// appointments, so two concurrent requests cannot both pass.
	CreateChecked(
		ctx context.Context,
		ap *models.Appointment,
		check func(active []models.Appointment) error,
	) error

	// SaveChecked is CreateChecked for reschedules: same locking
	// transaction around an update of an existing appointment, with the
	// audit note written in the same transaction.
	SaveChecked(
		ctx context.Context,
		ap *models.Appointment,
		note *models.AppointmentNote,
		check func(active []models.Appointment) error,
	) error

	// UpdateWithNote commits a status change together with its audit note.
	// Either both rows land or neither does.
	UpdateWithNote(
		ctx context.Context,
		ap *models.Appointment,
		note *models.AppointmentNote,
	) error

	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)
}
