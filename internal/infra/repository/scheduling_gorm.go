package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusRequested),
	string(domain.StatusConfirmed),
}

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *SchedulingGormRepository) GetProviderByID(
	ctx context.Context,
	id uint,
) (*models.ProviderProfile, error) {

	var provider models.ProviderProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&provider, id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *SchedulingGormRepository) ProviderOffersCategory(
	ctx context.Context,
	providerID uint,
	categoryID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("provider_categories").
		Where("provider_profile_id = ? AND service_category_id = ?", providerID, categoryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWindowsForDay(
	ctx context.Context,
	providerID uint,
	weekday int,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *SchedulingGormRepository) ListUnavailableDates(
	ctx context.Context,
	providerID uint,
	date time.Time,
) ([]models.UnavailableDate, error) {

	var dates []models.UnavailableDate
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND date = ?", providerID, domain.DateOnly(date)).
		Find(&dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Provider").
		Preload("ServiceCategory").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) ListActiveForDate(
	ctx context.Context,
	providerID uint,
	date time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND appointment_date = ? AND status IN ?",
			providerID, domain.DateOnly(date), activeStatuses,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) CreateChecked(
	ctx context.Context,
	ap *models.Appointment,
	check func(active []models.Appointment) error,
) error {
	return r.bookingTx(ctx, ap, check, func(tx *gorm.DB) error {
		return tx.Create(ap).Error
	})
}

func (r *SchedulingGormRepository) SaveChecked(
	ctx context.Context,
	ap *models.Appointment,
	note *models.AppointmentNote,
	check func(active []models.Appointment) error,
) error {
	return r.bookingTx(ctx, ap, check, func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}
		return tx.Create(note).Error
	})
}

// bookingTx runs the overlap re-check and the write as one transaction,
// holding row locks on the provider's same-date active appointments so two
// concurrent bookings for the same slot cannot both commit. Transient
// failures get a single retry; business failures do not.
func (r *SchedulingGormRepository) bookingTx(
	ctx context.Context,
	ap *models.Appointment,
	check func(active []models.Appointment) error,
	write func(tx *gorm.DB) error,
) error {

	run := func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

			q := tx.Where(
				"provider_id = ? AND appointment_date = ? AND status IN ?",
				ap.ProviderID, domain.DateOnly(ap.AppointmentDate), activeStatuses,
			)
			if ap.ID != 0 {
				q = q.Where("id <> ?", ap.ID)
			}
			// sqlite (tests) has no row locks; its writers are serialized anyway
			if tx.Dialector.Name() == "postgres" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var active []models.Appointment
			if err := q.Find(&active).Error; err != nil {
				return err
			}

			if err := check(active); err != nil {
				return err
			}

			return write(tx)
		})
	}

	err := run()
	if err != nil && httperr.BusinessCode(err) == "" {
		err = run()
	}
	return err
}

// UpdateWithNote writes the status change and its audit note as one
// transaction. A failed note insert rolls the status back, so callers never
// see a transition without its note. Same retry policy as bookingTx.
func (r *SchedulingGormRepository) UpdateWithNote(
	ctx context.Context,
	ap *models.Appointment,
	note *models.AppointmentNote,
) error {

	run := func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(ap).Error; err != nil {
				return err
			}
			return tx.Create(note).Error
		})
	}

	err := run()
	if err != nil && httperr.BusinessCode(err) == "" {
		err = run()
	}
	return err
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *SchedulingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
