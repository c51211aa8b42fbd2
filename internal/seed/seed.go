package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	infraRepo "github.com/OsamaDeghidy/A-List-Home-Pros/internal/infra/repository"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/timezone"
	ucScheduling "github.com/OsamaDeghidy/A-List-Home-Pros/internal/usecase/scheduling"
)

// Run loads a small development fixture set: service categories, one admin,
// one provider with a weekly schedule, one client, and a pending appointment.
// Every fixture passes the same validation the API applies before writing.
// Running twice is a no-op.
func Run(db *gorm.DB) error {
	var existing int64
	db.Model(&models.User{}).Count(&existing)
	if existing > 0 {
		return nil
	}

	categories := []models.ServiceCategory{
		{Name: "Plumbing", Description: "Pipes, fixtures and water heaters"},
		{Name: "Electrical", Description: "Wiring, panels and lighting"},
		{Name: "Painting", Description: "Interior and exterior painting"},
		{Name: "Landscaping", Description: "Lawn care and garden design"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	if _, err := createUser(db, "Admin", "admin@alistpros.local", "admin123", models.RoleAdmin); err != nil {
		return err
	}

	providerUser, err := createUser(db, "Pat Rivera", "pat@alistpros.local", "provider123", models.RoleProvider)
	if err != nil {
		return err
	}

	profile := models.ProviderProfile{
		UserID:          providerUser.ID,
		BusinessName:    "Rivera Plumbing & Electric",
		Description:     "Licensed residential plumbing and electrical work.",
		LicenseNumber:   "CA-552901",
		YearsExperience: 12,
		City:            "Los Angeles",
		State:           "CA",
		Timezone:        "America/Los_Angeles",
		Categories:      categories[:2],
	}
	if !timezone.IsValid(profile.Timezone) {
		return fmt.Errorf("seed provider profile: invalid timezone %q", profile.Timezone)
	}
	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("seed provider profile: %w", err)
	}

	// Monday through Friday, nine to five
	for weekday := 0; weekday < 5; weekday++ {
		if err := createWindow(db, profile.ID, weekday, "09:00", "17:00"); err != nil {
			return err
		}
	}

	client, err := createUser(db, "Sam Okafor", "sam@alistpros.local", "client123", models.RoleClient)
	if err != nil {
		return err
	}

	request := ucScheduling.NewRequestAppointment(ucScheduling.Deps{
		Repo: infraRepo.NewSchedulingGormRepository(db),
	})

	_, err = request.Execute(context.Background(), ucScheduling.RequestAppointmentInput{
		ClientID:          client.ID,
		ProviderID:        profile.ID,
		ServiceCategoryID: &categories[0].ID,
		Date:              nextMonday().Format("2006-01-02"),
		StartTime:         "10:00",
		EndTime:           "11:00",
		Notes:             "Leaking kitchen sink.",
		Location:          "4218 Maple Ave, Los Angeles",
	})
	if err != nil {
		return fmt.Errorf("seed appointment: %w", err)
	}

	return nil
}

// createUser mirrors the registration path: normalized email, validated
// role, bcrypt-hashed password. Only the live DNS check is skipped since
// fixture domains never resolve.
func createUser(db *gorm.DB, name, email, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("seed user %s: invalid role %q", email, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	return &user, nil
}

// createWindow runs the same clock-range validation the availability API
// applies before accepting a window.
func createWindow(db *gorm.DB, providerID uint, weekday int, start, end string) error {
	if _, _, err := domain.ParseClockRange(start, end); err != nil {
		return fmt.Errorf("seed availability window: %w", err)
	}

	window := models.AvailabilityWindow{
		ProviderID: providerID,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
		Recurring:  true,
	}
	if err := db.Create(&window).Error; err != nil {
		return fmt.Errorf("seed availability window: %w", err)
	}
	return nil
}

func nextMonday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
