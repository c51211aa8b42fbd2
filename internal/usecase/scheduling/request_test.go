package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

func TestRequestAppointment_Success(t *testing.T) {
	f := newFixture(t)

	ap := f.request(t, testMonday, "10:00", "11:00")

	assert.Equal(t, string(domain.StatusRequested), ap.Status)
	assert.Equal(t, f.clientUser.ID, ap.ClientID)
	assert.Equal(t, f.provider.ID, ap.ProviderID)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), ap.AppointmentDate)
	assert.Equal(t, "10:00", ap.StartTime)
	assert.Equal(t, "11:00", ap.EndTime)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusRequested), stored.Status)
}

func TestRequestAppointment_DoubleBookingRejected(t *testing.T) {
	f := newFixture(t)

	f.request(t, testMonday, "10:00", "11:00")

	cases := []struct {
		name       string
		start, end string
	}{
		{"identical slot", "10:00", "11:00"},
		{"overlapping tail", "10:30", "11:30"},
		{"overlapping head", "09:30", "10:30"},
		{"containing slot", "09:30", "11:30"},
		{"contained slot", "10:15", "10:45"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
				ClientID:   f.clientUser.ID,
				ProviderID: f.provider.ID,
				Date:       testMonday,
				StartTime:  tc.start,
				EndTime:    tc.end,
			})
			assert.Equal(t, "time_slot_taken", httperr.BusinessCode(err))
		})
	}

	var count int64
	f.db.Model(&models.Appointment{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRequestAppointment_BackToBackSlotsAllowed(t *testing.T) {
	f := newFixture(t)

	f.request(t, testMonday, "10:00", "11:00")
	f.request(t, testMonday, "11:00", "12:00")
	f.request(t, testMonday, "09:00", "10:00")

	var count int64
	f.db.Model(&models.Appointment{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestRequestAppointment_OutsideWindowRejected(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name       string
		date       string
		start, end string
	}{
		{"before opening", testMonday, "08:00", "09:00"},
		{"straddles opening", testMonday, "08:30", "09:30"},
		{"straddles closing", testMonday, "16:30", "17:30"},
		{"after closing", testMonday, "18:00", "19:00"},
		{"weekend, no window", "2026-08-29", "10:00", "11:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
				ClientID:   f.clientUser.ID,
				ProviderID: f.provider.ID,
				Date:       tc.date,
				StartTime:  tc.start,
				EndTime:    tc.end,
			})
			assert.Equal(t, "provider_unavailable", httperr.BusinessCode(err))
		})
	}
}

func TestRequestAppointment_UnavailableDateOverridesWindows(t *testing.T) {
	f := newFixture(t)
	f.blockDate(t, testMonday)

	_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
		ClientID:   f.clientUser.ID,
		ProviderID: f.provider.ID,
		Date:       testMonday,
		StartTime:  "10:00",
		EndTime:    "11:00",
	})
	assert.Equal(t, "provider_unavailable", httperr.BusinessCode(err))

	// the next weekday is unaffected
	f.request(t, "2026-08-25", "10:00", "11:00")
}

func TestRequestAppointment_ServiceNotOffered(t *testing.T) {
	f := newFixture(t)

	other := models.ServiceCategory{Name: "Roofing"}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
		ClientID:          f.clientUser.ID,
		ProviderID:        f.provider.ID,
		ServiceCategoryID: &other.ID,
		Date:              testMonday,
		StartTime:         "10:00",
		EndTime:           "11:00",
	})
	assert.Equal(t, "service_not_offered", httperr.BusinessCode(err))
}

func TestRequestAppointment_ValidationFailures(t *testing.T) {
	f := newFixture(t)

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
			ClientID:   f.clientUser.ID,
			ProviderID: 999,
			Date:       testMonday,
			StartTime:  "10:00",
			EndTime:    "11:00",
		})
		assert.Equal(t, "provider_not_found", httperr.BusinessCode(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
			ClientID:   f.clientUser.ID,
			ProviderID: f.provider.ID,
			Date:       "24/08/2026",
			StartTime:  "10:00",
			EndTime:    "11:00",
		})
		assert.Equal(t, "invalid_date", httperr.BusinessCode(err))
	})

	t.Run("inverted time range", func(t *testing.T) {
		_, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
			ClientID:   f.clientUser.ID,
			ProviderID: f.provider.ID,
			Date:       testMonday,
			StartTime:  "11:00",
			EndTime:    "10:00",
		})
		assert.Equal(t, "invalid_time_range", httperr.BusinessCode(err))
	})
}

func TestRequestAppointment_CancelledSlotCanBeRebooked(t *testing.T) {
	f := newFixture(t)

	first := f.request(t, testMonday, "10:00", "11:00")

	_, err := NewTransitionAppointment(f.deps).Cancel(context.Background(), first.ID, f.clientActor())
	require.NoError(t, err)

	second := f.request(t, testMonday, "10:00", "11:00")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, string(domain.StatusRequested), second.Status)
}
