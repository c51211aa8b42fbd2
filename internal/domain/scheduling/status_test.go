package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

var (
	owningProvider = Actor{UserID: 10, ProviderID: 1, Role: models.RoleProvider}
	otherProvider  = Actor{UserID: 11, ProviderID: 2, Role: models.RoleProvider}
	bookingClient  = Actor{UserID: 20, Role: models.RoleClient}
	otherClient    = Actor{UserID: 21, Role: models.RoleClient}
)

func requestedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:         1,
		ClientID:   20,
		ProviderID: 1,
		Status:     string(StatusRequested),
	}
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	t.Run("owning provider confirms a request", func(t *testing.T) {
		ap := requestedAppointment()
		require.NoError(t, Confirm(ap, owningProvider, now))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
		require.NotNil(t, ap.ConfirmedAt)
		assert.Equal(t, now, *ap.ConfirmedAt)
	})

	t.Run("client cannot confirm", func(t *testing.T) {
		ap := requestedAppointment()
		err := Confirm(ap, bookingClient, now)
		assert.Equal(t, "forbidden", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusRequested), ap.Status)
		assert.Nil(t, ap.ConfirmedAt)
	})

	t.Run("unrelated provider cannot confirm", func(t *testing.T) {
		ap := requestedAppointment()
		err := Confirm(ap, otherProvider, now)
		assert.Equal(t, "forbidden", httperr.BusinessCode(err))
	})

	t.Run("only REQUESTED can be confirmed", func(t *testing.T) {
		for _, status := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled} {
			ap := requestedAppointment()
			ap.Status = string(status)
			err := Confirm(ap, owningProvider, now)
			assert.Equal(t, "invalid_transition", httperr.BusinessCode(err), string(status))
			assert.Equal(t, string(status), ap.Status)
		}
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	t.Run("client cancels own request", func(t *testing.T) {
		ap := requestedAppointment()
		require.NoError(t, Cancel(ap, bookingClient, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		require.NotNil(t, ap.CancelledAt)
	})

	t.Run("provider cancels a confirmed appointment", func(t *testing.T) {
		ap := requestedAppointment()
		ap.Status = string(StatusConfirmed)
		require.NoError(t, Cancel(ap, owningProvider, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
	})

	t.Run("outsider cannot cancel", func(t *testing.T) {
		ap := requestedAppointment()
		err := Cancel(ap, otherClient, now)
		assert.Equal(t, "forbidden", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusRequested), ap.Status)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		for _, status := range []Status{StatusCompleted, StatusCancelled} {
			ap := requestedAppointment()
			ap.Status = string(status)
			err := Cancel(ap, bookingClient, now)
			assert.Equal(t, "invalid_transition", httperr.BusinessCode(err), string(status))
			assert.Equal(t, string(status), ap.Status)
		}
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	t.Run("owning provider completes a confirmed appointment", func(t *testing.T) {
		ap := requestedAppointment()
		ap.Status = string(StatusConfirmed)
		require.NoError(t, Complete(ap, owningProvider, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
		require.NotNil(t, ap.CompletedAt)
	})

	t.Run("client cannot complete", func(t *testing.T) {
		ap := requestedAppointment()
		ap.Status = string(StatusConfirmed)
		err := Complete(ap, bookingClient, now)
		assert.Equal(t, "forbidden", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
	})

	t.Run("REQUESTED cannot skip to COMPLETED", func(t *testing.T) {
		ap := requestedAppointment()
		err := Complete(ap, owningProvider, now)
		assert.Equal(t, "invalid_transition", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusRequested), ap.Status)
	})
}

func TestCanReschedule(t *testing.T) {
	t.Run("either party while active", func(t *testing.T) {
		for _, status := range []Status{StatusRequested, StatusConfirmed} {
			ap := requestedAppointment()
			ap.Status = string(status)
			assert.NoError(t, CanReschedule(ap, bookingClient), string(status))
			assert.NoError(t, CanReschedule(ap, owningProvider), string(status))
		}
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		ap := requestedAppointment()
		err := CanReschedule(ap, otherClient)
		assert.Equal(t, "forbidden", httperr.BusinessCode(err))
	})

	t.Run("terminal states cannot move", func(t *testing.T) {
		for _, status := range []Status{StatusCompleted, StatusCancelled} {
			ap := requestedAppointment()
			ap.Status = string(status)
			err := CanReschedule(ap, bookingClient)
			assert.Equal(t, "invalid_transition", httperr.BusinessCode(err), string(status))
		}
	})
}

func TestTerminal(t *testing.T) {
	assert.False(t, Terminal(StatusRequested))
	assert.False(t, Terminal(StatusConfirmed))
	assert.True(t, Terminal(StatusCompleted))
	assert.True(t, Terminal(StatusCancelled))
}
