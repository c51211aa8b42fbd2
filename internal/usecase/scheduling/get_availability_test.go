package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
)

func TestGetAvailability_FreeDay(t *testing.T) {
	f := newFixture(t)

	slots, err := NewGetAvailability(f.deps).Execute(context.Background(), f.provider.ID, testMonday, 120)
	require.NoError(t, err)

	// 09:00-17:00 in two-hour steps
	require.Len(t, slots, 4)
	assert.Equal(t, TimeSlot{Start: "09:00", End: "11:00"}, slots[0])
	assert.Equal(t, TimeSlot{Start: "15:00", End: "17:00"}, slots[3])
}

func TestGetAvailability_SkipsBookedSlots(t *testing.T) {
	f := newFixture(t)

	f.request(t, testMonday, "10:00", "11:00")

	slots, err := NewGetAvailability(f.deps).Execute(context.Background(), f.provider.ID, testMonday, 60)
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "09:00")
	assert.Contains(t, starts, "11:00")
	assert.Len(t, slots, 7)
}

func TestGetAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture(t)
	uc := NewGetAvailability(f.deps)

	ap := f.request(t, testMonday, "10:00", "11:00")

	slots, err := uc.Execute(context.Background(), f.provider.ID, testMonday, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 7)

	_, err = NewTransitionAppointment(f.deps).Cancel(context.Background(), ap.ID, f.clientActor())
	require.NoError(t, err)

	slots, err = uc.Execute(context.Background(), f.provider.ID, testMonday, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestGetAvailability_BlockedDateIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.blockDate(t, testMonday)

	slots, err := NewGetAvailability(f.deps).Execute(context.Background(), f.provider.ID, testMonday, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_NoWindowDay(t *testing.T) {
	f := newFixture(t)

	// Saturday has no window in the fixture
	slots, err := NewGetAvailability(f.deps).Execute(context.Background(), f.provider.ID, "2026-08-29", 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_DefaultDuration(t *testing.T) {
	f := newFixture(t)

	slots, err := NewGetAvailability(f.deps).Execute(context.Background(), f.provider.ID, testMonday, 0)
	require.NoError(t, err)
	assert.Len(t, slots, 8) // falls back to 60 minutes
}

func TestGetAvailability_InvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := NewGetAvailability(f.deps).Execute(context.Background(), f.provider.ID, "not-a-date", 60)
	assert.Equal(t, "invalid_date", httperr.BusinessCode(err))
}
