package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/OsamaDeghidy/A-List-Home-Pros/internal/db"
	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	infraRepo "github.com/OsamaDeghidy/A-List-Home-Pros/internal/infra/repository"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

// testMonday falls on weekday 0 of the Monday-indexed week.
const testMonday = "2026-08-24"

type fixture struct {
	db   *gorm.DB
	deps Deps

	clientUser   models.User
	providerUser models.User
	provider     models.ProviderProfile
	category     models.ServiceCategory
}

// newFixture builds an in-memory store with one provider working weekdays
// nine to five and offering one service category, plus one client.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	f := &fixture{db: db}

	f.category = models.ServiceCategory{Name: "Plumbing"}
	require.NoError(t, db.Create(&f.category).Error)

	f.providerUser = models.User{
		Name:         "Pat Rivera",
		Email:        "pat@example.com",
		PasswordHash: "x",
		Role:         models.RoleProvider,
	}
	require.NoError(t, db.Create(&f.providerUser).Error)

	f.provider = models.ProviderProfile{
		UserID:       f.providerUser.ID,
		BusinessName: "Rivera Plumbing",
		Timezone:     "UTC",
		Categories:   []models.ServiceCategory{f.category},
	}
	require.NoError(t, db.Create(&f.provider).Error)

	for weekday := 0; weekday < 5; weekday++ {
		window := models.AvailabilityWindow{
			ProviderID: f.provider.ID,
			Weekday:    weekday,
			StartTime:  "09:00",
			EndTime:    "17:00",
			Recurring:  true,
		}
		require.NoError(t, db.Create(&window).Error)
	}

	f.clientUser = models.User{
		Name:         "Sam Okafor",
		Email:        "sam@example.com",
		PasswordHash: "x",
		Role:         models.RoleClient,
	}
	require.NoError(t, db.Create(&f.clientUser).Error)

	f.deps = Deps{Repo: infraRepo.NewSchedulingGormRepository(db)}
	return f
}

func (f *fixture) clientActor() domain.Actor {
	return domain.Actor{UserID: f.clientUser.ID, Role: models.RoleClient}
}

func (f *fixture) providerActor() domain.Actor {
	return domain.Actor{
		UserID:     f.providerUser.ID,
		ProviderID: f.provider.ID,
		Role:       models.RoleProvider,
	}
}

func (f *fixture) request(t *testing.T, date, start, end string) *models.Appointment {
	t.Helper()

	ap, err := NewRequestAppointment(f.deps).Execute(context.Background(), RequestAppointmentInput{
		ClientID:          f.clientUser.ID,
		ProviderID:        f.provider.ID,
		ServiceCategoryID: &f.category.ID,
		Date:              date,
		StartTime:         start,
		EndTime:           end,
	})
	require.NoError(t, err)
	return ap
}

func (f *fixture) blockDate(t *testing.T, date string) {
	t.Helper()

	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	require.NoError(t, f.db.Create(&models.UnavailableDate{
		ProviderID: f.provider.ID,
		Date:       domain.DateOnly(d),
		Reason:     "day off",
	}).Error)
}
