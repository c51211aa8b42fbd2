package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
	dbpkg "github.com/OsamaDeghidy/A-List-Home-Pros/internal/db"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/routes"
)

type apiEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config

	client       models.User
	providerUser models.User
	provider     models.ProviderProfile
	admin        models.User
	category     models.ServiceCategory
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret"}

	router := gin.New()
	require.NoError(t, routes.RegisterRoutes(router, db, nil, cfg))

	env := &apiEnv{router: router, db: db, cfg: cfg}

	env.category = models.ServiceCategory{Name: "Plumbing"}
	require.NoError(t, db.Create(&env.category).Error)

	env.providerUser = models.User{Name: "Pat Rivera", Email: "pat@example.com", PasswordHash: "x", Role: models.RoleProvider}
	require.NoError(t, db.Create(&env.providerUser).Error)

	env.provider = models.ProviderProfile{
		UserID:       env.providerUser.ID,
		BusinessName: "Rivera Plumbing",
		Categories:   []models.ServiceCategory{env.category},
	}
	require.NoError(t, db.Create(&env.provider).Error)

	for weekday := 0; weekday < 5; weekday++ {
		require.NoError(t, db.Create(&models.AvailabilityWindow{
			ProviderID: env.provider.ID,
			Weekday:    weekday,
			StartTime:  "09:00",
			EndTime:    "17:00",
			Recurring:  true,
		}).Error)
	}

	env.client = models.User{Name: "Sam Okafor", Email: "sam@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&env.client).Error)

	env.admin = models.User{Name: "Root", Email: "root@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&env.admin).Error)

	return env
}

func (e *apiEnv) token(t *testing.T, user models.User, providerID uint) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":        user.ID,
		"providerId": providerID,
		"role":       string(user.Role),
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const apptMonday = "2026-08-24"

func (e *apiEnv) createAppointment(t *testing.T, start, end string) uint {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/appointments", e.token(t, e.client, 0), gin.H{
		"provider_id":         e.provider.ID,
		"service_category_id": e.category.ID,
		"date":                apptMonday,
		"start_time":          start,
		"end_time":            end,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func TestAppointmentLifecycleOverHTTP(t *testing.T) {
	env := newAPIEnv(t)

	id := env.createAppointment(t, "10:00", "11:00")
	clientToken := env.token(t, env.client, 0)
	providerToken := env.token(t, env.providerUser, env.provider.ID)

	t.Run("client cannot confirm", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/appointments/9999/confirm", clientToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code) // unknown id wins first

		w = env.do(t, http.MethodPatch, appointmentPath(id, "confirm"), clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "forbidden", decodeBody(t, w)["error_code"])
	})

	t.Run("provider confirms", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, appointmentPath(id, "confirm"), providerToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "CONFIRMED", decodeBody(t, w)["status"])
	})

	t.Run("confirming twice is an invalid transition", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, appointmentPath(id, "confirm"), providerToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_transition", decodeBody(t, w)["error_code"])
	})

	t.Run("provider completes", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, appointmentPath(id, "complete"), providerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "COMPLETED", decodeBody(t, w)["status"])
	})
}

func TestAppointmentConflictsOverHTTP(t *testing.T) {
	env := newAPIEnv(t)
	clientToken := env.token(t, env.client, 0)

	env.createAppointment(t, "10:00", "11:00")

	t.Run("overlapping request is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/appointments", clientToken, gin.H{
			"provider_id": env.provider.ID,
			"date":        apptMonday,
			"start_time":  "10:30",
			"end_time":    "11:30",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "time_slot_taken", decodeBody(t, w)["error_code"])
	})

	t.Run("back-to-back request succeeds", func(t *testing.T) {
		env.createAppointment(t, "11:00", "12:00")
	})

	t.Run("outside windows is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/appointments", clientToken, gin.H{
			"provider_id": env.provider.ID,
			"date":        apptMonday,
			"start_time":  "18:00",
			"end_time":    "19:00",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "provider_unavailable", decodeBody(t, w)["error_code"])
	})
}

func TestAppointmentVisibilityOverHTTP(t *testing.T) {
	env := newAPIEnv(t)

	id := env.createAppointment(t, "10:00", "11:00")

	outsider := models.User{Name: "Eve", Email: "eve@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, env.db.Create(&outsider).Error)

	t.Run("outsider sees 404, not 403", func(t *testing.T) {
		w := env.do(t, http.MethodGet, appointmentPath(id, ""), env.token(t, outsider, 0), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		w := env.do(t, http.MethodGet, appointmentPath(id, ""), env.token(t, env.admin, 0), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/appointments", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPublicAvailabilityOverHTTP(t *testing.T) {
	env := newAPIEnv(t)

	env.createAppointment(t, "10:00", "11:00")

	w := env.do(t, http.MethodGet,
		availabilityPath(env.provider.ID)+"?date="+apptMonday+"&duration=60", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Date  string `json:"date"`
		Slots []struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, apptMonday, resp.Date)
	assert.Len(t, resp.Slots, 7)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "10:00", slot.Start)
	}
}

func TestAdminGateOverHTTP(t *testing.T) {
	env := newAPIEnv(t)

	t.Run("client is forbidden", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/admin/analytics", env.token(t, env.client, 0), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/admin/analytics", env.token(t, env.admin, 0), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func appointmentPath(id uint, action string) string {
	p := "/api/appointments/" + itoa(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

func availabilityPath(providerID uint) string {
	return "/api/providers/" + itoa(providerID) + "/availability"
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
