package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Dashboard aggregates platform-wide numbers for the admin panel.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	var totalUsers, totalProviders, totalAppointments int64
	h.db.Model(&models.User{}).Count(&totalUsers)
	h.db.Model(&models.ProviderProfile{}).Count(&totalProviders)
	h.db.Model(&models.Appointment{}).Count(&totalAppointments)

	var byStatus []statusCount
	if err := h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		httperr.Internal(c, "failed_to_load_analytics", "Could not load analytics.")
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	var recentAppointments int64
	h.db.Model(&models.Appointment{}).
		Where("created_at >= ?", since).
		Count(&recentAppointments)

	var topCategories []categoryCount
	h.db.Model(&models.Appointment{}).
		Select("service_categories.name as name, COUNT(*) as count").
		Joins("JOIN service_categories ON service_categories.id = appointments.service_category_id").
		Group("service_categories.name").
		Order("count DESC").
		Limit(5).
		Scan(&topCategories)

	var approvedDeposits float64
	h.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&approvedDeposits)

	httpresp.OK(c, gin.H{
		"total_users":             totalUsers,
		"total_providers":         totalProviders,
		"total_appointments":      totalAppointments,
		"appointments_by_status":  byStatus,
		"appointments_last_30d":   recentAppointments,
		"top_service_categories":  topCategories,
		"approved_deposits_total": approvedDeposits,
	})
}

// ProviderStats returns the signed-in provider's own numbers.
func (h *AnalyticsHandler) ProviderStats(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var profile models.ProviderProfile
	if err := h.db.First(&profile, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider profile not found.")
		return
	}

	var byStatus []statusCount
	if err := h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("provider_id = ?", providerID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		httperr.Internal(c, "failed_to_load_analytics", "Could not load analytics.")
		return
	}

	var completed, closed int64
	for _, sc := range byStatus {
		switch domain.Status(sc.Status) {
		case domain.StatusCompleted:
			completed = sc.Count
			closed += sc.Count
		case domain.StatusCancelled:
			closed += sc.Count
		}
	}

	completionRate := 0.0
	if closed > 0 {
		completionRate = float64(completed) / float64(closed)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var upcoming int64
	h.db.Model(&models.Appointment{}).
		Where("provider_id = ? AND appointment_date >= ? AND status IN ?",
			providerID, today,
			[]string{string(domain.StatusRequested), string(domain.StatusConfirmed)}).
		Count(&upcoming)

	httpresp.OK(c, gin.H{
		"appointments_by_status": byStatus,
		"completion_rate":        completionRate,
		"upcoming_appointments":  upcoming,
		"profile_views":          profile.ProfileViews,
	})
}
