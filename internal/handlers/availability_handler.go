package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/cache"
	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AvailabilityHandler manages a provider's weekly windows and one-off
// unavailable dates. Every mutation invalidates the provider's cached slot
// listings.
type AvailabilityHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewAvailabilityHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, cache: availCache}
}

func (h *AvailabilityHandler) invalidate(ctx context.Context, providerID uint) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, providerID)
	}
}

// ======================================================
// WEEKLY WINDOWS
// ======================================================

type WindowRequest struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Recurring *bool  `json:"recurring"`
}

func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var windows []models.AvailabilityWindow
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_windows", "Could not list availability windows.")
		return
	}

	httpresp.List(c, windows)
}

func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if _, _, err := domain.ParseClockRange(req.StartTime, req.EndTime); err != nil {
		writeBusinessError(c, err)
		return
	}

	recurring := true
	if req.Recurring != nil {
		recurring = *req.Recurring
	}

	window := models.AvailabilityWindow{
		ProviderID: providerID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Recurring:  recurring,
	}

	if err := h.db.Create(&window).Error; err != nil {
		httperr.Internal(c, "failed_to_create_window", "Could not save the window.")
		return
	}

	h.invalidate(c.Request.Context(), providerID)
	httpresp.Created(c, window)
}

func (h *AvailabilityHandler) UpdateWindow(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var window models.AvailabilityWindow
	if err := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&window).Error; err != nil {
		httperr.NotFound(c, "window_not_found", "Availability window not found.")
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if _, _, err := domain.ParseClockRange(req.StartTime, req.EndTime); err != nil {
		writeBusinessError(c, err)
		return
	}

	window.Weekday = req.Weekday
	window.StartTime = req.StartTime
	window.EndTime = req.EndTime
	if req.Recurring != nil {
		window.Recurring = *req.Recurring
	}

	if err := h.db.Save(&window).Error; err != nil {
		httperr.Internal(c, "failed_to_update_window", "Could not save the window.")
		return
	}

	h.invalidate(c.Request.Context(), providerID)
	httpresp.OK(c, window)
}

func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		Delete(&models.AvailabilityWindow{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_window", "Could not delete the window.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "window_not_found", "Availability window not found.")
		return
	}

	h.invalidate(c.Request.Context(), providerID)
	c.JSON(200, gin.H{"status": "deleted"})
}

// ======================================================
// UNAVAILABLE DATES
// ======================================================

type UnavailableDateRequest struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

func (h *AvailabilityHandler) ListUnavailableDates(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var dates []models.UnavailableDate
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("date ASC").
		Find(&dates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_dates", "Could not list unavailable dates.")
		return
	}

	httpresp.List(c, dates)
}

func (h *AvailabilityHandler) CreateUnavailableDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req UnavailableDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	ud := models.UnavailableDate{
		ProviderID: providerID,
		Date:       domain.DateOnly(date),
		Reason:     req.Reason,
	}

	if err := h.db.Create(&ud).Error; err != nil {
		httperr.Internal(c, "failed_to_create_date", "Could not save the unavailable date.")
		return
	}

	h.invalidate(c.Request.Context(), providerID)
	httpresp.Created(c, ud)
}

func (h *AvailabilityHandler) DeleteUnavailableDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		Delete(&models.UnavailableDate{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_date", "Could not delete the unavailable date.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "date_not_found", "Unavailable date not found.")
		return
	}

	h.invalidate(c.Request.Context(), providerID)
	c.JSON(200, gin.H{"status": "deleted"})
}
