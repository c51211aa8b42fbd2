package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type ProviderHandler struct {
	db *gorm.DB
}

func NewProviderHandler(db *gorm.DB) *ProviderHandler {
	return &ProviderHandler{db: db}
}

// ======================================================
// PUBLIC DIRECTORY
// ======================================================

func (h *ProviderHandler) List(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Model(&models.ProviderProfile{}).
		Preload("Categories").
		Preload("User")

	if category != "" {
		q = q.Joins(
			"JOIN provider_categories pc ON pc.provider_profile_id = provider_profiles.id",
		).Joins(
			"JOIN service_categories sc ON sc.id = pc.service_category_id AND LOWER(sc.name) = ?",
			category,
		)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(business_name) LIKE ? OR LOWER(description) LIKE ?",
			like, like,
		)
	}

	var providers []models.ProviderProfile
	if err := q.Order("provider_profiles.id ASC").Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Could not list providers.")
		return
	}

	httpresp.List(c, providers)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var provider models.ProviderProfile
	if err := h.db.Preload("Categories").Preload("User").
		First(&provider, id).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found.")
		return
	}

	// profile views feed the provider analytics; a lost increment is fine
	h.db.Model(&models.ProviderProfile{}).
		Where("id = ?", provider.ID).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1"))

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) ListCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}
	httpresp.List(c, categories)
}

// ======================================================
// OWN PROFILE
// ======================================================

type UpdateProviderRequest struct {
	BusinessName    *string `json:"business_name"`
	Description     *string `json:"description"`
	LicenseNumber   *string `json:"license_number"`
	YearsExperience *int    `json:"years_experience"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	Timezone        *string `json:"timezone"`

	CategoryIDs *[]uint `json:"category_ids"`
}

func (h *ProviderHandler) GetMine(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.ProviderProfile
	if err := h.db.Preload("Categories").First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider profile not found.")
		return
	}

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) UpdateMine(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.ProviderProfile
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider profile not found.")
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.BusinessName != nil && *req.BusinessName != "" {
		provider.BusinessName = *req.BusinessName
	}
	if req.Description != nil {
		provider.Description = *req.Description
	}
	if req.LicenseNumber != nil {
		provider.LicenseNumber = *req.LicenseNumber
	}
	if req.YearsExperience != nil && *req.YearsExperience >= 0 {
		provider.YearsExperience = *req.YearsExperience
	}
	if req.City != nil {
		provider.City = *req.City
	}
	if req.State != nil {
		provider.State = *req.State
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		provider.Timezone = *req.Timezone
	}

	if err := h.db.Save(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Could not save profile.")
		return
	}

	if req.CategoryIDs != nil {
		var categories []models.ServiceCategory
		if err := h.db.Find(&categories, *req.CategoryIDs).Error; err != nil {
			httperr.Internal(c, "failed_to_load_categories", "Could not load categories.")
			return
		}
		if len(categories) != len(*req.CategoryIDs) {
			httperr.BadRequest(c, "unknown_category", "One or more categories do not exist.")
			return
		}
		if err := h.db.Model(&provider).
			Association("Categories").
			Replace(categories); err != nil {
			httperr.Internal(c, "failed_to_set_categories", "Could not update categories.")
			return
		}
	}

	h.db.Preload("Categories").First(&provider, provider.ID)
	httpresp.OK(c, provider)
}
