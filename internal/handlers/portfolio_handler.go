package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/storage"
)

const maxUploadBytes = 10 << 20

type PortfolioHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewPortfolioHandler(db *gorm.DB, images *storage.ImageStore) *PortfolioHandler {
	return &PortfolioHandler{db: db, images: images}
}

// ListByProvider is public: the portfolio is part of the provider's page.
func (h *PortfolioHandler) ListByProvider(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var items []models.PortfolioItem
	if err := h.db.
		Where("provider_id = ?", id).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_portfolio", "Could not list portfolio items.")
		return
	}

	httpresp.List(c, items)
}

// Upload accepts a multipart image plus optional title/description and
// stores the original and a thumbnail.
func (h *PortfolioHandler) Upload(c *gin.Context) {
	if h.images == nil {
		httperr.Write(c, 503, "uploads_disabled", "Image uploads are not configured.")
		return
	}

	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "The image exceeds the 10MB limit.")
		return
	}

	result, err := h.images.UploadPortfolioImage(
		c.Request.Context(),
		providerID,
		file,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file could not be processed as an image.")
		return
	}

	item := models.PortfolioItem{
		ProviderID:   providerID,
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		ImageURL:     result.ImageURL,
		ThumbnailURL: result.ThumbnailURL,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_portfolio_item", "Could not save the portfolio item.")
		return
	}

	httpresp.Created(c, item)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		Delete(&models.PortfolioItem{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_portfolio_item", "Could not delete the portfolio item.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "portfolio_item_not_found", "Portfolio item not found.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Portfolio item deleted."})
}
