package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns audit entries, newest first, filtered by query params.
// Admin only (enforced at the route).
func (h *AuditLogsHandler) List(c *gin.Context) {
	query := h.db.Model(&models.AuditLog{})

	if v := c.Query("user_id"); v != "" {
		userID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid user_id filter.")
			return
		}
		query = query.Where("user_id = ?", uint(userID))
	}

	if v := c.Query("action"); v != "" {
		query = query.Where("action = ?", v)
	}

	if v := c.Query("entity"); v != "" {
		query = query.Where("entity = ?", v)
	}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid from date, expected YYYY-MM-DD.")
			return
		}
		query = query.Where("created_at >= ?", from)
	}

	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid to date, expected YYYY-MM-DD.")
			return
		}
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.OK(c, gin.H{
		"data":   logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
