package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

func actorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:     c.MustGet(middleware.ContextUserID).(uint),
		ProviderID: c.MustGet(middleware.ContextProviderID).(uint),
		Role:       c.MustGet(middleware.ContextUserRole).(models.Role),
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

// writeBusinessError maps domain failure codes onto HTTP statuses.
func writeBusinessError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "forbidden":
		httperr.Forbidden(c, code, "You are not allowed to perform this action.")
	case "invalid_transition":
		httperr.BadRequest(c, code, "The appointment cannot change to that state.")
	case "service_not_offered":
		httperr.BadRequest(c, code, "This provider does not offer the selected service.")
	case "provider_unavailable":
		httperr.BadRequest(c, code, "The provider is not available at the requested time.")
	case "time_slot_taken":
		httperr.BadRequest(c, code, "The provider already has an appointment during this time.")
	case "invalid_date", "invalid_time", "invalid_time_range":
		httperr.BadRequest(c, code, "Invalid date or time.")
	case "provider_not_found", "appointment_not_found":
		httperr.NotFound(c, code, "Not found.")
	case "":
		httperr.Internal(c, "internal_error", "Something went wrong.")
	default:
		httperr.BadRequest(c, code, "Request rejected.")
	}
}
