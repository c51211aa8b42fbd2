package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	ucScheduling "github.com/OsamaDeghidy/A-List-Home-Pros/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	requestUC    *ucScheduling.RequestAppointment
	transitionUC *ucScheduling.TransitionAppointment
	rescheduleUC *ucScheduling.RescheduleAppointment
	slotsUC      *ucScheduling.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	requestUC *ucScheduling.RequestAppointment,
	transitionUC *ucScheduling.TransitionAppointment,
	rescheduleUC *ucScheduling.RescheduleAppointment,
	slotsUC *ucScheduling.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		requestUC:    requestUC,
		transitionUC: transitionUC,
		rescheduleUC: rescheduleUC,
		slotsUC:      slotsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProviderID        uint     `json:"provider_id" binding:"required"`
	ServiceCategoryID *uint    `json:"service_category_id"`
	Date              string   `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime         string   `json:"start_time" binding:"required"` // HH:mm
	EndTime           string   `json:"end_time" binding:"required"`   // HH:mm
	Notes             string   `json:"notes"`
	Location          string   `json:"location"`
	EstimatedCost     *float64 `json:"estimated_cost"`
}

type RescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.requestUC.Execute(c.Request.Context(), ucScheduling.RequestAppointmentInput{
		ClientID:          actor.UserID,
		ProviderID:        req.ProviderID,
		ServiceCategoryID: req.ServiceCategoryID,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Notes:             req.Notes,
		Location:          req.Location,
		EstimatedCost:     req.EstimatedCost,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actor := actorFromContext(c)

	q := h.db.
		Preload("Client").
		Preload("Provider").
		Preload("ServiceCategory")

	switch actor.Role {
	case models.RoleAdmin:
		// admins see everything
	case models.RoleProvider:
		q = q.Where("provider_id = ?", actor.ProviderID)
	default:
		q = q.Where("client_id = ?", actor.UserID)
	}

	if date := c.Query("date"); date != "" {
		q = q.Where("appointment_date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.
		Order("appointment_date ASC, start_time ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor := actorFromContext(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, ok := h.loadVisible(c, id, actor)
	if !ok {
		return
	}

	httpresp.OK(c, ap)
}

// loadVisible fetches the appointment and enforces that only the two
// parties or an admin can see it.
func (h *AppointmentHandler) loadVisible(
	c *gin.Context,
	id uint,
	actor domain.Actor,
) (*models.Appointment, bool) {

	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Provider").
		Preload("ServiceCategory").
		First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return nil, false
	}

	if actor.Role != models.RoleAdmin && !actor.Party(&ap) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return nil, false
	}

	return &ap, true
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.transitionUC.Confirm)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transitionUC.Cancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.transitionUC.Complete)
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(ctx context.Context, id uint, actor domain.Actor) (*models.Appointment, error),
) {
	actor := actorFromContext(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), id, actor)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor := actorFromContext(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucScheduling.RescheduleInput{
		AppointmentID: id,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}, actor)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY SLOTS (PUBLIC)
// ======================================================

func (h *AppointmentHandler) AvailabilitySlots(c *gin.Context) {
	providerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	duration := 60
	if d := c.Query("duration"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 || parsed > 24*60 {
			httperr.BadRequest(c, "invalid_duration", "Invalid slot duration.")
			return
		}
		duration = parsed
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), providerID, dateStr, duration)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// NOTES
// ======================================================

type CreateNoteRequest struct {
	Note      string `json:"note" binding:"required"`
	IsPrivate bool   `json:"is_private"`
}

func (h *AppointmentHandler) ListNotes(c *gin.Context) {
	actor := actorFromContext(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, ok := h.loadVisible(c, id, actor); !ok {
		return
	}

	q := h.db.
		Preload("User").
		Where("appointment_id = ?", id)

	// private notes stay between their author and admins
	if actor.Role != models.RoleAdmin {
		q = q.Where("is_private = ? OR user_id = ?", false, actor.UserID)
	}

	var notes []models.AppointmentNote
	if err := q.Order("created_at DESC").Find(&notes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notes", "Could not list notes.")
		return
	}

	httpresp.List(c, notes)
}

func (h *AppointmentHandler) CreateNote(c *gin.Context) {
	actor := actorFromContext(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, ok := h.loadVisible(c, id, actor); !ok {
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	note := models.AppointmentNote{
		AppointmentID: id,
		UserID:        actor.UserID,
		Note:          req.Note,
		IsPrivate:     req.IsPrivate,
	}

	if err := h.db.Create(&note).Error; err != nil {
		httperr.Internal(c, "failed_to_create_note", "Could not save the note.")
		return
	}

	httpresp.Created(c, note)
}
