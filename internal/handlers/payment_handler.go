package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/OsamaDeghidy/A-List-Home-Pros/internal/domain/scheduling"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db       *gorm.DB
	checkout *payments.Checkout
	notify   *notify.Dispatcher
}

func NewPaymentHandler(db *gorm.DB, checkout *payments.Checkout, dispatcher *notify.Dispatcher) *PaymentHandler {
	return &PaymentHandler{db: db, checkout: checkout, notify: dispatcher}
}

// ======================================================
// DEPOSIT
// ======================================================

type CreateDepositRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

// CreateDeposit opens a gateway checkout for an appointment deposit. Only
// the client who booked the appointment can pay for it.
func (h *PaymentHandler) CreateDeposit(c *gin.Context) {
	if h.checkout == nil {
		httperr.Write(c, 503, "payments_disabled", "Payments are not configured.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	var ap models.Appointment
	if err := h.db.Preload("Client").Preload("Provider").First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if ap.ClientID != userID {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if domain.Terminal(domain.Status(ap.Status)) {
		httperr.BadRequest(c, "appointment_closed", "This appointment no longer accepts deposits.")
		return
	}

	var existing int64
	h.db.Model(&models.Payment{}).
		Where("appointment_id = ? AND status IN ?", ap.ID, []string{models.PaymentPending, models.PaymentApproved}).
		Count(&existing)
	if existing > 0 {
		httperr.BadRequest(c, "deposit_already_exists", "A deposit for this appointment is already open.")
		return
	}

	pay := models.Payment{
		AppointmentID:     ap.ID,
		PayerID:           userID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Status:            models.PaymentPending,
		ExternalReference: uuid.NewString(),
	}

	result, err := h.checkout.CreateDeposit(c.Request.Context(), payments.DepositRequest{
		ExternalReference: pay.ExternalReference,
		Title:             "Deposit for " + ap.Provider.BusinessName,
		Amount:            req.Amount,
		Currency:          req.Currency,
		PayerEmail:        ap.Client.Email,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_deposit", "Could not start the checkout.")
		return
	}

	pay.PreferenceID = result.PreferenceID
	pay.CheckoutURL = result.CheckoutURL

	if err := h.db.Create(&pay).Error; err != nil {
		httperr.Internal(c, "failed_to_create_deposit", "Could not record the payment.")
		return
	}

	httpresp.Created(c, pay)
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var list []models.Payment
	if err := h.db.
		Where("payer_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// WEBHOOK
// ======================================================

// Webhook receives gateway payment notifications. The gateway retries on
// non-2xx, so unknown references are acknowledged and logged rather than
// rejected.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if h.checkout == nil {
		c.Status(200)
		return
	}

	if c.Query("type") != "payment" {
		c.Status(200)
		return
	}

	paymentID, err := strconv.Atoi(c.Query("data.id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_webhook", "Invalid payment identifier.")
		return
	}

	status, err := h.checkout.LookupPayment(c.Request.Context(), paymentID)
	if err != nil {
		httperr.Internal(c, "failed_to_lookup_payment", "Could not verify the payment.")
		return
	}

	var pay models.Payment
	if err := h.db.
		Where("external_reference = ?", status.ExternalReference).
		First(&pay).Error; err != nil {
		// not ours, or a stale retry after cleanup
		c.Status(200)
		return
	}

	newStatus := models.PaymentRejected
	if status.Approved {
		newStatus = models.PaymentApproved
	}

	if pay.Status != newStatus {
		if err := h.db.Model(&pay).Update("status", newStatus).Error; err != nil {
			httperr.Internal(c, "failed_to_update_payment", "Could not update the payment.")
			return
		}

		if h.notify != nil && status.Approved {
			h.notify.Dispatch(notify.Event{
				UserIDs:           []uint{pay.PayerID},
				Type:              models.NotificationPayment,
				Title:             "Deposit received",
				Content:           "Your deposit was approved.",
				RelatedObjectID:   &pay.AppointmentID,
				RelatedObjectType: "appointment",
			})
		}
	}

	c.Status(200)
}
