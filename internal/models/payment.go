package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// Payment tracks a deposit charged for an appointment through the payment
// gateway. ExternalReference ties gateway webhooks back to this row.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PayerID uint `gorm:"index;not null" json:"payer_id"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;default:'USD'" json:"currency"`
	Status   string  `gorm:"size:20;default:'pending'" json:"status"`

	ExternalReference string `gorm:"size:36;uniqueIndex" json:"external_reference"`
	PreferenceID      string `gorm:"size:100" json:"preference_id"`
	CheckoutURL       string `gorm:"size:512" json:"checkout_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
