package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"index;not null" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ProviderID uint            `gorm:"index:idx_provider_date,priority:1;not null" json:"provider_id"`
	Provider   ProviderProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider"`

	ServiceCategoryID *uint            `json:"service_category_id"`
	ServiceCategory   *ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_category"`

	// Date at midnight plus "15:04" wall-clock times, [start, end).
	AppointmentDate time.Time `gorm:"type:date;index:idx_provider_date,priority:2;not null" json:"appointment_date"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"`
	EndTime         string    `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;default:'REQUESTED';index" json:"status"`

	Notes         string   `gorm:"type:text" json:"notes"`
	Location      string   `gorm:"size:255" json:"location"`
	EstimatedCost *float64 `json:"estimated_cost"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	AppointmentNotes []AppointmentNote `json:"appointment_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentNote is attached by either party or by state transitions.
// Private notes are hidden from the non-authoring party unless admin.
type AppointmentNote struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Note      string `gorm:"type:text;not null" json:"note"`
	IsPrivate bool   `gorm:"default:false" json:"is_private"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
