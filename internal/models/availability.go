package models

import "time"

// AvailabilityWindow is a recurring weekly time range in which a provider
// accepts bookings. Weekday is Monday=0 .. Sunday=6 and times are "15:04"
// wall-clock strings; all comparisons happen in the scheduling domain
// package, never on raw strings.
type AvailabilityWindow struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Weekday   int    `gorm:"not null" json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Recurring bool   `gorm:"default:true" json:"recurring"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnavailableDate blocks every booking on a calendar date regardless of
// weekly windows.
type UnavailableDate struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Reason string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
