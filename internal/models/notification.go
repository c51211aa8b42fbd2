package models

import "time"

const (
	NotificationAppointment = "APPOINTMENT"
	NotificationMessage     = "MESSAGE"
	NotificationPayment     = "PAYMENT"
	NotificationSystem      = "SYSTEM"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	Type    string `gorm:"size:20;not null" json:"type"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Read    bool   `gorm:"default:false" json:"read"`

	RelatedObjectID   *uint  `json:"related_object_id"`
	RelatedObjectType string `gorm:"size:50" json:"related_object_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
