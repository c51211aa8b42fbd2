package models

import "time"

// ProviderProfile is the single service-provider identity ("A-List Home Pro").
// Availability windows and unavailable dates cascade with it.
type ProviderProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	BusinessName    string `gorm:"size:100;not null" json:"business_name"`
	Description     string `gorm:"type:text" json:"description"`
	LicenseNumber   string `gorm:"size:50" json:"license_number"`
	YearsExperience int    `json:"years_experience"`

	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	Timezone string `gorm:"size:50" json:"timezone"`

	ProfileViews int64 `gorm:"default:0" json:"profile_views"`

	Categories []ServiceCategory `gorm:"many2many:provider_categories;" json:"categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
