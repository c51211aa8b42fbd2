package models

import "time"

type PortfolioItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"size:255" json:"description"`

	ImageURL     string `gorm:"size:512;not null" json:"image_url"`
	ThumbnailURL string `gorm:"size:512" json:"thumbnail_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
