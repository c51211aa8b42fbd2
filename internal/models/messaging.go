package models

import "time"

type Conversation struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:255" json:"title"`

	Participants []User `gorm:"many2many:conversation_participants;" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConversationID uint `gorm:"index;not null" json:"conversation_id"`

	SenderID uint `gorm:"not null" json:"sender_id"`
	Sender   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender"`

	Content string `gorm:"type:text;not null" json:"content"`
	Read    bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
