package models

import "time"

// Role is resolved once at the auth boundary; handlers never probe for
// profile relations to guess who they are talking to.
type Role string

const (
	RoleClient     Role = "client"
	RoleProvider   Role = "provider"
	RoleCrew       Role = "crew"
	RoleSpecialist Role = "specialist"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleCrew, RoleSpecialist, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         Role   `gorm:"size:20;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
