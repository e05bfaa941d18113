package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Roles stored in users.roles.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email           string    `gorm:"uniqueIndex;not null"`
	Username        string    `gorm:"uniqueIndex;not null"`
	DisplayName     string
	Avatar          string
	Bio             string
	HashedPassword  string         `gorm:"not null"`
	Roles           pq.StringArray `gorm:"type:text[]"`
	IsProfilePublic bool           `gorm:"not null;default:false"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	LastLoginAt     *time.Time
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
