package model

import (
	"time"

	"github.com/google/uuid"
)

// SharedRoadbook grants one recipient access to one roadbook. Grants are
// created by the owner and deleted to revoke, never updated in place.
type SharedRoadbook struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RoadbookID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SharedWithUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	SharedByUserID   uuid.UUID `gorm:"type:uuid;not null"`
	CanEdit          bool      `gorm:"not null;default:false"`
	Message          string
	CreatedAt        time.Time `gorm:"autoCreateTime"`

	Roadbook   Roadbook `gorm:"foreignKey:RoadbookID"`
	SharedWith User     `gorm:"foreignKey:SharedWithUserID"`
	SharedBy   User     `gorm:"foreignKey:SharedByUserID"`
}
