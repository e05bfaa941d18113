package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoritePlace and FavoriteRoadbook are append-only join rows; undoing a
// favorite deletes the row.

type FavoritePlace struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PlaceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User  User  `gorm:"foreignKey:UserID"`
	Place Place `gorm:"foreignKey:PlaceID"`
}

type FavoriteRoadbook struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RoadbookID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	User     User     `gorm:"foreignKey:UserID"`
	Roadbook Roadbook `gorm:"foreignKey:RoadbookID"`
}
