package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PlaceRating is a single user review of a place. Creating one recomputes
// the aggregate AverageRating/RatingCount on the place.
type PlaceRating struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PlaceID          uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	OverallRating    int       `gorm:"not null"`
	AtmosphereRating *int
	ValueRating      *int
	ServiceRating    *int
	Review           string
	Photos           pq.StringArray `gorm:"type:text[]"`
	VisitDate        *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`

	Place Place `gorm:"foreignKey:PlaceID"`
	User  User  `gorm:"foreignKey:UserID"`
}
