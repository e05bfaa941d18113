package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RoadbookStop is one dated entry of a roadbook. PlaceID links it to a
// catalogued place; CustomLocation covers free-text locations. Ordering is
// (DayNumber, OrderIndex); uniqueness of that pair is not enforced.
type RoadbookStop struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RoadbookID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlaceID        *uuid.UUID `gorm:"type:uuid;index"`
	Title          string
	Description    string
	CustomLocation string
	DayNumber      int `gorm:"not null;default:1"`
	OrderIndex     int `gorm:"not null;default:0"`
	ArrivalDate    *time.Time
	DepartureDate  *time.Time
	Content        string
	Photos         pq.StringArray `gorm:"type:text[]"`
	Mood           string
	Weather        string
	Temperature    *float64
	Expenses       *float64
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Roadbook Roadbook `gorm:"foreignKey:RoadbookID"`
	Place    *Place   `gorm:"foreignKey:PlaceID"`
}
