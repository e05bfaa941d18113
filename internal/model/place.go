package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaceType is a closed enumeration validated at construction via
// ParsePlaceType, not just at the storage boundary.
type PlaceType string

const (
	PlaceTypeRestaurant     PlaceType = "RESTAURANT"
	PlaceTypeHotel          PlaceType = "HOTEL"
	PlaceTypeAttraction     PlaceType = "ATTRACTION"
	PlaceTypeMuseum         PlaceType = "MUSEUM"
	PlaceTypePark           PlaceType = "PARK"
	PlaceTypeBeach          PlaceType = "BEACH"
	PlaceTypeMountain       PlaceType = "MOUNTAIN"
	PlaceTypeCity           PlaceType = "CITY"
	PlaceTypeViewpoint      PlaceType = "VIEWPOINT"
	PlaceTypeHiddenGem      PlaceType = "HIDDEN_GEM"
	PlaceTypeCafe           PlaceType = "CAFE"
	PlaceTypeBar            PlaceType = "BAR"
	PlaceTypeShop           PlaceType = "SHOP"
	PlaceTypeTransportation PlaceType = "TRANSPORTATION"
	PlaceTypeOther          PlaceType = "OTHER"
)

var placeTypes = map[PlaceType]bool{
	PlaceTypeRestaurant: true, PlaceTypeHotel: true, PlaceTypeAttraction: true,
	PlaceTypeMuseum: true, PlaceTypePark: true, PlaceTypeBeach: true,
	PlaceTypeMountain: true, PlaceTypeCity: true, PlaceTypeViewpoint: true,
	PlaceTypeHiddenGem: true, PlaceTypeCafe: true, PlaceTypeBar: true,
	PlaceTypeShop: true, PlaceTypeTransportation: true, PlaceTypeOther: true,
}

// ParsePlaceType accepts the enum value in any case and returns the canonical form.
func ParsePlaceType(s string) (PlaceType, error) {
	t := PlaceType(strings.ToUpper(strings.TrimSpace(s)))
	if !placeTypes[t] {
		return "", fmt.Errorf("invalid place type %q", s)
	}
	return t, nil
}

type Place struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string    `gorm:"not null"`
	Description   string
	Latitude      float64   `gorm:"not null"`
	Longitude     float64   `gorm:"not null"`
	City          string    `gorm:"index"`
	Country       string
	PlaceType     PlaceType `gorm:"type:varchar(32);not null"`
	AverageRating float64   `gorm:"not null;default:0"`
	RatingCount   int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}
