package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BookTemplate selects the rendering template of a published roadbook.
type BookTemplate string

const (
	TemplateSimple      BookTemplate = "SIMPLE"
	TemplateTravelDiary BookTemplate = "TRAVEL_DIARY"
	TemplatePhotoAlbum  BookTemplate = "PHOTO_ALBUM"
	TemplateMagazine    BookTemplate = "MAGAZINE"
	TemplateMinimalist  BookTemplate = "MINIMALIST"
	TemplateClassic     BookTemplate = "CLASSIC"
)

var bookTemplates = map[BookTemplate]bool{
	TemplateSimple: true, TemplateTravelDiary: true, TemplatePhotoAlbum: true,
	TemplateMagazine: true, TemplateMinimalist: true, TemplateClassic: true,
}

func ParseBookTemplate(s string) (BookTemplate, error) {
	t := BookTemplate(strings.ToUpper(strings.TrimSpace(s)))
	if !bookTemplates[t] {
		return "", fmt.Errorf("invalid book template %q", s)
	}
	return t, nil
}

// Roadbook is a user-authored travel itinerary. Exactly one owner; the
// IsPublished and IsPublic flags are independent of each other.
type Roadbook struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"not null"`
	Description   string
	CoverImage    string
	StartDate     *time.Time
	EndDate       *time.Time
	Countries     pq.StringArray `gorm:"type:text[]"`
	Tags          pq.StringArray `gorm:"type:text[]"`
	IsPublished   bool           `gorm:"not null;default:false"`
	IsPublic      bool           `gorm:"not null;default:false"`
	Template      BookTemplate   `gorm:"type:varchar(32);not null;default:'SIMPLE'"`
	Theme         string         `gorm:"default:'default'"`
	ViewCount     int            `gorm:"not null;default:0"`
	FavoriteCount int            `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PublishedAt   *time.Time

	Owner User           `gorm:"foreignKey:UserID"`
	Stops []RoadbookStop `gorm:"foreignKey:RoadbookID"`
}
