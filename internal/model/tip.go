package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TipCategory classifies a travel tip left on a place.
type TipCategory string

const (
	TipGeneral        TipCategory = "GENERAL"
	TipTransportation TipCategory = "TRANSPORTATION"
	TipFood           TipCategory = "FOOD"
	TipAccommodation  TipCategory = "ACCOMMODATION"
	TipSafety         TipCategory = "SAFETY"
	TipBudget         TipCategory = "BUDGET"
	TipTiming         TipCategory = "TIMING"
	TipHiddenSpot     TipCategory = "HIDDEN_SPOT"
	TipLocalCulture   TipCategory = "LOCAL_CULTURE"
	TipWarning        TipCategory = "WARNING"
	TipInsider        TipCategory = "INSIDER"
)

var tipCategories = map[TipCategory]bool{
	TipGeneral: true, TipTransportation: true, TipFood: true,
	TipAccommodation: true, TipSafety: true, TipBudget: true,
	TipTiming: true, TipHiddenSpot: true, TipLocalCulture: true,
	TipWarning: true, TipInsider: true,
}

func ParseTipCategory(s string) (TipCategory, error) {
	c := TipCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !tipCategories[c] {
		return "", fmt.Errorf("invalid tip category %q", s)
	}
	return c, nil
}

// VoteType is the direction of a tip vote.
type VoteType string

const (
	VoteUp   VoteType = "UP"
	VoteDown VoteType = "DOWN"
)

func ParseVoteType(s string) (VoteType, error) {
	v := VoteType(strings.ToUpper(strings.TrimSpace(s)))
	if v != VoteUp && v != VoteDown {
		return "", fmt.Errorf("invalid vote type %q", s)
	}
	return v, nil
}

type Tip struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PlaceID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Category  TipCategory `gorm:"type:varchar(32);not null;default:'GENERAL'"`
	Content   string      `gorm:"not null"`
	UpVotes   int         `gorm:"not null;default:0"`
	DownVotes int         `gorm:"not null;default:0"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime"`

	Place Place `gorm:"foreignKey:PlaceID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// TipVote records one user's vote on one tip; re-voting replaces the row.
type TipVote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TipID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	VoteType  VoteType  `gorm:"type:varchar(8);not null;check:vote_type IN ('UP', 'DOWN')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Tip  Tip  `gorm:"foreignKey:TipID"`
	User User `gorm:"foreignKey:UserID"`
}
