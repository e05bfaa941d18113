package repository

import (
	"context"
	"errors"
	"strings"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoadbookRepository struct {
	db *gorm.DB
}

type RoadbookRepositoryInterface interface {
	Create(ctx context.Context, roadbook *model.Roadbook) error
	Save(ctx context.Context, roadbook *model.Roadbook) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error)
	FindOneByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Roadbook, error)
	FindOneVisible(ctx context.Context, id, userID uuid.UUID) (*model.Roadbook, error)
	SearchByTitle(ctx context.Context, query string, userID uuid.UUID) ([]model.Roadbook, error)
	GetStops(ctx context.Context, roadbookID uuid.UUID) ([]model.RoadbookStop, error)
	ReplacePlaceStops(ctx context.Context, roadbookID uuid.UUID, places []model.Place) error
	CreateStop(ctx context.Context, stop *model.RoadbookStop) error
	SaveStop(ctx context.Context, stop *model.RoadbookStop) error
	DeleteStop(ctx context.Context, id uuid.UUID) error
	GetStopByID(ctx context.Context, id uuid.UUID) (*model.RoadbookStop, error)
}

var _ RoadbookRepositoryInterface = (*RoadbookRepository)(nil)

func NewRoadbookRepository(db *gorm.DB) *RoadbookRepository {
	return &RoadbookRepository{db: db}
}

func (r *RoadbookRepository) Create(ctx context.Context, roadbook *model.Roadbook) error {
	return r.db.WithContext(ctx).Create(roadbook).Error
}

func (r *RoadbookRepository) Save(ctx context.Context, roadbook *model.Roadbook) error {
	return r.db.WithContext(ctx).Save(roadbook).Error
}

// Delete removes the roadbook with its stops and share grants.
func (r *RoadbookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("roadbook_id = ?", id).Delete(&model.RoadbookStop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("roadbook_id = ?", id).Delete(&model.SharedRoadbook{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Roadbook{}).Error
	})
}

// FindByUser lists the roadbooks owned by userID, newest first. Shared and
// public roadbooks are not included.
func (r *RoadbookRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error) {
	var roadbooks []model.Roadbook
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&roadbooks).Error
	return roadbooks, err
}

// FindOneByIDAndUser resolves a roadbook only when userID owns it. A roadbook
// owned by someone else yields nil regardless of existence, so callers cannot
// distinguish "absent" from "not yours".
func (r *RoadbookRepository) FindOneByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Roadbook, error) {
	var roadbook model.Roadbook
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&roadbook).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &roadbook, nil
}

// FindOneVisible resolves a roadbook readable by userID: owned, shared with
// them, or public. Used only when share grants are enabled.
func (r *RoadbookRepository) FindOneVisible(ctx context.Context, id, userID uuid.UUID) (*model.Roadbook, error) {
	var roadbook model.Roadbook
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ? OR is_public = TRUE OR id IN (SELECT roadbook_id FROM shared_roadbooks WHERE shared_with_user_id = ?)",
			userID, userID).
		First(&roadbook).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &roadbook, nil
}

// SearchByTitle matches the query case-insensitively against titles of the
// actor's own roadbooks, newest first.
func (r *RoadbookRepository) SearchByTitle(ctx context.Context, query string, userID uuid.UUID) ([]model.Roadbook, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var roadbooks []model.Roadbook
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(title) LIKE ?", userID, pattern).
		Order("created_at DESC").
		Find(&roadbooks).Error
	return roadbooks, err
}

// GetStops returns the stops of a roadbook in itinerary order.
func (r *RoadbookRepository) GetStops(ctx context.Context, roadbookID uuid.UUID) ([]model.RoadbookStop, error) {
	var stops []model.RoadbookStop
	err := r.db.WithContext(ctx).
		Where("roadbook_id = ?", roadbookID).
		Order("day_number, order_index, created_at").
		Find(&stops).Error
	return stops, err
}

// ReplacePlaceStops replaces the full place-derived stop set: every stop that
// references a place is removed, then one stop per resolved place is created
// in the given order. Free-text stops are untouched.
func (r *RoadbookRepository) ReplacePlaceStops(ctx context.Context, roadbookID uuid.UUID, places []model.Place) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("roadbook_id = ? AND place_id IS NOT NULL", roadbookID).
			Delete(&model.RoadbookStop{}).Error; err != nil {
			return err
		}
		for i := range places {
			place := places[i]
			stop := model.RoadbookStop{
				RoadbookID: roadbookID,
				PlaceID:    &place.ID,
				Title:      place.Name,
				DayNumber:  1,
				OrderIndex: i,
			}
			if err := tx.Create(&stop).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RoadbookRepository) CreateStop(ctx context.Context, stop *model.RoadbookStop) error {
	return r.db.WithContext(ctx).Create(stop).Error
}

func (r *RoadbookRepository) SaveStop(ctx context.Context, stop *model.RoadbookStop) error {
	return r.db.WithContext(ctx).Save(stop).Error
}

func (r *RoadbookRepository) DeleteStop(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RoadbookStop{}).Error
}

func (r *RoadbookRepository) GetStopByID(ctx context.Context, id uuid.UUID) (*model.RoadbookStop, error) {
	var stop model.RoadbookStop
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&stop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stop, nil
}
