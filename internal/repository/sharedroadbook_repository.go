package repository

import (
	"context"
	"errors"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SharedRoadbookRepository struct {
	db *gorm.DB
}

type SharedRoadbookRepositoryInterface interface {
	Share(ctx context.Context, roadbookID, withUserID, byUserID uuid.UUID, canEdit bool, message string) error
	Revoke(ctx context.Context, roadbookID, withUserID uuid.UUID) error
	GetGrant(ctx context.Context, roadbookID, userID uuid.UUID) (*model.SharedRoadbook, error)
	ListForRoadbook(ctx context.Context, roadbookID uuid.UUID) ([]model.SharedRoadbook, error)
	ListSharedWith(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error)
}

var _ SharedRoadbookRepositoryInterface = (*SharedRoadbookRepository)(nil)

func NewSharedRoadbookRepository(db *gorm.DB) *SharedRoadbookRepository {
	return &SharedRoadbookRepository{db: db}
}

// Share grants withUserID access to the roadbook. Sharing with the same
// recipient again replaces the existing grant.
func (r *SharedRoadbookRepository) Share(ctx context.Context, roadbookID, withUserID, byUserID uuid.UUID, canEdit bool, message string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SharedRoadbook
		err := tx.Where("roadbook_id = ? AND shared_with_user_id = ?", roadbookID, withUserID).
			First(&existing).Error

		if err == nil {
			// Grants are never updated in place: replace the row.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		grant := model.SharedRoadbook{
			RoadbookID:       roadbookID,
			SharedWithUserID: withUserID,
			SharedByUserID:   byUserID,
			CanEdit:          canEdit,
			Message:          message,
		}
		return tx.Create(&grant).Error
	})
}

// Revoke removes the recipient's grant.
func (r *SharedRoadbookRepository) Revoke(ctx context.Context, roadbookID, withUserID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("roadbook_id = ? AND shared_with_user_id = ?", roadbookID, withUserID).
		Delete(&model.SharedRoadbook{}).Error
}

// GetGrant returns the grant for (roadbook, user), or nil when none exists.
func (r *SharedRoadbookRepository) GetGrant(ctx context.Context, roadbookID, userID uuid.UUID) (*model.SharedRoadbook, error) {
	var grant model.SharedRoadbook
	err := r.db.WithContext(ctx).
		Where("roadbook_id = ? AND shared_with_user_id = ?", roadbookID, userID).
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// ListForRoadbook returns all grants on the roadbook with the recipients
// preloaded.
func (r *SharedRoadbookRepository) ListForRoadbook(ctx context.Context, roadbookID uuid.UUID) ([]model.SharedRoadbook, error) {
	var grants []model.SharedRoadbook
	err := r.db.WithContext(ctx).
		Preload("SharedWith").
		Where("roadbook_id = ?", roadbookID).
		Find(&grants).Error
	return grants, err
}

// ListSharedWith returns the roadbooks other users shared with userID.
func (r *SharedRoadbookRepository) ListSharedWith(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error) {
	var roadbooks []model.Roadbook
	err := r.db.WithContext(ctx).
		Joins("JOIN shared_roadbooks ON shared_roadbooks.roadbook_id = roadbooks.id").
		Where("shared_roadbooks.shared_with_user_id = ?", userID).
		Find(&roadbooks).Error
	return roadbooks, err
}
