package repository

import (
	"context"
	"errors"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAlreadyFavorite is returned when the user already favorited the entity.
var ErrAlreadyFavorite = errors.New("already in favorites")

type FavoriteRepository struct {
	db *gorm.DB
}

type FavoriteRepositoryInterface interface {
	AddPlace(ctx context.Context, userID, placeID uuid.UUID) error
	RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error
	ListPlaces(ctx context.Context, userID uuid.UUID) ([]model.Place, error)
	AddRoadbook(ctx context.Context, userID, roadbookID uuid.UUID) error
	RemoveRoadbook(ctx context.Context, userID, roadbookID uuid.UUID) error
	ListRoadbooks(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error)
}

var _ FavoriteRepositoryInterface = (*FavoriteRepository)(nil)

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) AddPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.FavoritePlace
		err := tx.Where("user_id = ? AND place_id = ?", userID, placeID).First(&existing).Error
		if err == nil {
			return ErrAlreadyFavorite
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&model.FavoritePlace{UserID: userID, PlaceID: placeID}).Error
	})
}

func (r *FavoriteRepository) RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Delete(&model.FavoritePlace{}).Error
}

func (r *FavoriteRepository) ListPlaces(ctx context.Context, userID uuid.UUID) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Joins("JOIN favorite_places ON favorite_places.place_id = places.id").
		Where("favorite_places.user_id = ?", userID).
		Order("favorite_places.created_at DESC").
		Find(&places).Error
	return places, err
}

// AddRoadbook records the favorite and bumps the roadbook's counter in the
// same transaction.
func (r *FavoriteRepository) AddRoadbook(ctx context.Context, userID, roadbookID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.FavoriteRoadbook
		err := tx.Where("user_id = ? AND roadbook_id = ?", userID, roadbookID).First(&existing).Error
		if err == nil {
			return ErrAlreadyFavorite
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&model.FavoriteRoadbook{UserID: userID, RoadbookID: roadbookID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Roadbook{}).
			Where("id = ?", roadbookID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + 1")).Error
	})
}

func (r *FavoriteRepository) RemoveRoadbook(ctx context.Context, userID, roadbookID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND roadbook_id = ?", userID, roadbookID).
			Delete(&model.FavoriteRoadbook{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.Roadbook{}).
			Where("id = ? AND favorite_count > 0", roadbookID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count - 1")).Error
	})
}

func (r *FavoriteRepository) ListRoadbooks(ctx context.Context, userID uuid.UUID) ([]model.Roadbook, error) {
	var roadbooks []model.Roadbook
	err := r.db.WithContext(ctx).
		Joins("JOIN favorite_roadbooks ON favorite_roadbooks.roadbook_id = roadbooks.id").
		Where("favorite_roadbooks.user_id = ?", userID).
		Order("favorite_roadbooks.created_at DESC").
		Find(&roadbooks).Error
	return roadbooks, err
}
