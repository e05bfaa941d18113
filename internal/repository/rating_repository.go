package repository

import (
	"context"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

type RatingRepositoryInterface interface {
	Create(ctx context.Context, rating *model.PlaceRating) error
	ListForPlace(ctx context.Context, placeID uuid.UUID) ([]model.PlaceRating, error)
}

var _ RatingRepositoryInterface = (*RatingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create stores the rating and recomputes the place's aggregate in the same
// transaction.
func (r *RatingRepository) Create(ctx context.Context, rating *model.PlaceRating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE places SET
			average_rating = (SELECT AVG(overall_rating) FROM place_ratings WHERE place_id = ?),
			rating_count = (SELECT COUNT(*) FROM place_ratings WHERE place_id = ?)
			WHERE id = ?`,
			rating.PlaceID, rating.PlaceID, rating.PlaceID).Error
	})
}

func (r *RatingRepository) ListForPlace(ctx context.Context, placeID uuid.UUID) ([]model.PlaceRating, error) {
	var ratings []model.PlaceRating
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
