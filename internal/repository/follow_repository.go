package repository

import (
	"context"
	"errors"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAlreadyFollowing is returned when the follow relation already exists.
var ErrAlreadyFollowing = errors.New("already following")

type FollowRepository struct {
	db *gorm.DB
}

type FollowRepositoryInterface interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) ([]model.User, error)
	Following(ctx context.Context, userID uuid.UUID) ([]model.User, error)
}

var _ FollowRepositoryInterface = (*FollowRepository)(nil)

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyFollowing
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&model.Follow{FollowerID: followerID, FollowingID: followingID}).Error
	})
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

func (r *FollowRepository) Followers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *FollowRepository) Following(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}
