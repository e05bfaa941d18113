package repository

import (
	"context"
	"errors"

	"roadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipRepository struct {
	db *gorm.DB
}

type TipRepositoryInterface interface {
	Create(ctx context.Context, tip *model.Tip) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tip, error)
	ListForPlace(ctx context.Context, placeID uuid.UUID) ([]model.Tip, error)
	Vote(ctx context.Context, tipID, userID uuid.UUID, voteType model.VoteType) error
	RemoveVote(ctx context.Context, tipID, userID uuid.UUID) error
}

var _ TipRepositoryInterface = (*TipRepository)(nil)

func NewTipRepository(db *gorm.DB) *TipRepository {
	return &TipRepository{db: db}
}

func (r *TipRepository) Create(ctx context.Context, tip *model.Tip) error {
	return r.db.WithContext(ctx).Create(tip).Error
}

func (r *TipRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tip, error) {
	var tip model.Tip
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

func (r *TipRepository) ListForPlace(ctx context.Context, placeID uuid.UUID) ([]model.Tip, error) {
	var tips []model.Tip
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("up_votes - down_votes DESC, created_at DESC").
		Find(&tips).Error
	return tips, err
}

// Vote records the user's vote on a tip and keeps the tip's counters in sync.
// A second vote by the same user replaces the first.
func (r *TipRepository) Vote(ctx context.Context, tipID, userID uuid.UUID, voteType model.VoteType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TipVote
		err := tx.Where("tip_id = ? AND user_id = ?", tipID, userID).First(&existing).Error
		if err == nil {
			if existing.VoteType == voteType {
				return nil
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := adjustVoteCount(tx, tipID, existing.VoteType, -1); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := model.TipVote{TipID: tipID, UserID: userID, VoteType: voteType}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return adjustVoteCount(tx, tipID, voteType, 1)
	})
}

func (r *TipRepository) RemoveVote(ctx context.Context, tipID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TipVote
		err := tx.Where("tip_id = ? AND user_id = ?", tipID, userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		return adjustVoteCount(tx, tipID, existing.VoteType, -1)
	})
}

func adjustVoteCount(tx *gorm.DB, tipID uuid.UUID, voteType model.VoteType, delta int) error {
	column := "up_votes"
	if voteType == model.VoteDown {
		column = "down_votes"
	}
	return tx.Model(&model.Tip{}).
		Where("id = ?", tipID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
