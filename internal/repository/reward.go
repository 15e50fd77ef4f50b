package repository

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RewardRepository moves credits between the two per-user buckets. Every move
// is a single conditional UPDATE carrying the amount the caller read earlier
// in the same transaction; zero affected rows means another writer got there
// first and the caller must treat the operation as failed.
type RewardRepository interface {
	Get(ctx context.Context, userID string) (*entity.RewardBalance, error)
	AddPendingReward(ctx context.Context, userID string, amount uint64) error
	MoveToWithdrawal(ctx context.Context, userID string, amount uint64) error
	MoveToReward(ctx context.Context, userID string, amount uint64) error
	ClearWithdrawal(ctx context.Context, userID string, amount uint64) error
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Get(ctx context.Context, userID string) (*entity.RewardBalance, error) {
	var result entity.RewardBalance
	err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) AddPendingReward(ctx context.Context, userID string, amount uint64) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"pending_reward": gorm.Expr("pending_reward+?", amount),
			}),
		}).
		Create(&entity.RewardBalance{
			UserID:        userID,
			PendingReward: amount,
		}).Error
}

func (r *rewardRepository) MoveToWithdrawal(ctx context.Context, userID string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.RewardBalance{}).
		Where("user_id=? AND pending_reward >= ?", userID, amount).
		Updates(map[string]any{
			"pending_reward":     gorm.Expr("pending_reward-?", amount),
			"pending_withdrawal": gorm.Expr("pending_withdrawal+?", amount),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *rewardRepository) MoveToReward(ctx context.Context, userID string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.RewardBalance{}).
		Where("user_id=? AND pending_withdrawal >= ?", userID, amount).
		Updates(map[string]any{
			"pending_withdrawal": gorm.Expr("pending_withdrawal-?", amount),
			"pending_reward":     gorm.Expr("pending_reward+?", amount),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *rewardRepository) ClearWithdrawal(ctx context.Context, userID string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.RewardBalance{}).
		Where("user_id=? AND pending_withdrawal >= ?", userID, amount).
		Update("pending_withdrawal", gorm.Expr("pending_withdrawal-?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
