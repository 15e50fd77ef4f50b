package repository

import (
	"context"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserQuestRepository interface {
	Get(ctx context.Context, userID string, questID int64) (*entity.UserQuest, error)
	Create(ctx context.Context, data *entity.UserQuest) error
	Upsert(ctx context.Context, data *entity.UserQuest) error
	SetCompleted(ctx context.Context, userID string, questID int64, at time.Time) error
}

type userQuestRepository struct{}

func NewUserQuestRepository() *userQuestRepository {
	return &userQuestRepository{}
}

func (r *userQuestRepository) Get(
	ctx context.Context, userID string, questID int64,
) (*entity.UserQuest, error) {
	var result entity.UserQuest
	err := xcontext.DB(ctx).Where("user_id=? AND quest_id=?", userID, questID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Create inserts a fresh tracking record. The composite primary key makes a
// second insert for the same (user, quest) fail, which callers rely on to
// serialize concurrent first completions.
func (r *userQuestRepository) Create(ctx context.Context, data *entity.UserQuest) error {
	return xcontext.DB(ctx).Create(data).Error
}

// Upsert overwrites the tracking record for (user, quest), resetting any
// stale state from a previous write.
func (r *userQuestRepository) Upsert(ctx context.Context, data *entity.UserQuest) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quest_id"}},
			UpdateAll: true,
		}).
		Create(data).Error
}

// SetCompleted marks the record completed. The guard on is_completed makes
// concurrent completions of the same (user, quest) first-writer-wins: the
// loser sees zero affected rows.
func (r *userQuestRepository) SetCompleted(
	ctx context.Context, userID string, questID int64, at time.Time,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserQuest{}).
		Where("user_id=? AND quest_id=? AND is_completed=?", userID, questID, false).
		Updates(map[string]any{
			"is_completed":    true,
			"completion_time": at,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
