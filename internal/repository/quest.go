package repository

import (
	"context"
	"errors"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/pkg/dateutil"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestRepository interface {
	Upsert(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, questID int64) (*entity.Quest, error)
	MaxQuestID(ctx context.Context) (int64, error)
	CountCreatedInDayBelow(ctx context.Context, at time.Time, bound int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	GetList(ctx context.Context, isActive bool) ([]entity.Quest, error)
	IncreaseParticipantCount(ctx context.Context, questID int64) error
	UpdateStatus(ctx context.Context, questID int64, isActive bool) error
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

// Upsert writes the quest at its id, overwriting every field of an existing
// row in place.
func (r *questRepository) Upsert(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quest_id"}},
			UpdateAll: true,
		}).
		Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, questID int64) (*entity.Quest, error) {
	var result entity.Quest
	err := xcontext.DB(ctx).Where("quest_id=?", questID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// MaxQuestID returns the highest quest id ever created, or zero when no quest
// exists. Quests are never deleted, so this is the same value the source
// tracked as finalQuest.
func (r *questRepository) MaxQuestID(ctx context.Context) (int64, error) {
	var maxID int64
	err := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Select("COALESCE(MAX(quest_id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}

	return maxID, nil
}

// CountCreatedInDayBelow counts quests created on the same calendar day as at,
// considering only ids strictly below bound. The caller passes the max id
// taken before its own write, which preserves the scan range of the source
// quota check.
func (r *questRepository) CountCreatedInDayBelow(
	ctx context.Context, at time.Time, bound int64,
) (int64, error) {
	dayStart, dayEnd := dateutil.DayBounds(at)

	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("quest_id < ?", bound).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *questRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("quest_id >= 1").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *questRepository) GetList(ctx context.Context, isActive bool) ([]entity.Quest, error) {
	var result []entity.Quest
	err := xcontext.DB(ctx).
		Where("is_active=?", isActive).
		Order("quest_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) IncreaseParticipantCount(ctx context.Context, questID int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("quest_id=?", questID).
		Update("participant_count", gorm.Expr("participant_count+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateStatus flips is_active and nothing else. Existence is checked by the
// caller; RowsAffected is unreliable here because MySQL reports zero when the
// value does not change.
func (r *questRepository) UpdateStatus(ctx context.Context, questID int64, isActive bool) error {
	return xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("quest_id=?", questID).
		Update("is_active", isActive).Error
}
