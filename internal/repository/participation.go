package repository

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

type ParticipationRepository interface {
	Get(ctx context.Context, userID string, questID int64) (*entity.Participation, error)
	Create(ctx context.Context, data *entity.Participation) error
}

type participationRepository struct{}

func NewParticipationRepository() *participationRepository {
	return &participationRepository{}
}

func (r *participationRepository) Get(
	ctx context.Context, userID string, questID int64,
) (*entity.Participation, error) {
	var result entity.Participation
	err := xcontext.DB(ctx).Where("user_id=? AND quest_id=?", userID, questID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participationRepository) Create(ctx context.Context, data *entity.Participation) error {
	return xcontext.DB(ctx).Create(data).Error
}
