package domain

import (
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
)

func convertQuest(quest *entity.Quest) model.Quest {
	return model.Quest{
		QuestID:          quest.QuestID,
		Description:      quest.Description,
		TokenReward:      quest.TokenReward,
		ParticipantCount: quest.ParticipantCount,
		IsActive:         quest.IsActive,
		CreatedAt:        quest.CreatedAt.Format(time.RFC3339),
	}
}
