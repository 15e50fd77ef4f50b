package domain

import (
	"context"
	"errors"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ParticipationDomain interface {
	Participate(context.Context, *model.ParticipateInQuestRequest) (*model.ParticipateInQuestResponse, error)
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
}

type participationDomain struct {
	questRepo         repository.QuestRepository
	participationRepo repository.ParticipationRepository
	userQuestRepo     repository.UserQuestRepository
	rewardRepo        repository.RewardRepository
}

func NewParticipationDomain(
	questRepo repository.QuestRepository,
	participationRepo repository.ParticipationRepository,
	userQuestRepo repository.UserQuestRepository,
	rewardRepo repository.RewardRepository,
) *participationDomain {
	return &participationDomain{
		questRepo:         questRepo,
		participationRepo: participationRepo,
		userQuestRepo:     userQuestRepo,
		rewardRepo:        rewardRepo,
	}
}

func (d *participationDomain) Participate(
	ctx context.Context, req *model.ParticipateInQuestRequest,
) (*model.ParticipateInQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.QuestInactive, "Only allow to join active quests")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the quest: %v", err)
		return nil, errorx.Unknown
	}

	if !quest.IsActive {
		return nil, errorx.New(errorx.QuestInactive, "Only allow to join active quests")
	}

	_, err = d.participationRepo.Get(ctx, userID, req.QuestID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have already joined this quest")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the participation: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.participationRepo.Create(ctx, &entity.Participation{
		QuestID: req.QuestID,
		UserID:  userID,
	})
	if err != nil {
		// A join racing past the check above loses on the primary key here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You have already joined this quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot create the participation: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.IncreaseParticipantCount(ctx, req.QuestID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase the participant count: %v", err)
		return nil, errorx.Unknown
	}

	// Joining re-initializes the tracking record, clearing any stale state a
	// previous write left behind.
	err = d.userQuestRepo.Upsert(ctx, &entity.UserQuest{
		UserID:         userID,
		QuestID:        req.QuestID,
		IsCompleted:    false,
		CompletionTime: time.Time{},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot initialize the user quest: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ParticipateInQuestResponse{}, nil
}

// Complete marks the caller's quest as completed and credits the quest reward
// to the pending bucket. Completion deliberately does not require a prior
// join: a caller who never participated still completes, mirroring the
// original ledger. A quest id that was never created yields a zero reward.
func (d *participationDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	now := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	userQuest, err := d.userQuestRepo.Get(ctx, userID, req.QuestID)
	switch {
	case err == nil:
		if userQuest.IsCompleted {
			return nil, errorx.New(errorx.AlreadyExists, "You have already completed this quest")
		}

		err := d.userQuestRepo.SetCompleted(ctx, userID, req.QuestID, now)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.AlreadyExists, "You have already completed this quest")
			}

			xcontext.Logger(ctx).Errorf("Cannot complete the user quest: %v", err)
			return nil, errorx.Unknown
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		err := d.userQuestRepo.Create(ctx, &entity.UserQuest{
			UserID:         userID,
			QuestID:        req.QuestID,
			IsCompleted:    true,
			CompletionTime: now,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errorx.New(errorx.AlreadyExists, "You have already completed this quest")
			}

			xcontext.Logger(ctx).Errorf("Cannot create the user quest: %v", err)
			return nil, errorx.Unknown
		}

	default:
		xcontext.Logger(ctx).Errorf("Cannot get the user quest: %v", err)
		return nil, errorx.Unknown
	}

	var tokenReward uint64
	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err == nil {
		tokenReward = quest.TokenReward
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.rewardRepo.AddPendingReward(ctx, userID, tokenReward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit the reward: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CompleteQuestResponse{TokenReward: tokenReward}, nil
}
