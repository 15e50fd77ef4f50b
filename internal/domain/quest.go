package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/internal/common"
	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/pubsub"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xredis"
	"gorm.io/gorm"
)

type QuestDomain interface {
	AddOrUpdate(context.Context, *model.AddOrUpdateQuestRequest) (*model.AddOrUpdateQuestResponse, error)
	SetStatus(context.Context, *model.SetQuestStatusRequest) (*model.SetQuestStatusResponse, error)
	GetTotal(context.Context, *model.GetTotalQuestRequest) (*model.GetTotalQuestResponse, error)
	GetActive(context.Context, *model.GetQuestsRequest) (*model.GetQuestsResponse, error)
	GetInactive(context.Context, *model.GetQuestsRequest) (*model.GetQuestsResponse, error)
}

type questDomain struct {
	questRepo       repository.QuestRepository
	ledgerStateRepo repository.LedgerStateRepository
	adminVerifier   *common.AdminVerifier
	redisClient     xredis.Client
	publisher       pubsub.Publisher
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	ledgerStateRepo repository.LedgerStateRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) *questDomain {
	return &questDomain{
		questRepo:       questRepo,
		ledgerStateRepo: ledgerStateRepo,
		adminVerifier:   common.NewAdminVerifier(ledgerStateRepo),
		redisClient:     redisClient,
		publisher:       publisher,
	}
}

func questListRedisKey(isActive bool) string {
	return fmt.Sprintf("quests:list:%t", isActive)
}

func (d *questDomain) AddOrUpdate(
	ctx context.Context, req *model.AddOrUpdateQuestRequest,
) (*model.AddOrUpdateQuestResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.QuestID <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Quest id must be a positive number")
	}

	now := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Quest writes serialize on the state row, so the quota count below never
	// runs against a snapshot another in-flight quest write is about to
	// invalidate.
	if err := d.ledgerStateRepo.Lock(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock the ledger state: %v", err)
		return nil, errorx.Unknown
	}

	// The quota scan runs before our own write and only considers ids
	// strictly below the highest id created so far, matching the original
	// ledger behavior. Re-creating the current max id or introducing a new
	// max therefore never counts itself.
	maxQuestID, err := d.questRepo.MaxQuestID(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the max quest id: %v", err)
		return nil, errorx.Unknown
	}

	sameDay, err := d.questRepo.CountCreatedInDayBelow(ctx, now, maxQuestID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count same-day quests: %v", err)
		return nil, errorx.Unknown
	}

	maxPerDay := xcontext.Configs(ctx).Quest.MaxQuestsPerDay
	if sameDay >= int64(maxPerDay) {
		return nil, errorx.New(errorx.QuotaExceeded,
			"Admin has created %d quests today", maxPerDay)
	}

	quest := &entity.Quest{
		QuestID:          req.QuestID,
		Description:      req.Description,
		TokenReward:      req.TokenReward,
		ParticipantCount: 0,
		IsActive:         req.IsActive,
		CreatedAt:        now,
	}

	if err := d.questRepo.Upsert(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the quest: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateListCache(ctx)

	clientQuest := convertQuest(quest)
	common.PublishEvent(ctx, d.publisher, model.QuestCreatedEvent,
		fmt.Sprintf("%d", quest.QuestID),
		model.QuestCreatedEventData{
			QuestID:     clientQuest.QuestID,
			Description: clientQuest.Description,
			TokenReward: clientQuest.TokenReward,
			IsActive:    clientQuest.IsActive,
			CreatedAt:   clientQuest.CreatedAt,
		})

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AddOrUpdateQuestResponse{Quest: clientQuest}, nil
}

func (d *questDomain) SetStatus(
	ctx context.Context, req *model.SetQuestStatusRequest,
) (*model.SetQuestStatusResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	_, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest %d", req.QuestID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get the quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.UpdateStatus(ctx, req.QuestID, req.IsActive); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the quest status: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateListCache(ctx)
	return &model.SetQuestStatusResponse{}, nil
}

func (d *questDomain) GetTotal(
	ctx context.Context, req *model.GetTotalQuestRequest,
) (*model.GetTotalQuestResponse, error) {
	total, err := d.questRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count quests: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTotalQuestResponse{Total: total}, nil
}

func (d *questDomain) GetActive(
	ctx context.Context, req *model.GetQuestsRequest,
) (*model.GetQuestsResponse, error) {
	return d.getList(ctx, true)
}

func (d *questDomain) GetInactive(
	ctx context.Context, req *model.GetQuestsRequest,
) (*model.GetQuestsResponse, error) {
	return d.getList(ctx, false)
}

func (d *questDomain) getList(ctx context.Context, isActive bool) (*model.GetQuestsResponse, error) {
	var cached []model.Quest
	if err := d.redisClient.GetObj(ctx, questListRedisKey(isActive), &cached); err == nil {
		return &model.GetQuestsResponse{Quests: cached}, nil
	}

	quests, err := d.questRepo.GetList(ctx, isActive)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the quest list: %v", err)
		return nil, errorx.Unknown
	}

	clientQuests := []model.Quest{}
	for i := range quests {
		clientQuests = append(clientQuests, convertQuest(&quests[i]))
	}

	ttl := xcontext.Configs(ctx).Quest.ListCacheTTL
	if err := d.redisClient.SetObj(ctx, questListRedisKey(isActive), clientQuests, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache the quest list: %v", err)
	}

	return &model.GetQuestsResponse{Quests: clientQuests}, nil
}

func (d *questDomain) invalidateListCache(ctx context.Context) {
	err := d.redisClient.Del(ctx, questListRedisKey(true), questListRedisKey(false))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate the quest list cache: %v", err)
	}
}
