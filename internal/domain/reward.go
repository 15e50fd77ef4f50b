package domain

import (
	"context"
	"errors"

	"github.com/birdsofspace/spacebirdz-backend/internal/client"
	"github.com/birdsofspace/spacebirdz-backend/internal/common"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/pubsub"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	RequestWithdrawal(context.Context, *model.RequestWithdrawalRequest) (*model.RequestWithdrawalResponse, error)
	ApproveWithdrawal(context.Context, *model.ApproveWithdrawalRequest) (*model.ApproveWithdrawalResponse, error)
	RejectWithdrawal(context.Context, *model.RejectWithdrawalRequest) (*model.RejectWithdrawalResponse, error)
	GetMyRewards(context.Context, *model.GetMyRewardsRequest) (*model.GetMyRewardsResponse, error)
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
}

type rewardDomain struct {
	rewardRepo    repository.RewardRepository
	userRepo      repository.UserRepository
	adminVerifier *common.AdminVerifier
	guard         *common.ReentrancyGuard
	vaultCaller   client.VaultCaller
	publisher     pubsub.Publisher
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
	ledgerStateRepo repository.LedgerStateRepository,
	vaultCaller client.VaultCaller,
	publisher pubsub.Publisher,
) *rewardDomain {
	return &rewardDomain{
		rewardRepo:    rewardRepo,
		userRepo:      userRepo,
		adminVerifier: common.NewAdminVerifier(ledgerStateRepo),
		guard:         common.NewReentrancyGuard(),
		vaultCaller:   vaultCaller,
		publisher:     publisher,
	}
}

// RequestWithdrawal moves the caller's full pending reward into the
// withdrawal bucket. The whole operation runs under the reentrancy guard;
// only this operation is guarded, approval and rejection are serialized by
// admin gating and conditional updates instead. The guard mark travels with
// the context, so only a nested call through this request is refused.
func (d *rewardDomain) RequestWithdrawal(
	ctx context.Context, req *model.RequestWithdrawalRequest,
) (*model.RequestWithdrawalResponse, error) {
	ctx, err := d.guard.Enter(ctx)
	if err != nil {
		return nil, errorx.New(errorx.ReentrancyDetected, "Not allow to re-enter the withdrawal request")
	}

	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	balance, err := d.rewardRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NothingToWithdraw, "You have nothing to withdraw")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the reward balance: %v", err)
		return nil, errorx.Unknown
	}

	amount := balance.PendingReward
	if amount == 0 {
		return nil, errorx.New(errorx.NothingToWithdraw, "You have nothing to withdraw")
	}

	if err := d.rewardRepo.MoveToWithdrawal(ctx, userID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NothingToWithdraw, "You have nothing to withdraw")
		}

		xcontext.Logger(ctx).Errorf("Cannot move the reward to withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishEvent(ctx, d.publisher, model.WithdrawalRequestedEvent, userID,
		model.WithdrawalEventData{UserID: userID, Amount: amount})

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RequestWithdrawalResponse{Amount: amount}, nil
}

// ApproveWithdrawal pays out the user's withdrawal bucket through the vault
// and zeroes the bucket in the same transaction. The original ledger never
// cleared the bucket, which allowed the same balance to be paid out again on
// every approval; that defect is corrected here on purpose.
func (d *rewardDomain) ApproveWithdrawal(
	ctx context.Context, req *model.ApproveWithdrawalRequest,
) (*model.ApproveWithdrawalResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var amount uint64
	balance, err := d.rewardRepo.Get(ctx, req.UserID)
	if err == nil {
		amount = balance.PendingWithdrawal
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the reward balance: %v", err)
		return nil, errorx.Unknown
	}

	vaultBalance, err := d.vaultCaller.BalanceOf(ctx, req.TokenAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the vault balance: %v", err)
		return nil, errorx.Unknown
	}

	if vaultBalance <= amount {
		return nil, errorx.New(errorx.InsufficientBalance, "The vault does not hold enough tokens")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if user.WalletAddress == "" {
		return nil, errorx.New(errorx.Unavailable, "User has no wallet address")
	}

	if err := d.vaultCaller.Transfer(ctx, req.TokenAddress, user.WalletAddress, amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot transfer the payout: %v", err)
		return nil, errorx.Unknown
	}

	if amount > 0 {
		if err := d.rewardRepo.ClearWithdrawal(ctx, req.UserID, amount); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot clear the withdrawal: %v", err)
			return nil, errorx.Unknown
		}
	}

	common.PublishEvent(ctx, d.publisher, model.WithdrawalApprovedEvent, req.UserID,
		model.WithdrawalEventData{UserID: req.UserID, Amount: amount})

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ApproveWithdrawalResponse{Amount: amount}, nil
}

func (d *rewardDomain) RejectWithdrawal(
	ctx context.Context, req *model.RejectWithdrawalRequest,
) (*model.RejectWithdrawalResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	balance, err := d.rewardRepo.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NothingToReject, "User has nothing to reject")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the reward balance: %v", err)
		return nil, errorx.Unknown
	}

	amount := balance.PendingWithdrawal
	if amount == 0 {
		return nil, errorx.New(errorx.NothingToReject, "User has nothing to reject")
	}

	if err := d.rewardRepo.MoveToReward(ctx, req.UserID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NothingToReject, "User has nothing to reject")
		}

		xcontext.Logger(ctx).Errorf("Cannot move the withdrawal back: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishEvent(ctx, d.publisher, model.WithdrawalRejectedEvent, req.UserID,
		model.WithdrawalEventData{UserID: req.UserID, Amount: amount})

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RejectWithdrawalResponse{Amount: amount}, nil
}

func (d *rewardDomain) GetMyRewards(
	ctx context.Context, req *model.GetMyRewardsRequest,
) (*model.GetMyRewardsResponse, error) {
	balance, err := d.rewardRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetMyRewardsResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get the reward balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyRewardsResponse{
		PendingReward:     balance.PendingReward,
		PendingWithdrawal: balance.PendingWithdrawal,
	}, nil
}

func (d *rewardDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	balance, err := d.rewardRepo.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetBalanceResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get the reward balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBalanceResponse{
		PendingReward:     balance.PendingReward,
		PendingWithdrawal: balance.PendingWithdrawal,
	}, nil
}
