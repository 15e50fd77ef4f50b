package domain

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/pubsub"
	"github.com/birdsofspace/spacebirdz-backend/pkg/testutil"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestRewardDomain(vault *testutil.MockVaultCaller, publisher *testutil.MockPublisher) *rewardDomain {
	if vault == nil {
		vault = &testutil.MockVaultCaller{Balance: 1_000_000}
	}
	if publisher == nil {
		publisher = &testutil.MockPublisher{}
	}

	return NewRewardDomain(
		repository.NewRewardRepository(),
		repository.NewUserRepository(),
		repository.NewLedgerStateRepository(),
		vault,
		publisher,
	)
}

func creditReward(t *testing.T, ctx context.Context, userID string, amount uint64) {
	t.Helper()
	require.NoError(t, repository.NewRewardRepository().AddPendingReward(ctx, userID, amount))
}

func Test_rewardDomain_RequestWithdrawal(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	creditReward(t, ctx, testutil.User1.ID, 250)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(250), resp.Amount)

	balance, err := repository.NewRewardRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.PendingReward)
	require.Equal(t, uint64(250), balance.PendingWithdrawal)

	// The reward bucket is empty now, so a second request fails.
	_, err = domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.Equal(t, errorx.New(errorx.NothingToWithdraw, "You have nothing to withdraw"), err)
}

func Test_rewardDomain_RequestWithdrawal_noBalance(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	_, err := domain.RequestWithdrawal(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.RequestWithdrawalRequest{},
	)
	require.Equal(t, errorx.New(errorx.NothingToWithdraw, "You have nothing to withdraw"), err)
}

// A request re-entering itself is rejected instead of queued. The inner
// request runs from the publisher callback, which fires inside the guarded
// section and inherits the marked context.
func Test_rewardDomain_RequestWithdrawal_reentry(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var domain *rewardDomain
	var innerErr error
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			_, innerErr = domain.RequestWithdrawal(ctx, &model.RequestWithdrawalRequest{})
			return nil
		},
	}
	domain = newTestRewardDomain(nil, publisher)

	creditReward(t, ctx, testutil.User1.ID, 100)

	resp, err := domain.RequestWithdrawal(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.RequestWithdrawalRequest{},
	)
	require.NoError(t, err)
	require.Equal(t, uint64(100), resp.Amount)
	require.Equal(t,
		errorx.New(errorx.ReentrancyDetected, "Not allow to re-enter the withdrawal request"),
		innerErr)

	// The mark died with the request's context, so the user can withdraw again
	// after a new credit.
	creditReward(t, ctx, testutil.User1.ID, 40)
	resp, err = domain.RequestWithdrawal(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.RequestWithdrawalRequest{},
	)
	require.NoError(t, err)
	require.Equal(t, uint64(40), resp.Amount)
}

func Test_rewardDomain_RequestWithdrawal_concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	creditReward(t, ctx, testutil.User1.ID, 500)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	var success int64
	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			if _, err := domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{}); err == nil {
				atomic.AddInt64(&success, 1)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	// Exactly one request drains the bucket, the rest fail.
	require.Equal(t, int64(1), success)

	balance, err := repository.NewRewardRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.PendingReward)
	require.Equal(t, uint64(500), balance.PendingWithdrawal)
}

func Test_rewardDomain_ApproveWithdrawal(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	vault := &testutil.MockVaultCaller{Balance: 10_000}
	domain := newTestRewardDomain(vault, nil)

	creditReward(t, ctx, testutil.User1.ID, 300)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)

	resp, err := domain.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       testutil.User1.ID,
		TokenAddress: "0xT0KEN",
	})
	require.NoError(t, err)
	require.Equal(t, uint64(300), resp.Amount)

	require.Len(t, vault.Payouts, 1)
	require.Equal(t, testutil.User1.WalletAddress, vault.Payouts[0].ToAddress)
	require.Equal(t, uint64(300), vault.Payouts[0].Amount)
}

// Approval must leave nothing behind in the withdrawal bucket; otherwise the
// same balance could be paid out again on every later approval.
func Test_rewardDomain_ApproveWithdrawal_ClearsPendingWithdrawal(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	vault := &testutil.MockVaultCaller{Balance: 10_000}
	domain := newTestRewardDomain(vault, nil)

	creditReward(t, ctx, testutil.User1.ID, 300)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)

	_, err = domain.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       testutil.User1.ID,
		TokenAddress: "0xT0KEN",
	})
	require.NoError(t, err)

	balance, err := repository.NewRewardRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.PendingWithdrawal)

	// A second approval pays out nothing.
	resp, err := domain.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       testutil.User1.ID,
		TokenAddress: "0xT0KEN",
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Amount)
	require.Len(t, vault.Payouts, 1)
}

func Test_rewardDomain_ApproveWithdrawal_insufficientVault(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// The vault must hold strictly more than the payout.
	vault := &testutil.MockVaultCaller{Balance: 300}
	domain := newTestRewardDomain(vault, nil)

	creditReward(t, ctx, testutil.User1.ID, 300)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)

	_, err = domain.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       testutil.User1.ID,
		TokenAddress: "0xT0KEN",
	})
	require.Equal(t, errorx.New(errorx.InsufficientBalance, "The vault does not hold enough tokens"), err)

	// Nothing moved and nothing was paid.
	balance, err := repository.NewRewardRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(300), balance.PendingWithdrawal)
	require.Empty(t, vault.Payouts)
}

func Test_rewardDomain_ApproveWithdrawal_errors(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	_, err := domain.ApproveWithdrawal(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.ApproveWithdrawalRequest{UserID: testutil.User1.ID, TokenAddress: "0xT0KEN"},
	)
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err = domain.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       "nobody",
		TokenAddress: "0xT0KEN",
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)

	creditReward(t, ctx, testutil.User3.ID, 100)
	_, err = domain.RequestWithdrawal(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.RequestWithdrawalRequest{},
	)
	require.NoError(t, err)

	_, err = domain.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       testutil.User3.ID,
		TokenAddress: "0xT0KEN",
	})
	require.Equal(t, errorx.New(errorx.Unavailable, "User has no wallet address"), err)
}

func Test_rewardDomain_RejectWithdrawal(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	creditReward(t, ctx, testutil.User1.ID, 120)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)

	resp, err := domain.RejectWithdrawal(adminCtx, &model.RejectWithdrawalRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(120), resp.Amount)

	// Rejection moves the amount back, so it can be requested again.
	balance, err := repository.NewRewardRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(120), balance.PendingReward)
	require.Equal(t, uint64(0), balance.PendingWithdrawal)

	_, err = domain.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)
}

func Test_rewardDomain_RejectWithdrawal_errors(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	_, err := domain.RejectWithdrawal(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.RejectWithdrawalRequest{UserID: testutil.User1.ID},
	)
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err = domain.RejectWithdrawal(adminCtx, &model.RejectWithdrawalRequest{UserID: testutil.User1.ID})
	require.Equal(t, errorx.New(errorx.NothingToReject, "User has nothing to reject"), err)

	creditReward(t, ctx, testutil.User1.ID, 50)
	_, err = domain.RejectWithdrawal(adminCtx, &model.RejectWithdrawalRequest{UserID: testutil.User1.ID})
	require.Equal(t, errorx.New(errorx.NothingToReject, "User has nothing to reject"), err)
}

func Test_rewardDomain_GetMyRewards(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	// A user without any credited reward reads zeros.
	resp, err := domain.GetMyRewards(userCtx, &model.GetMyRewardsRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.PendingReward)
	require.Equal(t, uint64(0), resp.PendingWithdrawal)

	creditReward(t, ctx, testutil.User1.ID, 80)

	resp, err = domain.GetMyRewards(userCtx, &model.GetMyRewardsRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(80), resp.PendingReward)
}

func Test_rewardDomain_GetBalance(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain(nil, nil)

	creditReward(t, ctx, testutil.User2.ID, 60)

	_, err := domain.GetBalance(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.GetBalanceRequest{UserID: testutil.User2.ID},
	)
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	resp, err := domain.GetBalance(
		xcontext.WithRequestUserID(ctx, testutil.Admin.ID),
		&model.GetBalanceRequest{UserID: testutil.User2.ID},
	)
	require.NoError(t, err)
	require.Equal(t, uint64(60), resp.PendingReward)
}

// The full lifecycle of a reward: complete a quest, request the payout, have
// the admin approve it, and verify both buckets end at zero with exactly one
// vault transfer.
func Test_rewardDomain_pipeline(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.SampleQuest(ctx, &entity.Quest{QuestID: 1, TokenReward: 500})

	vault := &testutil.MockVaultCaller{Balance: 501}
	publisher := &testutil.MockPublisher{}
	rewards := newTestRewardDomain(vault, publisher)
	participations := newTestParticipationDomain()

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := participations.Participate(userCtx, &model.ParticipateInQuestRequest{QuestID: 1})
	require.NoError(t, err)

	completeResp, err := participations.Complete(userCtx, &model.CompleteQuestRequest{QuestID: 1})
	require.NoError(t, err)
	require.Equal(t, uint64(500), completeResp.TokenReward)

	requestResp, err := rewards.RequestWithdrawal(userCtx, &model.RequestWithdrawalRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(500), requestResp.Amount)

	approveResp, err := rewards.ApproveWithdrawal(adminCtx, &model.ApproveWithdrawalRequest{
		UserID:       testutil.User1.ID,
		TokenAddress: "0xT0KEN",
	})
	require.NoError(t, err)
	require.Equal(t, uint64(500), approveResp.Amount)

	balance, err := repository.NewRewardRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.PendingReward)
	require.Equal(t, uint64(0), balance.PendingWithdrawal)

	require.Len(t, vault.Payouts, 1)
	require.Equal(t, uint64(1), vault.Balance)

	// Two reward events were published along the way.
	require.Len(t, publisher.Published(), 2)
}
