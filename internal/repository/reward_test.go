package repository_test

import (
	"testing"

	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_rewardRepository_AddPendingReward(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewRewardRepository()

	// The first credit creates the row, later credits accumulate.
	require.NoError(t, repo.AddPendingReward(ctx, "user1", 100))
	require.NoError(t, repo.AddPendingReward(ctx, "user1", 50))

	balance, err := repo.Get(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(150), balance.PendingReward)
	require.Equal(t, uint64(0), balance.PendingWithdrawal)
}

func Test_rewardRepository_MoveToWithdrawal(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewRewardRepository()

	require.NoError(t, repo.AddPendingReward(ctx, "user1", 100))

	// Moving more than the bucket holds affects no row.
	err := repo.MoveToWithdrawal(ctx, "user1", 101)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.MoveToWithdrawal(ctx, "user1", 100))

	balance, err := repo.Get(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.PendingReward)
	require.Equal(t, uint64(100), balance.PendingWithdrawal)

	// The bucket is empty now, a second move of the same amount fails.
	err = repo.MoveToWithdrawal(ctx, "user1", 100)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// An unknown user never matches.
	err = repo.MoveToWithdrawal(ctx, "ghost", 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_rewardRepository_MoveToReward(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewRewardRepository()

	require.NoError(t, repo.AddPendingReward(ctx, "user1", 80))
	require.NoError(t, repo.MoveToWithdrawal(ctx, "user1", 80))
	require.NoError(t, repo.MoveToReward(ctx, "user1", 80))

	balance, err := repo.Get(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(80), balance.PendingReward)
	require.Equal(t, uint64(0), balance.PendingWithdrawal)

	err = repo.MoveToReward(ctx, "user1", 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_rewardRepository_ClearWithdrawal(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewRewardRepository()

	require.NoError(t, repo.AddPendingReward(ctx, "user1", 60))
	require.NoError(t, repo.MoveToWithdrawal(ctx, "user1", 60))
	require.NoError(t, repo.ClearWithdrawal(ctx, "user1", 60))

	balance, err := repo.Get(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.PendingReward)
	require.Equal(t, uint64(0), balance.PendingWithdrawal)

	err = repo.ClearWithdrawal(ctx, "user1", 60)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
