package xcontext_test

import (
	"testing"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/testutil"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithDBTransaction_commit(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	txCtx := xcontext.WithDBTransaction(ctx)
	require.NoError(t, userRepo.Create(txCtx, &entity.User{
		Base: entity.Base{ID: "tx-user"},
		Name: "tx-user",
	}))
	xcontext.WithCommitDBTransaction(txCtx)

	// The deferred rollback runs after the commit on every domain operation.
	// It must be a no-op and leave the committed write in place.
	xcontext.WithRollbackDBTransaction(txCtx)

	user, err := userRepo.GetByID(ctx, "tx-user")
	require.NoError(t, err)
	require.Equal(t, "tx-user", user.Name)

	// The transaction is finalized, reads through its context fall back to
	// the root handle.
	_, err = userRepo.GetByID(txCtx, "tx-user")
	require.NoError(t, err)
}

func TestWithDBTransaction_rollback(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	txCtx := xcontext.WithDBTransaction(ctx)
	require.NoError(t, userRepo.Create(txCtx, &entity.User{
		Base: entity.Base{ID: "tx-user"},
		Name: "tx-user",
	}))
	xcontext.WithRollbackDBTransaction(txCtx)
	xcontext.WithRollbackDBTransaction(txCtx)

	_, err := userRepo.GetByID(ctx, "tx-user")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
