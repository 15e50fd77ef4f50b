package repository_test

import (
	"testing"

	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/testutil"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_ledgerStateRepository_UpdateAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLedgerStateRepository()

	state, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.Admin.ID, state.AdminUserID)

	require.NoError(t, repo.UpdateAdmin(ctx, testutil.User1.ID))

	state, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, state.AdminUserID)
}

// Lock writes the state row inside the caller's transaction, which holds its
// write lock until commit. It must not change what the row says.
func Test_ledgerStateRepository_Lock(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLedgerStateRepository()

	txCtx := xcontext.WithDBTransaction(ctx)
	require.NoError(t, repo.Lock(txCtx))
	require.NoError(t, repo.Lock(txCtx))
	xcontext.WithCommitDBTransaction(txCtx)

	state, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.Admin.ID, state.AdminUserID)
}
