package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ReentrancyGuard(t *testing.T) {
	guard := NewReentrancyGuard()

	entered, err := guard.Enter(context.Background())
	require.NoError(t, err)

	// A nested call sees the mark through the derived context.
	_, err = guard.Enter(entered)
	require.ErrorIs(t, err, ErrReentry)

	type innerKey struct{}
	_, err = guard.Enter(context.WithValue(entered, innerKey{}, "v"))
	require.ErrorIs(t, err, ErrReentry)
}

// The guard only latches the operation that entered it. Another caller with
// its own context enters freely even while the first section is still open.
func Test_ReentrancyGuard_independentContexts(t *testing.T) {
	guard := NewReentrancyGuard()

	_, err := guard.Enter(context.Background())
	require.NoError(t, err)

	other, err := guard.Enter(context.Background())
	require.NoError(t, err)
	require.NotNil(t, other)
}
