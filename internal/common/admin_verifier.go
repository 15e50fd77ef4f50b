package common

import (
	"context"
	"fmt"

	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

// AdminVerifier gates administrative operations on the single ledger admin.
// The admin identity lives in the ledger state row, injected here through the
// repository instead of ambient global state.
type AdminVerifier struct {
	ledgerStateRepo repository.LedgerStateRepository
}

func NewAdminVerifier(ledgerStateRepo repository.LedgerStateRepository) *AdminVerifier {
	return &AdminVerifier{ledgerStateRepo: ledgerStateRepo}
}

func (verifier *AdminVerifier) Verify(ctx context.Context) error {
	state, err := verifier.ledgerStateRepo.Get(ctx)
	if err != nil {
		return err
	}

	if xcontext.RequestUserID(ctx) != state.AdminUserID {
		return fmt.Errorf("user is not the ledger admin")
	}

	return nil
}
