package migration

import (
	"context"
	"errors"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Migrate brings the database to the current schema version and seeds the
// ledger state row with the bootstrap admin. Seeding only happens when the
// row does not exist yet; a later UpdateAdmin is never overwritten.
func Migrate(ctx context.Context, adminUserID string) error {
	if err := migrate0000(ctx); err != nil {
		return err
	}

	return seedLedgerState(ctx, adminUserID)
}

func seedLedgerState(ctx context.Context, adminUserID string) error {
	var state entity.LedgerState
	err := xcontext.DB(ctx).Where("id=?", entity.LedgerStateID).Take(&state).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return xcontext.DB(ctx).Create(&entity.LedgerState{
		ID:          entity.LedgerStateID,
		AdminUserID: adminUserID,
	}).Error
}
