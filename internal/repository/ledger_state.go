package repository

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LedgerStateRepository interface {
	Get(ctx context.Context) (*entity.LedgerState, error)
	Lock(ctx context.Context) error
	UpdateAdmin(ctx context.Context, newAdminID string) error
}

type ledgerStateRepository struct{}

func NewLedgerStateRepository() *ledgerStateRepository {
	return &ledgerStateRepository{}
}

func (r *ledgerStateRepository) Get(ctx context.Context) (*entity.LedgerState, error) {
	var result entity.LedgerState
	err := xcontext.DB(ctx).Where("id=?", entity.LedgerStateID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Lock takes the write lock on the state row for the remainder of the current
// transaction. Admin writes that must not interleave take it before reading.
// The self-assigning update locks the row on every engine, unlike a locking
// read clause which not every engine parses.
func (r *ledgerStateRepository) Lock(ctx context.Context) error {
	return xcontext.DB(ctx).
		Model(&entity.LedgerState{}).
		Where("id=?", entity.LedgerStateID).
		Update("admin_user_id", gorm.Expr("admin_user_id")).Error
}

func (r *ledgerStateRepository) UpdateAdmin(ctx context.Context, newAdminID string) error {
	return xcontext.DB(ctx).
		Model(&entity.LedgerState{}).
		Where("id=?", entity.LedgerStateID).
		Update("admin_user_id", newAdminID).Error
}
