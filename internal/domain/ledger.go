package domain

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/internal/common"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

type LedgerDomain interface {
	UpdateAdmin(context.Context, *model.UpdateAdminRequest) (*model.UpdateAdminResponse, error)
}

type ledgerDomain struct {
	ledgerStateRepo repository.LedgerStateRepository
	adminVerifier   *common.AdminVerifier
}

func NewLedgerDomain(ledgerStateRepo repository.LedgerStateRepository) *ledgerDomain {
	return &ledgerDomain{
		ledgerStateRepo: ledgerStateRepo,
		adminVerifier:   common.NewAdminVerifier(ledgerStateRepo),
	}
}

func (d *ledgerDomain) UpdateAdmin(
	ctx context.Context, req *model.UpdateAdminRequest,
) (*model.UpdateAdminResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.NewAdminID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty admin id")
	}

	if err := d.ledgerStateRepo.UpdateAdmin(ctx, req.NewAdminID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the admin: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateAdminResponse{}, nil
}
