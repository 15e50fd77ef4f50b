package testutil

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/internal/entity"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

var (
	Admin = entity.User{
		Base:          entity.Base{ID: "admin"},
		Name:          "Admin",
		WalletAddress: "0xA11CE0000000000000000000000000000000AD31",
	}

	User1 = entity.User{
		Base:          entity.Base{ID: "user1"},
		Name:          "User1",
		WalletAddress: "0x0000000000000000000000000000000000000001",
	}

	User2 = entity.User{
		Base:          entity.Base{ID: "user2"},
		Name:          "User2",
		WalletAddress: "0x0000000000000000000000000000000000000002",
	}

	// User3 has no wallet address on purpose.
	User3 = entity.User{
		Base: entity.Base{ID: "user3"},
		Name: "User3",
	}
)

// CreateFixtureDb seeds the context database with the fixture users and marks
// Admin as the current ledger admin.
func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertLedgerState(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{Admin, User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func insertLedgerState(ctx context.Context) {
	err := xcontext.DB(ctx).Create(&entity.LedgerState{
		ID:          entity.LedgerStateID,
		AdminUserID: Admin.ID,
	}).Error
	if err != nil {
		panic(err)
	}
}
