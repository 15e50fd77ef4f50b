package entity

import (
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	Version   string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// MigrateTable creates every table of the current schema version. Tests use
// it directly against an in-memory database.
func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Quest{},
		&Participation{},
		&UserQuest{},
		&RewardBalance{},
		&LedgerState{},
		&Migration{},
	)
}
