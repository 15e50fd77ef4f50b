package entity

import "time"

const LedgerStateID = 1

// LedgerState is a single-row table holding ledger-wide state, currently only
// the admin identity. The row is seeded at migration time.
type LedgerState struct {
	ID          int `gorm:"primaryKey;autoIncrement:false"`
	AdminUserID string

	UpdatedAt time.Time
}
