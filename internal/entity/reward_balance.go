package entity

import "time"

// RewardBalance holds the two per-user credit buckets. Credits only move
// between the buckets or out through an approved payout; they are created
// only by quest completion.
type RewardBalance struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	PendingReward     uint64
	PendingWithdrawal uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}
