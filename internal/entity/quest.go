package entity

import "time"

// Quest is keyed by an operator-assigned positive integer id. Ids are never
// reassigned; AddOrUpdate overwrites the row in place and deactivation keeps
// the row, so the table holds every id ever created.
type Quest struct {
	QuestID int64 `gorm:"primaryKey;autoIncrement:false"`

	Description      string `gorm:"type:text"`
	TokenReward      uint64
	ParticipantCount uint64
	IsActive         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
