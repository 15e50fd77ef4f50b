package entity

import "time"

// UserQuest tracks the completion state of one user on one quest. IsCompleted
// only ever transitions false to true; CompletionTime is set exactly once.
type UserQuest struct {
	UserID  string `gorm:"primaryKey"`
	User    User   `gorm:"foreignKey:UserID"`
	QuestID int64  `gorm:"primaryKey;autoIncrement:false"`

	IsCompleted    bool
	CompletionTime time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
