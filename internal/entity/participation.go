package entity

import "time"

// Participation records that a user has joined a quest. Joining is one-way;
// rows are never deleted.
type Participation struct {
	QuestID int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID  string `gorm:"primaryKey"`
	User    User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
