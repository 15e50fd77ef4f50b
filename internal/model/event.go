package model

const (
	QuestCreatedEvent        = "quest_created"
	WithdrawalRequestedEvent = "withdrawal_requested"
	WithdrawalApprovedEvent  = "withdrawal_approved"
	WithdrawalRejectedEvent  = "withdrawal_rejected"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type QuestCreatedEventData struct {
	QuestID     int64  `json:"quest_id"`
	Description string `json:"description"`
	TokenReward uint64 `json:"token_reward"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

type WithdrawalEventData struct {
	UserID string `json:"user_id"`
	Amount uint64 `json:"amount"`
}
