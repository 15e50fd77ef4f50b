package model

type Quest struct {
	QuestID          int64  `json:"quest_id"`
	Description      string `json:"description"`
	TokenReward      uint64 `json:"token_reward"`
	ParticipantCount uint64 `json:"participant_count"`
	IsActive         bool   `json:"is_active"`
	CreatedAt        string `json:"created_at"`
}

type AddOrUpdateQuestRequest struct {
	QuestID     int64  `json:"quest_id"`
	Description string `json:"description"`
	TokenReward uint64 `json:"token_reward"`
	IsActive    bool   `json:"is_active"`
}

type AddOrUpdateQuestResponse struct {
	Quest Quest `json:"quest"`
}

type SetQuestStatusRequest struct {
	QuestID  int64 `json:"quest_id"`
	IsActive bool  `json:"is_active"`
}

type SetQuestStatusResponse struct{}

type GetTotalQuestRequest struct{}

type GetTotalQuestResponse struct {
	Total int64 `json:"total"`
}

type GetQuestsRequest struct{}

type GetQuestsResponse struct {
	Quests []Quest `json:"quests"`
}
