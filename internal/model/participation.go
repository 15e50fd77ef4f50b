package model

type ParticipateInQuestRequest struct {
	QuestID int64 `json:"quest_id"`
}

type ParticipateInQuestResponse struct{}

type CompleteQuestRequest struct {
	QuestID int64 `json:"quest_id"`
}

type CompleteQuestResponse struct {
	TokenReward uint64 `json:"token_reward"`
}
