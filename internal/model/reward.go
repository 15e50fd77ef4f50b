package model

type RequestWithdrawalRequest struct{}

type RequestWithdrawalResponse struct {
	Amount uint64 `json:"amount"`
}

type ApproveWithdrawalRequest struct {
	UserID       string `json:"user_id"`
	TokenAddress string `json:"token_address"`
}

type ApproveWithdrawalResponse struct {
	Amount uint64 `json:"amount"`
}

type RejectWithdrawalRequest struct {
	UserID string `json:"user_id"`
}

type RejectWithdrawalResponse struct {
	Amount uint64 `json:"amount"`
}

type GetMyRewardsRequest struct{}

type GetMyRewardsResponse struct {
	PendingReward     uint64 `json:"pending_reward"`
	PendingWithdrawal uint64 `json:"pending_withdrawal"`
}

type GetBalanceRequest struct {
	UserID string `json:"user_id"`
}

type GetBalanceResponse struct {
	PendingReward     uint64 `json:"pending_reward"`
	PendingWithdrawal uint64 `json:"pending_withdrawal"`
}
