package model

type UpdateAdminRequest struct {
	NewAdminID string `json:"new_admin_id"`
}

type UpdateAdminResponse struct{}

type AccessToken struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WalletAddress string `json:"wallet_address"`
}
