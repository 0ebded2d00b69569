package dto

import "time"

// DevTokenRequest asks the development signer for a token on behalf of a user
type DevTokenRequest struct {
	UserID string `json:"user_id" validate:"required,max=255"`
}

// TokenResponse contains a signed access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// DemoDataResponse reports how many ledger rows the generator recorded
type DemoDataResponse struct {
	Message             string `json:"message"`
	TransactionsCreated int    `json:"transactions_created"`
	Start               string `json:"start"`
	End                 string `json:"end"`
}
