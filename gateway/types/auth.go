package types

// LoginRequest authenticates with a username and API key.
type LoginRequest struct {
	UserName string `json:"userName"`
	APIKey   string `json:"apiKey"`
}

// LoginResponse carries the session token on success.
type LoginResponse struct {
	Envelope
	Token string `json:"token"`
}

// ValidateResponse reports whether the current token is still accepted.
// The gateway may rotate the session by returning a replacement token.
type ValidateResponse struct {
	Envelope
	NewToken string `json:"newToken"`
}
