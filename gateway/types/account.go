package types

// Account is one trading account visible to the authenticated user.
type Account struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	CanTrade  bool    `json:"canTrade"`
	IsVisible bool    `json:"isVisible"`
	Simulated bool    `json:"simulated"`
}

type SearchAccountsRequest struct {
	OnlyActiveAccounts bool `json:"onlyActiveAccounts"`
}

type SearchAccountsResponse struct {
	Envelope
	Accounts []Account `json:"accounts"`
}
