package types

import "time"

// Trade is one fill from the account's trade history.
type Trade struct {
	ID                int64     `json:"id"`
	AccountID         int       `json:"accountId"`
	ContractID        string    `json:"contractId"`
	CreationTimestamp time.Time `json:"creationTimestamp"`
	Price             float64   `json:"price"`
	ProfitAndLoss     *float64  `json:"profitAndLoss"` // nil for half-turn trades
	Fees              float64   `json:"fees"`
	Side              OrderSide `json:"side"`
	Size              int       `json:"size"`
	Voided            bool      `json:"voided"`
	OrderID           int64     `json:"orderId"`
}

type SearchTradesRequest struct {
	AccountID      int       `json:"accountId"`
	StartTimestamp time.Time `json:"startTimestamp"`
	EndTimestamp   time.Time `json:"endTimestamp"`
}

type SearchTradesResponse struct {
	Envelope
	Trades []Trade `json:"trades"`
}
