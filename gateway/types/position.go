package types

import "time"

// PositionType distinguishes long and short positions.
type PositionType int

const (
	PositionLong  PositionType = 1
	PositionShort PositionType = 2
)

func (t PositionType) String() string {
	if t == PositionLong {
		return "Long"
	}
	return "Short"
}

// Position is one open position on an account.
type Position struct {
	ID                int64        `json:"id"`
	AccountID         int          `json:"accountId"`
	ContractID        string       `json:"contractId"`
	CreationTimestamp time.Time    `json:"creationTimestamp"`
	Type              PositionType `json:"type"`
	Size              int          `json:"size"`
	AveragePrice      float64      `json:"averagePrice"`
}

type SearchOpenPositionsRequest struct {
	AccountID int `json:"accountId"`
}

type SearchOpenPositionsResponse struct {
	Envelope
	Positions []Position `json:"positions"`
}

type ClosePositionRequest struct {
	AccountID  int    `json:"accountId"`
	ContractID string `json:"contractId"`
}

type PartialClosePositionRequest struct {
	AccountID  int    `json:"accountId"`
	ContractID string `json:"contractId"`
	Size       int    `json:"size"`
}
