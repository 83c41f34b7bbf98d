package types

import "github.com/shopspring/decimal"

// Contract is a tradeable instrument, e.g. "CON.F.US.EP.M25".
type Contract struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	TickSize       float64 `json:"tickSize"`
	TickValue      float64 `json:"tickValue"`
	ActiveContract bool    `json:"activeContract"`
}

// AlignPrice snaps a price to the contract tick. Decimal math keeps
// repeated float drift out of limit and stop prices; the gateway rejects
// prices that sit off the tick grid.
func (c Contract) AlignPrice(price float64) float64 {
	if c.TickSize <= 0 {
		return price
	}
	tick := decimal.NewFromFloat(c.TickSize)
	steps := decimal.NewFromFloat(price).Div(tick).Round(0)
	aligned, _ := steps.Mul(tick).Float64()
	return aligned
}

type SearchContractsRequest struct {
	SearchText string `json:"searchText"`
	Live       bool   `json:"live"`
}

type SearchContractByIDRequest struct {
	ContractID string `json:"contractId"`
}

type SearchContractsResponse struct {
	Envelope
	Contracts []Contract `json:"contracts"`
}

type SearchContractByIDResponse struct {
	Envelope
	Contract Contract `json:"contract"`
}
