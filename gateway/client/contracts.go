package client

import (
	"context"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/ratelimit"
)

// SearchContracts finds contracts by free-text search. live selects the
// live data feed instead of the simulated one.
func (c *Client) SearchContracts(ctx context.Context, searchText string, live bool) ([]types.Contract, error) {
	var out types.SearchContractsResponse
	req := types.SearchContractsRequest{SearchText: searchText, Live: live}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointContractSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Contracts, nil
}

// SearchContractByID fetches a single contract by its full id.
func (c *Client) SearchContractByID(ctx context.Context, contractID string) (*types.Contract, error) {
	var out types.SearchContractByIDResponse
	req := types.SearchContractByIDRequest{ContractID: contractID}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointContractSearchByID, req, &out); err != nil {
		return nil, err
	}
	return &out.Contract, nil
}
