package client

import (
	"context"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/ratelimit"
)

// SearchOpenPositions returns the account's open positions.
func (c *Client) SearchOpenPositions(ctx context.Context, accountID int) ([]types.Position, error) {
	var out types.SearchOpenPositionsResponse
	req := types.SearchOpenPositionsRequest{AccountID: accountID}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointPositionSearchOpen, req, &out); err != nil {
		return nil, err
	}
	return out.Positions, nil
}

// ClosePosition flattens the whole position on a contract.
func (c *Client) ClosePosition(ctx context.Context, accountID int, contractID string) error {
	var out types.StatusResponse
	req := types.ClosePositionRequest{AccountID: accountID, ContractID: contractID}
	return c.call(ctx, ratelimit.KeyOrder, EndpointPositionClose, req, &out)
}

// PartialClosePosition reduces the position by size contracts. A size
// above the open position is rejected by the gateway.
func (c *Client) PartialClosePosition(ctx context.Context, accountID int, contractID string, size int) error {
	var out types.StatusResponse
	req := types.PartialClosePositionRequest{AccountID: accountID, ContractID: contractID, Size: size}
	return c.call(ctx, ratelimit.KeyOrder, EndpointPositionPartialClose, req, &out)
}
