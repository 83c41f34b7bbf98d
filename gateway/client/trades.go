package client

import (
	"context"
	"time"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/ratelimit"
)

// SearchTrades returns the account's fills inside [start, end].
func (c *Client) SearchTrades(ctx context.Context, accountID int, start, end time.Time) ([]types.Trade, error) {
	var out types.SearchTradesResponse
	req := types.SearchTradesRequest{
		AccountID:      accountID,
		StartTimestamp: start.UTC(),
		EndTimestamp:   end.UTC(),
	}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointTradeSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Trades, nil
}
