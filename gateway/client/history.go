package client

import (
	"context"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/ratelimit"
)

// RetrieveBars fetches OHLCV candles, oldest first, at most req.Limit of
// them. The history endpoint has the tightest gateway rate limit.
func (c *Client) RetrieveBars(ctx context.Context, req types.RetrieveBarsRequest) ([]types.Bar, error) {
	req.StartTime = req.StartTime.UTC()
	req.EndTime = req.EndTime.UTC()

	var out types.RetrieveBarsResponse
	if err := c.call(ctx, ratelimit.KeyHistory, EndpointRetrieveBars, req, &out); err != nil {
		return nil, err
	}
	return out.Bars, nil
}
