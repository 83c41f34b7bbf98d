package client

import (
	"context"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/ratelimit"
)

// SearchAccounts lists the user's trading accounts. onlyActive filters
// out closed and hidden accounts.
func (c *Client) SearchAccounts(ctx context.Context, onlyActive bool) ([]types.Account, error) {
	var out types.SearchAccountsResponse
	req := types.SearchAccountsRequest{OnlyActiveAccounts: onlyActive}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointAccountSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}
