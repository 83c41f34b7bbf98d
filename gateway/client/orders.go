package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/ratelimit"
)

// PlaceOrder submits an order and returns the gateway order id. An empty
// CustomTag is filled with a UUID so resubmissions stay distinguishable.
// No local validation of business parameters; the gateway enforces them.
func (c *Client) PlaceOrder(ctx context.Context, req types.PlaceOrderRequest) (int64, error) {
	if req.CustomTag == "" {
		req.CustomTag = uuid.NewString()
	}

	c.log.WithFields(map[string]interface{}{
		"account":  req.AccountID,
		"contract": req.ContractID,
		"type":     req.Type.String(),
		"side":     req.Side.String(),
		"size":     req.Size,
	}).Debug("placing order")

	var out types.PlaceOrderResponse
	if err := c.call(ctx, ratelimit.KeyOrder, EndpointOrderPlace, req, &out); err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

// SearchOrders returns the account's orders created inside [start, end].
// Timestamps are sent as ISO-8601; pass UTC times.
func (c *Client) SearchOrders(ctx context.Context, accountID int, start, end time.Time) ([]types.Order, error) {
	var out types.SearchOrdersResponse
	req := types.SearchOrdersRequest{
		AccountID:      accountID,
		StartTimestamp: start.UTC(),
		EndTimestamp:   end.UTC(),
	}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointOrderSearch, req, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// SearchOpenOrders returns the account's resting orders.
func (c *Client) SearchOpenOrders(ctx context.Context, accountID int) ([]types.Order, error) {
	var out types.SearchOrdersResponse
	req := types.SearchOpenOrdersRequest{AccountID: accountID}
	if err := c.call(ctx, ratelimit.KeyGeneral, EndpointOrderSearchOpen, req, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// ModifyOrder changes the non-nil fields of a resting order.
func (c *Client) ModifyOrder(ctx context.Context, req types.ModifyOrderRequest) error {
	var out types.StatusResponse
	return c.call(ctx, ratelimit.KeyOrder, EndpointOrderModify, req, &out)
}

// CancelOrder cancels a resting order. Cancelling an unknown order is a
// gateway rejection, never a silent success.
func (c *Client) CancelOrder(ctx context.Context, accountID int, orderID int64) error {
	var out types.StatusResponse
	req := types.CancelOrderRequest{AccountID: accountID, OrderID: orderID}
	return c.call(ctx, ratelimit.KeyOrder, EndpointOrderCancel, req, &out)
}
