package types

import "time"

// OrderType is the gateway's numeric order type.
type OrderType int

const (
	OrderTypeLimit        OrderType = 1
	OrderTypeMarket       OrderType = 2
	OrderTypeStop         OrderType = 4
	OrderTypeTrailingStop OrderType = 5
	OrderTypeJoinBid      OrderType = 6
	OrderTypeJoinAsk      OrderType = 7
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeLimit:
		return "Limit"
	case OrderTypeMarket:
		return "Market"
	case OrderTypeStop:
		return "Stop"
	case OrderTypeTrailingStop:
		return "TrailingStop"
	case OrderTypeJoinBid:
		return "JoinBid"
	case OrderTypeJoinAsk:
		return "JoinAsk"
	}
	return "Unknown"
}

// OrderSide is the gateway's numeric order side.
type OrderSide int

const (
	SideBid OrderSide = 0 // buy
	SideAsk OrderSide = 1 // sell
)

func (s OrderSide) String() string {
	if s == SideBid {
		return "Bid"
	}
	return "Ask"
}

// OrderStatus as reported by order search.
type OrderStatus int

const (
	OrderStatusOpen      OrderStatus = 1
	OrderStatusFilled    OrderStatus = 2
	OrderStatusCancelled OrderStatus = 3
	OrderStatusExpired   OrderStatus = 4
	OrderStatusRejected  OrderStatus = 5
	OrderStatusPending   OrderStatus = 6
)

// Order is one order record returned by the search endpoints.
type Order struct {
	ID                int64       `json:"id"`
	AccountID         int         `json:"accountId"`
	ContractID        string      `json:"contractId"`
	CreationTimestamp time.Time   `json:"creationTimestamp"`
	UpdateTimestamp   *time.Time  `json:"updateTimestamp"`
	Status            OrderStatus `json:"status"`
	Type              OrderType   `json:"type"`
	Side              OrderSide   `json:"side"`
	Size              int         `json:"size"`
	LimitPrice        *float64    `json:"limitPrice"`
	StopPrice         *float64    `json:"stopPrice"`
	CustomTag         string      `json:"customTag"`
}

// PlaceOrderRequest submits a new order. Prices are required only where
// the order type needs them; the gateway enforces the combination.
type PlaceOrderRequest struct {
	AccountID     int       `json:"accountId"`
	ContractID    string    `json:"contractId"`
	Type          OrderType `json:"type"`
	Side          OrderSide `json:"side"`
	Size          int       `json:"size"`
	LimitPrice    *float64  `json:"limitPrice,omitempty"`
	StopPrice     *float64  `json:"stopPrice,omitempty"`
	TrailPrice    *float64  `json:"trailPrice,omitempty"`
	CustomTag     string    `json:"customTag,omitempty"`
	LinkedOrderID *int64    `json:"linkedOrderId,omitempty"`
}

type PlaceOrderResponse struct {
	Envelope
	OrderID int64 `json:"orderId"`
}

type SearchOrdersRequest struct {
	AccountID      int       `json:"accountId"`
	StartTimestamp time.Time `json:"startTimestamp"`
	EndTimestamp   time.Time `json:"endTimestamp"`
}

type SearchOpenOrdersRequest struct {
	AccountID int `json:"accountId"`
}

type SearchOrdersResponse struct {
	Envelope
	Orders []Order `json:"orders"`
}

// ModifyOrderRequest changes fields of a resting order; nil fields are
// left untouched.
type ModifyOrderRequest struct {
	AccountID  int      `json:"accountId"`
	OrderID    int64    `json:"orderId"`
	Size       *int     `json:"size,omitempty"`
	LimitPrice *float64 `json:"limitPrice,omitempty"`
	StopPrice  *float64 `json:"stopPrice,omitempty"`
	TrailPrice *float64 `json:"trailPrice,omitempty"`
}

type CancelOrderRequest struct {
	AccountID int   `json:"accountId"`
	OrderID   int64 `json:"orderId"`
}
