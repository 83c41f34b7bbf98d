package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/betbot/projectx/gateway/types"
)

// fakeGateway is an in-memory gateway good enough for the whole client
// surface: it issues tokens, checks bearers, keeps orders and positions
// and serves deterministic bars.
type fakeGateway struct {
	t   *testing.T
	srv *httptest.Server

	mu             sync.Mutex
	username       string
	apiKey         string
	rejectWith401  bool // reject bad logins with HTTP 401 instead of an envelope
	rotateTo       string
	tokens         map[string]bool // token -> still valid
	loginCalls     int
	validateCalls  int
	lastAuthHeader string
	lastCustomTag  string

	nextOrderID int64
	orders      map[int64]*types.Order
	positions   map[string]*types.Position
	bars        []types.Bar
	trades      []types.Trade
}

func newFakeGateway(t *testing.T) *fakeGateway {
	f := &fakeGateway{
		t:         t,
		username:  "tester",
		apiKey:    "key-123",
		tokens:    make(map[string]bool),
		orders:    make(map[int64]*types.Order),
		positions: make(map[string]*types.Position),
	}

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		f.bars = append(f.bars, types.Bar{
			Timestamp: ts,
			Open:      5000 + float64(i),
			High:      5001 + float64(i),
			Low:       4999 + float64(i),
			Close:     5000.5 + float64(i),
			Volume:    100,
		})
		if i < 5 {
			f.trades = append(f.trades, types.Trade{
				ID:                int64(i + 1),
				AccountID:         123,
				ContractID:        "CON.F.US.EP.M25",
				CreationTimestamp: ts,
				Price:             5000 + float64(i),
				Size:              1,
				OrderID:           int64(i + 1),
			})
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(EndpointLoginKey, f.handleLogin)
	mux.HandleFunc(EndpointValidate, f.handleValidate)
	mux.HandleFunc(EndpointAccountSearch, f.signed(f.handleAccountSearch))
	mux.HandleFunc(EndpointContractSearch, f.signed(f.handleContractSearch))
	mux.HandleFunc(EndpointContractSearchByID, f.signed(f.handleContractSearchByID))
	mux.HandleFunc(EndpointOrderPlace, f.signed(f.handleOrderPlace))
	mux.HandleFunc(EndpointOrderSearch, f.signed(f.handleOrderSearch))
	mux.HandleFunc(EndpointOrderSearchOpen, f.signed(f.handleOrderSearchOpen))
	mux.HandleFunc(EndpointOrderModify, f.signed(f.handleOrderModify))
	mux.HandleFunc(EndpointOrderCancel, f.signed(f.handleOrderCancel))
	mux.HandleFunc(EndpointPositionSearchOpen, f.signed(f.handlePositionSearchOpen))
	mux.HandleFunc(EndpointPositionClose, f.signed(f.handlePositionClose))
	mux.HandleFunc(EndpointPositionPartialClose, f.signed(f.handlePositionPartialClose))
	mux.HandleFunc(EndpointTradeSearch, f.signed(f.handleTradeSearch))
	mux.HandleFunc(EndpointRetrieveBars, f.signed(f.handleRetrieveBars))

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// newClient builds a client against the fake with defaults suitable for
// tests: validate on every call, no persistence.
func (f *fakeGateway) newClient(opts Options) *Client {
	opts.BaseURL = f.srv.URL
	return NewClient(Credentials{Username: f.username, APIKey: f.apiKey}, opts)
}

func (f *fakeGateway) counts() (logins, validates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.validateCalls
}

// revokeAll marks every issued token invalid, as an expired session would be.
func (f *fakeGateway) revokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tok := range f.tokens {
		f.tokens[tok] = false
	}
}

func (f *fakeGateway) seedPosition(p types.Position) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions[p.ContractID] = &p
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func okEnvelope() types.Envelope {
	return types.Envelope{Success: true}
}

func failEnvelope(code int, msg string) types.Envelope {
	return types.Envelope{Success: false, ErrorCode: code, ErrorMessage: msg}
}

func (f *fakeGateway) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.loginCalls++
	good := req.UserName == f.username && req.APIKey == f.apiKey
	reject401 := f.rejectWith401
	var token string
	if good {
		token = fmt.Sprintf("tok-%d", f.loginCalls)
		f.tokens[token] = true
	}
	f.mu.Unlock()

	if !good {
		if reject401 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, types.LoginResponse{Envelope: failEnvelope(3, "invalid credentials")})
		return
	}
	writeJSON(w, types.LoginResponse{Envelope: okEnvelope(), Token: token})
}

func (f *fakeGateway) bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	tok := strings.TrimPrefix(h, "Bearer ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuthHeader = h
	valid, known := f.tokens[tok]
	return tok, known && valid
}

func (f *fakeGateway) handleValidate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.validateCalls++
	rotate := f.rotateTo
	f.mu.Unlock()

	_, ok := f.bearer(r)
	if !ok {
		writeJSON(w, types.ValidateResponse{Envelope: failEnvelope(401, "session expired")})
		return
	}
	resp := types.ValidateResponse{Envelope: okEnvelope()}
	if rotate != "" {
		f.mu.Lock()
		f.tokens[rotate] = true
		f.rotateTo = ""
		f.mu.Unlock()
		resp.NewToken = rotate
	}
	writeJSON(w, resp)
}

// signed rejects requests whose bearer the gateway no longer accepts.
func (f *fakeGateway) signed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.bearer(r); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (f *fakeGateway) handleAccountSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.SearchAccountsResponse{
		Envelope: okEnvelope(),
		Accounts: []types.Account{{ID: 123, Name: "SIM-1", Balance: 50000, CanTrade: true, IsVisible: true, Simulated: true}},
	})
}

func esContract() types.Contract {
	return types.Contract{
		ID: "CON.F.US.EP.M25", Name: "ESM25", Description: "E-mini S&P 500",
		TickSize: 0.25, TickValue: 12.5, ActiveContract: true,
	}
}

func (f *fakeGateway) handleContractSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.SearchContractsResponse{
		Envelope:  okEnvelope(),
		Contracts: []types.Contract{esContract()},
	})
}

func (f *fakeGateway) handleContractSearchByID(w http.ResponseWriter, r *http.Request) {
	var req types.SearchContractByIDRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.ContractID != esContract().ID {
		writeJSON(w, types.SearchContractByIDResponse{Envelope: failEnvelope(8, "contract not found")})
		return
	}
	writeJSON(w, types.SearchContractByIDResponse{Envelope: okEnvelope(), Contract: esContract()})
}

func (f *fakeGateway) handleOrderPlace(w http.ResponseWriter, r *http.Request) {
	var req types.PlaceOrderRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCustomTag = req.CustomTag
	f.nextOrderID++
	id := f.nextOrderID
	f.orders[id] = &types.Order{
		ID:                id,
		AccountID:         req.AccountID,
		ContractID:        req.ContractID,
		CreationTimestamp: time.Now().UTC(),
		Status:            types.OrderStatusOpen,
		Type:              req.Type,
		Side:              req.Side,
		Size:              req.Size,
		LimitPrice:        req.LimitPrice,
		StopPrice:         req.StopPrice,
		CustomTag:         req.CustomTag,
	}
	writeJSON(w, types.PlaceOrderResponse{Envelope: okEnvelope(), OrderID: id})
}

func (f *fakeGateway) handleOrderSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchOrdersRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []types.Order
	for _, o := range f.orders {
		if o.AccountID == req.AccountID {
			orders = append(orders, *o)
		}
	}
	writeJSON(w, types.SearchOrdersResponse{Envelope: okEnvelope(), Orders: orders})
}

func (f *fakeGateway) handleOrderSearchOpen(w http.ResponseWriter, r *http.Request) {
	var req types.SearchOpenOrdersRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []types.Order
	for _, o := range f.orders {
		if o.AccountID == req.AccountID && o.Status == types.OrderStatusOpen {
			orders = append(orders, *o)
		}
	}
	writeJSON(w, types.SearchOrdersResponse{Envelope: okEnvelope(), Orders: orders})
}

func (f *fakeGateway) handleOrderModify(w http.ResponseWriter, r *http.Request) {
	var req types.ModifyOrderRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[req.OrderID]
	if !ok || o.Status != types.OrderStatusOpen {
		writeJSON(w, types.StatusResponse{Envelope: failEnvelope(5, "order not found")})
		return
	}
	if req.Size != nil {
		o.Size = *req.Size
	}
	if req.LimitPrice != nil {
		o.LimitPrice = req.LimitPrice
	}
	if req.StopPrice != nil {
		o.StopPrice = req.StopPrice
	}
	writeJSON(w, types.StatusResponse{Envelope: okEnvelope()})
}

func (f *fakeGateway) handleOrderCancel(w http.ResponseWriter, r *http.Request) {
	var req types.CancelOrderRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[req.OrderID]
	if !ok || o.Status != types.OrderStatusOpen {
		writeJSON(w, types.StatusResponse{Envelope: failEnvelope(5, "order not found")})
		return
	}
	o.Status = types.OrderStatusCancelled
	writeJSON(w, types.StatusResponse{Envelope: okEnvelope()})
}

func (f *fakeGateway) handlePositionSearchOpen(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var positions []types.Position
	for _, p := range f.positions {
		positions = append(positions, *p)
	}
	writeJSON(w, types.SearchOpenPositionsResponse{Envelope: okEnvelope(), Positions: positions})
}

func (f *fakeGateway) handlePositionClose(w http.ResponseWriter, r *http.Request) {
	var req types.ClosePositionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.positions[req.ContractID]; !ok {
		writeJSON(w, types.StatusResponse{Envelope: failEnvelope(6, "no open position")})
		return
	}
	delete(f.positions, req.ContractID)
	writeJSON(w, types.StatusResponse{Envelope: okEnvelope()})
}

func (f *fakeGateway) handlePositionPartialClose(w http.ResponseWriter, r *http.Request) {
	var req types.PartialClosePositionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.positions[req.ContractID]
	if !ok {
		writeJSON(w, types.StatusResponse{Envelope: failEnvelope(6, "no open position")})
		return
	}
	if req.Size <= 0 || req.Size > p.Size {
		writeJSON(w, types.StatusResponse{Envelope: failEnvelope(7, "invalid close size")})
		return
	}
	p.Size -= req.Size
	if p.Size == 0 {
		delete(f.positions, req.ContractID)
	}
	writeJSON(w, types.StatusResponse{Envelope: okEnvelope()})
}

func (f *fakeGateway) handleTradeSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchTradesRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	var trades []types.Trade
	for _, tr := range f.trades {
		if tr.AccountID == req.AccountID &&
			!tr.CreationTimestamp.Before(req.StartTimestamp) &&
			!tr.CreationTimestamp.After(req.EndTimestamp) {
			trades = append(trades, tr)
		}
	}
	writeJSON(w, types.SearchTradesResponse{Envelope: okEnvelope(), Trades: trades})
}

func (f *fakeGateway) handleRetrieveBars(w http.ResponseWriter, r *http.Request) {
	var req types.RetrieveBarsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	bars := f.bars
	if req.Limit > 0 && len(bars) > req.Limit {
		bars = bars[:req.Limit]
	}
	writeJSON(w, types.RetrieveBarsResponse{Envelope: okEnvelope(), Bars: bars})
}
