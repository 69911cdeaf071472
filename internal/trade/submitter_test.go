package trade

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"gotest.tools/assert"

	"hookbot/internal/exchange/bybit"
	"hookbot/internal/logger"
	"hookbot/internal/models"
)

type fakeClient struct {
	name      string
	pos       models.PositionSnapshot
	posErr    error
	ticker    models.MarketSnapshot
	tickerErr error
	placeFn   func(body map[string]any) bybit.Response

	mu      sync.Mutex
	placed  []map[string]any
	cancels int
	closed  bool
}

func (f *fakeClient) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeClient) GetPosition(ctx context.Context, symbol string) (models.PositionSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return models.PositionSnapshot{}, models.ErrNoPosition
	}
	if f.posErr != nil {
		return models.PositionSnapshot{}, f.posErr
	}
	return f.pos, nil
}

func (f *fakeClient) GetTicker(ctx context.Context, symbol string) (models.MarketSnapshot, error) {
	if f.tickerErr != nil {
		return models.MarketSnapshot{}, f.tickerErr
	}
	return f.ticker, nil
}

func (f *fakeClient) PlaceOrder(ctx context.Context, body map[string]any) bybit.Response {
	f.mu.Lock()
	f.placed = append(f.placed, body)
	// Закрывающий ордер собирается без orderLinkId, пользовательский — всегда с ним.
	if _, ok := body["orderLinkId"]; !ok {
		f.closed = true
	}
	f.mu.Unlock()

	if f.placeFn != nil {
		return f.placeFn(body)
	}
	return bybit.Response{RetCode: 0, RetMsg: "OK", Result: json.RawMessage(`{"orderId":"test-order"}`)}
}

func (f *fakeClient) CancelAllOrders(ctx context.Context, symbol string) bybit.Response {
	f.mu.Lock()
	f.cancels++
	f.mu.Unlock()
	return bybit.Response{RetCode: 0, RetMsg: "OK"}
}

func testSubmitter(clients ...Client) *Submitter {
	log := logger.New(logger.Config{Level: "error"})
	return New(clients, 2, 1, log)
}

func TestSubmit_Success(t *testing.T) {
	fake := &fakeClient{
		pos:    models.PositionSnapshot{EntryPrice: "100", Size: "0"},
		ticker: models.MarketSnapshot{LastPrice: "100.5"},
	}
	s := testSubmitter(fake)

	req := models.OrderRequest{
		Symbol:        "BTCUSDT",
		Side:          models.OrderSideBuy,
		OrderType:     models.OrderTypeMarket,
		Qty:           "0.001",
		TakeProfitPct: "10",
	}

	res := s.Submit(context.Background(), fake, req)
	assert.Assert(t, res.Success)
	assert.Equal(t, res.Account, "fake")
	assert.Assert(t, len(res.Order) > 0)

	assert.Equal(t, len(fake.placed), 1)
	assert.Equal(t, fake.placed[0]["takeProfit"], "110")
	assert.Equal(t, fake.placed[0]["symbol"], "BTCUSDT")
}

func TestSubmit_SnapshotFailureSkipsDerivation(t *testing.T) {
	fake := &fakeClient{
		posErr:    models.ErrNoPosition,
		tickerErr: models.ErrNoTicker,
	}
	s := testSubmitter(fake)

	req := models.OrderRequest{
		Symbol:        "BTCUSDT",
		Side:          models.OrderSideBuy,
		OrderType:     models.OrderTypeMarket,
		Qty:           "0.001",
		TakeProfitPct: "10",
	}

	res := s.Submit(context.Background(), fake, req)
	assert.Assert(t, res.Success)

	assert.Equal(t, len(fake.placed), 1)
	_, hasTP := fake.placed[0]["takeProfit"]
	assert.Assert(t, !hasTP)
}

func TestSubmit_FlattenFailureStopsOrder(t *testing.T) {
	fake := &fakeClient{
		pos: models.PositionSnapshot{Side: models.OrderSideBuy, EntryPrice: "100", Size: "5"},
		placeFn: func(body map[string]any) bybit.Response {
			return bybit.Response{RetCode: 110007, RetMsg: "ab not enough"}
		},
	}
	s := testSubmitter(fake)

	req := models.OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      models.OrderSideSell,
		OrderType: models.OrderTypeMarket,
		Qty:       "0.001",
	}

	res := s.Submit(context.Background(), fake, req)
	assert.Assert(t, !res.Success)
	assert.Assert(t, strings.Contains(res.Message, "Закрытие позиции не удалось"))

	// Только попытка закрытия, нового ордера нет.
	assert.Equal(t, len(fake.placed), 1)
	_, hasLink := fake.placed[0]["orderLinkId"]
	assert.Assert(t, !hasLink)
}

func TestSubmitAll_IsolatedAccounts(t *testing.T) {
	ok := &fakeClient{name: "first", posErr: models.ErrNoPosition}
	fail := &fakeClient{
		name:   "second",
		posErr: models.ErrNoPosition,
		placeFn: func(body map[string]any) bybit.Response {
			return bybit.Response{RetCode: 10001, RetMsg: "params error"}
		},
	}
	s := testSubmitter(ok, fail)

	req := models.OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      models.OrderSideBuy,
		OrderType: models.OrderTypeMarket,
		Qty:       "0.001",
	}

	results := s.SubmitAll(context.Background(), req)
	assert.Equal(t, len(results), 2)

	assert.Equal(t, results[0].Account, "first")
	assert.Assert(t, results[0].Success)

	assert.Equal(t, results[1].Account, "second")
	assert.Assert(t, !results[1].Success)
	assert.Equal(t, results[1].RetCode, 10001)
	assert.Equal(t, results[1].Message, "params error")
}
