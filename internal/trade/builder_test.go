package trade

import (
	"testing"

	"gotest.tools/assert"

	"hookbot/internal/models"
)

func TestBuildOrderBody_MarketBase(t *testing.T) {
	req := models.OrderRequest{
		Symbol:    "BTCUSDT",
		Side:      models.OrderSideBuy,
		OrderType: models.OrderTypeMarket,
		Qty:       "0.001",
	}

	body := buildOrderBody(req, derivedPrices{})

	assert.Equal(t, body["category"], "linear")
	assert.Equal(t, body["symbol"], "BTCUSDT")
	assert.Equal(t, body["side"], "Buy")
	assert.Equal(t, body["orderType"], "Market")
	assert.Equal(t, body["qty"], "0.001")
	assert.Equal(t, body["reduceOnly"], true)

	_, hasPrice := body["price"]
	assert.Assert(t, !hasPrice)
	_, hasTIF := body["timeInForce"]
	assert.Assert(t, !hasTIF)

	linkID, ok := body["orderLinkId"].(string)
	assert.Assert(t, ok)
	assert.Assert(t, linkID != "")
}

func TestBuildOrderBody_LimitDefaults(t *testing.T) {
	req := models.OrderRequest{
		Symbol:    "ETHUSDT",
		Side:      models.OrderSideSell,
		OrderType: models.OrderTypeLimit,
		Qty:       "1",
		Price:     "2000",
	}

	body := buildOrderBody(req, derivedPrices{})

	assert.Equal(t, body["price"], "2000")
	assert.Equal(t, body["timeInForce"], "GTC")
}

func TestBuildOrderBody_LimitExplicitTIF(t *testing.T) {
	req := models.OrderRequest{
		Symbol:      "ETHUSDT",
		Side:        models.OrderSideSell,
		OrderType:   models.OrderTypeLimit,
		Qty:         "1",
		Price:       "2000",
		TimeInForce: "IOC",
	}

	body := buildOrderBody(req, derivedPrices{})
	assert.Equal(t, body["timeInForce"], "IOC")
}

func TestBuildOrderBody_Overrides(t *testing.T) {
	idx := 1
	reduce := false
	closeOnTrigger := true
	req := models.OrderRequest{
		Symbol:         "BTCUSDT",
		Side:           models.OrderSideBuy,
		OrderType:      models.OrderTypeMarket,
		Qty:            "0.01",
		PositionIdx:    &idx,
		ReduceOnly:     &reduce,
		CloseOnTrigger: &closeOnTrigger,
		TPTriggerBy:    "MarkPrice",
		SLTriggerBy:    "LastPrice",
		OrderLinkID:    "my-link",
	}

	body := buildOrderBody(req, derivedPrices{TakeProfit: "110", StopLoss: "90"})

	assert.Equal(t, body["positionIdx"], 1)
	assert.Equal(t, body["reduceOnly"], false)
	assert.Equal(t, body["closeOnTrigger"], true)
	assert.Equal(t, body["takeProfit"], "110")
	assert.Equal(t, body["tpTriggerBy"], "MarkPrice")
	assert.Equal(t, body["stopLoss"], "90")
	assert.Equal(t, body["slTriggerBy"], "LastPrice")
	assert.Equal(t, body["orderLinkId"], "my-link")
}

func TestBuildOrderBody_TriggerByWithoutPrices(t *testing.T) {
	req := models.OrderRequest{
		Symbol:      "BTCUSDT",
		Side:        models.OrderSideBuy,
		OrderType:   models.OrderTypeMarket,
		Qty:         "0.01",
		TPTriggerBy: "MarkPrice",
	}

	body := buildOrderBody(req, derivedPrices{})

	_, hasTP := body["takeProfit"]
	assert.Assert(t, !hasTP)
	_, hasTrigger := body["tpTriggerBy"]
	assert.Assert(t, !hasTrigger)
}
