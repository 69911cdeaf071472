package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"gotest.tools/assert"

	"hookbot/internal/models"
)

func TestCalcTakeProfit(t *testing.T) {
	base := decimal.NewFromInt(100)
	pct := decimal.NewFromInt(10)

	assert.Equal(t, CalcTakeProfit(base, pct, models.OrderSideBuy).String(), "110")
	assert.Equal(t, CalcTakeProfit(base, pct, models.OrderSideSell).String(), "90")
}

func TestCalcStopLoss(t *testing.T) {
	base := decimal.NewFromInt(100)
	pct := decimal.NewFromInt(10)

	assert.Equal(t, CalcStopLoss(base, pct, models.OrderSideBuy).String(), "90")
	assert.Equal(t, CalcStopLoss(base, pct, models.OrderSideSell).String(), "110")
}

func TestDerivePrices_FromEntryPrice(t *testing.T) {
	req := models.OrderRequest{
		Symbol:        "BTCUSDT",
		Side:          models.OrderSideBuy,
		TakeProfitPct: "10",
		StopLossPct:   "5",
	}
	pos := models.PositionSnapshot{EntryPrice: "100", MarkPrice: "101"}
	market := models.MarketSnapshot{LastPrice: "102"}

	prices := derivePrices(req, pos, market, 2)
	assert.Equal(t, prices.TakeProfit, "110")
	assert.Equal(t, prices.StopLoss, "95")
}

func TestDerivePrices_MarkPriceFallback(t *testing.T) {
	req := models.OrderRequest{
		Symbol:      "BTCUSDT",
		Side:        models.OrderSideBuy,
		StopLossPct: "20",
	}
	pos := models.PositionSnapshot{EntryPrice: "0", MarkPrice: "50"}
	market := models.MarketSnapshot{LastPrice: "55"}

	prices := derivePrices(req, pos, market, 2)
	assert.Equal(t, prices.StopLoss, "40")
	assert.Equal(t, prices.TakeProfit, "")
}

func TestDerivePrices_LastPriceFallback(t *testing.T) {
	req := models.OrderRequest{
		Symbol:        "BTCUSDT",
		Side:          models.OrderSideSell,
		TakeProfitPct: "10",
	}
	market := models.MarketSnapshot{LastPrice: "200"}

	prices := derivePrices(req, models.PositionSnapshot{}, market, 2)
	assert.Equal(t, prices.TakeProfit, "180")
}

func TestDerivePrices_Precision(t *testing.T) {
	req := models.OrderRequest{
		Symbol:        "BTCUSDT",
		Side:          models.OrderSideBuy,
		TakeProfitPct: "0.333",
	}
	pos := models.PositionSnapshot{EntryPrice: "100"}

	prices := derivePrices(req, pos, models.MarketSnapshot{}, 2)
	assert.Equal(t, prices.TakeProfit, "100.33")

	prices = derivePrices(req, pos, models.MarketSnapshot{}, 5)
	assert.Equal(t, prices.TakeProfit, "100.333")
}

func TestDerivePrices_NoBase(t *testing.T) {
	req := models.OrderRequest{
		Symbol:        "BTCUSDT",
		Side:          models.OrderSideBuy,
		TakeProfitPct: "10",
	}

	prices := derivePrices(req, models.PositionSnapshot{}, models.MarketSnapshot{}, 2)
	assert.Equal(t, prices.TakeProfit, "")
	assert.Equal(t, prices.StopLoss, "")
}
