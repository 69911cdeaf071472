package trade

import (
	"github.com/shopspring/decimal"

	"hookbot/internal/models"
)

var hundred = decimal.NewFromInt(100)

func CalcTakeProfit(base, pct decimal.Decimal, side models.OrderSide) decimal.Decimal {
	factor := pct.Div(hundred)

	if side == models.OrderSideBuy {
		return base.Mul(decimal.NewFromInt(1).Add(factor))
	}
	return base.Mul(decimal.NewFromInt(1).Sub(factor))
}

func CalcStopLoss(base, pct decimal.Decimal, side models.OrderSide) decimal.Decimal {
	factor := pct.Div(hundred)

	if side == models.OrderSideBuy {
		return base.Mul(decimal.NewFromInt(1).Sub(factor))
	}
	return base.Mul(decimal.NewFromInt(1).Add(factor))
}

type derivedPrices struct {
	TakeProfit string
	StopLoss   string
}

// basePrice выбирает опорную цену для процентных уровней: цена входа, если
// позиция уже открыта, иначе mark price, иначе последняя цена рынка.
func basePrice(pos models.PositionSnapshot, market models.MarketSnapshot) decimal.Decimal {
	if entry, err := decimal.NewFromString(pos.EntryPrice); err == nil && entry.IsPositive() {
		return entry
	}
	if mark, err := decimal.NewFromString(pos.MarkPrice); err == nil && mark.IsPositive() {
		return mark
	}
	if last, err := decimal.NewFromString(market.LastPrice); err == nil && last.IsPositive() {
		return last
	}
	return decimal.Zero
}

func derivePrices(req models.OrderRequest, pos models.PositionSnapshot, market models.MarketSnapshot, precision int) derivedPrices {
	base := basePrice(pos, market)
	if !base.IsPositive() {
		return derivedPrices{}
	}

	var out derivedPrices

	if req.TakeProfitPct != "" {
		if pct, err := decimal.NewFromString(req.TakeProfitPct); err == nil && pct.IsPositive() {
			out.TakeProfit = CalcTakeProfit(base, pct, req.Side).Round(int32(precision)).String()
		}
	}

	if req.StopLossPct != "" {
		if pct, err := decimal.NewFromString(req.StopLossPct); err == nil && pct.IsPositive() {
			out.StopLoss = CalcStopLoss(base, pct, req.Side).Round(int32(precision)).String()
		}
	}

	return out
}
