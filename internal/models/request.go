package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type OrderRequest struct {
	Symbol         string    `json:"symbol"`
	Side           OrderSide `json:"side"`
	OrderType      OrderType `json:"orderType"`
	Qty            string    `json:"qty"`
	Price          string    `json:"price,omitempty"`
	TimeInForce    string    `json:"timeInForce,omitempty"`
	PositionIdx    *int      `json:"positionIdx,omitempty"`
	ReduceOnly     *bool     `json:"reduceOnly,omitempty"`
	CloseOnTrigger *bool     `json:"closeOnTrigger,omitempty"`
	TakeProfitPct  string    `json:"takeProfit,omitempty"`
	StopLossPct    string    `json:"stopLoss,omitempty"`
	TPTriggerBy    string    `json:"tpTriggerBy,omitempty"`
	SLTriggerBy    string    `json:"slTriggerBy,omitempty"`
	OrderLinkID    string    `json:"orderLinkId,omitempty"`
}

func (r *OrderRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("Не указан инструмент.")
	}

	switch r.Side {
	case OrderSideBuy, OrderSideSell:
	default:
		return fmt.Errorf("Некорректная сторона ордера: %q", r.Side)
	}

	switch r.OrderType {
	case OrderTypeMarket, OrderTypeLimit:
	default:
		return fmt.Errorf("Некорректный тип ордера: %q", r.OrderType)
	}

	qty, err := decimal.NewFromString(r.Qty)
	if err != nil || !qty.IsPositive() {
		return fmt.Errorf("Некорректный объём ордера: %q", r.Qty)
	}

	if r.OrderType == OrderTypeLimit {
		price, err := decimal.NewFromString(r.Price)
		if err != nil || !price.IsPositive() {
			return fmt.Errorf("Для лимитного ордера нужна корректная цена: %q", r.Price)
		}
	}

	return nil
}

// Позиционный формат сигнала:
// symbol,side,orderType,qty,price,timeInForce,positionIdx,reduceOnly,
// closeOnTrigger,takeProfit,stopLoss,tpTriggerBy,slTriggerBy,orderLinkId
// Хвостовые поля необязательны, пустой сегмент означает "не задано".
func ParseDelimited(raw string) (OrderRequest, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) < 4 {
		return OrderRequest{}, fmt.Errorf("Слишком короткий сигнал, нужно минимум 4 поля: %q", raw)
	}

	field := func(i int) string {
		if i >= len(parts) {
			return ""
		}
		return strings.TrimSpace(parts[i])
	}

	req := OrderRequest{
		Symbol:        field(0),
		Side:          OrderSide(field(1)),
		OrderType:     OrderType(field(2)),
		Qty:           field(3),
		Price:         field(4),
		TimeInForce:   field(5),
		TakeProfitPct: field(9),
		StopLossPct:   field(10),
		TPTriggerBy:   field(11),
		SLTriggerBy:   field(12),
		OrderLinkID:   field(13),
	}

	if raw := field(6); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return OrderRequest{}, fmt.Errorf("Некорректный positionIdx: %q", raw)
		}
		req.PositionIdx = &idx
	}

	if raw := field(7); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return OrderRequest{}, fmt.Errorf("Некорректный reduceOnly: %q", raw)
		}
		req.ReduceOnly = &val
	}

	if raw := field(8); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return OrderRequest{}, fmt.Errorf("Некорректный closeOnTrigger: %q", raw)
		}
		req.CloseOnTrigger = &val
	}

	return req, nil
}
