package trade

import (
	"github.com/google/uuid"

	"hookbot/internal/models"
)

// Тело ордера собирается из базовой части и независимых необязательных
// дополнений поверх неё.
func buildOrderBody(req models.OrderRequest, prices derivedPrices) map[string]any {
	body := baseOrderBody(req)
	applyLimitFields(body, req)
	applyPositionFields(body, req)
	applyTriggerFields(body, req, prices)
	applyLinkID(body, req)
	return body
}

func baseOrderBody(req models.OrderRequest) map[string]any {
	return map[string]any{
		"category":  "linear",
		"symbol":    req.Symbol,
		"side":      string(req.Side),
		"orderType": string(req.OrderType),
		"qty":       req.Qty,
	}
}

func applyLimitFields(body map[string]any, req models.OrderRequest) {
	if req.OrderType != models.OrderTypeLimit {
		return
	}
	body["price"] = req.Price
	if req.TimeInForce != "" {
		body["timeInForce"] = req.TimeInForce
	} else {
		body["timeInForce"] = "GTC"
	}
}

func applyPositionFields(body map[string]any, req models.OrderRequest) {
	if req.PositionIdx != nil {
		body["positionIdx"] = *req.PositionIdx
	}
	if req.ReduceOnly != nil {
		body["reduceOnly"] = *req.ReduceOnly
	} else {
		body["reduceOnly"] = true
	}
	if req.CloseOnTrigger != nil {
		body["closeOnTrigger"] = *req.CloseOnTrigger
	}
}

func applyTriggerFields(body map[string]any, req models.OrderRequest, prices derivedPrices) {
	if prices.TakeProfit != "" {
		body["takeProfit"] = prices.TakeProfit
		if req.TPTriggerBy != "" {
			body["tpTriggerBy"] = req.TPTriggerBy
		}
	}
	if prices.StopLoss != "" {
		body["stopLoss"] = prices.StopLoss
		if req.SLTriggerBy != "" {
			body["slTriggerBy"] = req.SLTriggerBy
		}
	}
}

func applyLinkID(body map[string]any, req models.OrderRequest) {
	if req.OrderLinkID != "" {
		body["orderLinkId"] = req.OrderLinkID
		return
	}
	body["orderLinkId"] = uuid.NewString()
}
