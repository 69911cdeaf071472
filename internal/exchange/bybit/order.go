package bybit

import (
	"context"
	"net/http"
)

func (c *Client) PlaceOrder(ctx context.Context, body map[string]any) Response {
	return c.Do(ctx, http.MethodPost, "/v5/order/create", nil, body)
}

func (c *Client) CancelAllOrders(ctx context.Context, symbol string) Response {
	body := map[string]any{
		"category": categoryLinear,
		"symbol":   symbol,
	}
	return c.Do(ctx, http.MethodPost, "/v5/order/cancel-all", nil, body)
}
