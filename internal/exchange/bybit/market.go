package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"hookbot/internal/models"
)

const categoryLinear = "linear"

func (c *Client) GetPosition(ctx context.Context, symbol string) (models.PositionSnapshot, error) {
	params := url.Values{}
	params.Set("category", categoryLinear)
	params.Set("symbol", symbol)

	resp := c.Do(ctx, http.MethodGet, "/v5/position/list", params, nil)
	if !resp.OK() {
		return models.PositionSnapshot{}, fmt.Errorf("Ошибка bybit: %s (code=%d)", resp.RetMsg, resp.RetCode)
	}

	var result struct {
		List []struct {
			Symbol    string `json:"symbol"`
			Side      string `json:"side"`
			Size      string `json:"size"`
			AvgPrice  string `json:"avgPrice"`
			MarkPrice string `json:"markPrice"`
			Leverage  string `json:"leverage"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return models.PositionSnapshot{}, fmt.Errorf("Не удалось разобрать список позиций: %w", err)
	}

	for _, item := range result.List {
		if item.Symbol != symbol {
			continue
		}
		return models.PositionSnapshot{
			Symbol:     item.Symbol,
			Side:       models.OrderSide(item.Side),
			EntryPrice: item.AvgPrice,
			MarkPrice:  item.MarkPrice,
			Size:       item.Size,
			Leverage:   item.Leverage,
		}, nil
	}

	return models.PositionSnapshot{}, models.ErrNoPosition
}

func (c *Client) GetTicker(ctx context.Context, symbol string) (models.MarketSnapshot, error) {
	params := url.Values{}
	params.Set("category", categoryLinear)
	params.Set("symbol", symbol)

	resp := c.Do(ctx, http.MethodGet, "/v5/market/tickers", params, nil)
	if !resp.OK() {
		return models.MarketSnapshot{}, fmt.Errorf("Ошибка bybit: %s (code=%d)", resp.RetMsg, resp.RetCode)
	}

	var result struct {
		List []struct {
			Symbol       string `json:"symbol"`
			LastPrice    string `json:"lastPrice"`
			HighPrice24h string `json:"highPrice24h"`
			LowPrice24h  string `json:"lowPrice24h"`
			Volume24h    string `json:"volume24h"`
			FundingRate  string `json:"fundingRate"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return models.MarketSnapshot{}, fmt.Errorf("Не удалось разобрать тикеры: %w", err)
	}

	for _, item := range result.List {
		if item.Symbol != symbol {
			continue
		}
		return models.MarketSnapshot{
			Symbol:      item.Symbol,
			LastPrice:   item.LastPrice,
			High24h:     item.HighPrice24h,
			Low24h:      item.LowPrice24h,
			Volume24h:   item.Volume24h,
			FundingRate: item.FundingRate,
		}, nil
	}

	return models.MarketSnapshot{}, models.ErrNoTicker
}
