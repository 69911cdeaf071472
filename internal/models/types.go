package models

import (
	"encoding/json"
	"errors"
)

type OrderSide string
type OrderType string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"

	OrderTypeMarket OrderType = "Market"
	OrderTypeLimit  OrderType = "Limit"
)

func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

var (
	ErrNoPosition = errors.New("Позиция по инструменту не найдена.")
	ErrNoTicker   = errors.New("Тикер по инструменту не найден.")
)

type Account struct {
	Name    string
	ApiKey  string
	Secret  string
	BaseUrl string
}

type PositionSnapshot struct {
	Symbol     string
	Side       OrderSide
	EntryPrice string
	MarkPrice  string
	Size       string
	Leverage   string
}

type MarketSnapshot struct {
	Symbol      string
	LastPrice   string
	High24h     string
	Low24h      string
	Volume24h   string
	FundingRate string
}

type AccountOrderResult struct {
	Account string          `json:"account"`
	Success bool            `json:"success"`
	RetCode int             `json:"ret_code,omitempty"`
	Message string          `json:"message,omitempty"`
	Order   json.RawMessage `json:"order,omitempty"`
}

type WebhookResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message,omitempty"`
	Results []AccountOrderResult `json:"results"`
}
