package trade

import (
	"context"
	"errors"
	"sync"
	"time"

	"hookbot/internal/exchange/bybit"
	"hookbot/internal/logger"
	"hookbot/internal/models"
)

type Client interface {
	Name() string
	GetPosition(ctx context.Context, symbol string) (models.PositionSnapshot, error)
	GetTicker(ctx context.Context, symbol string) (models.MarketSnapshot, error)
	PlaceOrder(ctx context.Context, body map[string]any) bybit.Response
	CancelAllOrders(ctx context.Context, symbol string) bybit.Response
}

type Submitter struct {
	clients     []Client
	precision   int
	flattenWait time.Duration
	log         *logger.Logger
}

func New(clients []Client, precision, flattenWaitSec int, log *logger.Logger) *Submitter {
	if precision <= 0 {
		precision = 2
	}
	if flattenWaitSec <= 0 {
		flattenWaitSec = 5
	}
	return &Submitter{
		clients:     clients,
		precision:   precision,
		flattenWait: time.Duration(flattenWaitSec) * time.Second,
		log:         log,
	}
}

func (s *Submitter) Accounts() int {
	return len(s.clients)
}

// SubmitAll разводит один сигнал по всем аккаунтам. Аккаунты полностью
// изолированы: каждый со своим клиентом и своим исходом, сбой одного не
// прерывает остальных.
func (s *Submitter) SubmitAll(ctx context.Context, req models.OrderRequest) []models.AccountOrderResult {
	results := make([]models.AccountOrderResult, len(s.clients))

	var wg sync.WaitGroup
	for i, client := range s.clients {
		wg.Add(1)
		go func(i int, client Client) {
			defer wg.Done()
			results[i] = s.Submit(ctx, client, req)
		}(i, client)
	}
	wg.Wait()

	return results
}

// Submit — конвейер одного аккаунта: свежие снимки позиции и рынка, расчёт
// TP/SL, закрытие текущей позиции, постановка ордера. Шаги строго
// последовательны: расчёт зависит от только что прочитанных снимков, а новый
// ордер нельзя ставить до подтверждённого закрытия.
func (s *Submitter) Submit(ctx context.Context, client Client, req models.OrderRequest) models.AccountOrderResult {
	entry := s.log.WithFields(map[string]interface{}{
		"account": client.Name(),
		"symbol":  req.Symbol,
		"side":    req.Side,
		"type":    req.OrderType,
		"qty":     req.Qty,
	})
	entry.Info("Обработка сигнала.")

	var prices derivedPrices
	if req.TakeProfitPct != "" || req.StopLossPct != "" {
		pos, market, err := s.fetchSnapshots(ctx, client, req.Symbol)
		if err != nil {
			// Снимки нужны только для процентных уровней: без них ордер
			// уходит без TP/SL, а не отклоняется.
			entry.WithError(err).Warn("Снимки недоступны, TP/SL не рассчитаны.")
		} else {
			prices = derivePrices(req, pos, market, s.precision)
			if prices.TakeProfit != "" || prices.StopLoss != "" {
				entry.WithFields(map[string]interface{}{
					"take_profit": prices.TakeProfit,
					"stop_loss":   prices.StopLoss,
				}).Info("Рассчитаны уровни TP/SL.")
			}
		}
	}

	if flat := s.Flatten(ctx, client, req.Symbol, req.Side); !flat.Success {
		entry.WithField("reason", flat.Message).Error("Закрытие позиции не удалось, ордер не поставлен.")
		return models.AccountOrderResult{
			Account: client.Name(),
			Message: "Закрытие позиции не удалось: " + flat.Message,
		}
	}

	resp := client.PlaceOrder(ctx, buildOrderBody(req, prices))
	if !resp.OK() {
		entry.WithFields(map[string]interface{}{
			"ret_code": resp.RetCode,
			"ret_msg":  resp.RetMsg,
		}).Error("Ордер отклонён.")
		return models.AccountOrderResult{
			Account: client.Name(),
			RetCode: resp.RetCode,
			Message: resp.RetMsg,
		}
	}

	entry.Info("Ордер поставлен.")
	return models.AccountOrderResult{
		Account: client.Name(),
		Success: true,
		Order:   resp.Result,
	}
}

func (s *Submitter) fetchSnapshots(ctx context.Context, client Client, symbol string) (models.PositionSnapshot, models.MarketSnapshot, error) {
	pos, err := client.GetPosition(ctx, symbol)
	if err != nil && !errors.Is(err, models.ErrNoPosition) {
		return models.PositionSnapshot{}, models.MarketSnapshot{}, err
	}

	market, err := client.GetTicker(ctx, symbol)
	if err != nil {
		return models.PositionSnapshot{}, models.MarketSnapshot{}, err
	}

	return pos, market, nil
}
