package trade

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hookbot/internal/models"
)

type FlattenResult struct {
	Success bool
	Message string
}

// Flatten закрывает открытую позицию по инструменту reduce-only маркет-ордером
// перед постановкой нового. Отсутствие позиции — не ошибка. Новый ордер нельзя
// ставить, пока закрытие не подтверждено: закрытие и постановка по одному
// инструменту принципиально не параллелятся.
func (s *Submitter) Flatten(ctx context.Context, client Client, symbol string, incoming models.OrderSide) FlattenResult {
	pos, err := client.GetPosition(ctx, symbol)
	if errors.Is(err, models.ErrNoPosition) {
		return FlattenResult{Success: true, Message: "Нечего закрывать."}
	}
	if err != nil {
		return FlattenResult{Message: err.Error()}
	}

	size, err := decimal.NewFromString(pos.Size)
	if err != nil || size.IsZero() {
		return FlattenResult{Success: true, Message: "Нечего закрывать."}
	}

	s.log.WithFields(map[string]interface{}{
		"account":       client.Name(),
		"symbol":        symbol,
		"position_side": pos.Side,
		"size":          pos.Size,
		"incoming_side": incoming,
	}).Info("Закрытие текущей позиции перед новым ордером.")

	if resp := client.CancelAllOrders(ctx, symbol); !resp.OK() {
		s.log.WithFields(map[string]interface{}{
			"account": client.Name(),
			"symbol":  symbol,
			"ret_msg": resp.RetMsg,
		}).Warn("Не удалось снять активные ордера, продолжаем закрытие.")
	}

	closeBody := map[string]any{
		"category":   "linear",
		"symbol":     symbol,
		"side":       string(pos.Side.Opposite()),
		"orderType":  string(models.OrderTypeMarket),
		"qty":        size.Abs().String(),
		"reduceOnly": true,
	}

	resp := client.PlaceOrder(ctx, closeBody)
	if !resp.OK() {
		return FlattenResult{Message: resp.RetMsg}
	}

	if err := s.waitFlat(ctx, client, symbol); err != nil {
		return FlattenResult{Message: err.Error()}
	}

	return FlattenResult{Success: true, Message: "Позиция закрыта."}
}

// waitFlat опрашивает позицию до обнуления размера вместо фиксированной паузы:
// чтение сразу после закрытия может вернуть ещё не обновлённое состояние.
func (s *Submitter) waitFlat(ctx context.Context, client Client, symbol string) error {
	const delay = 500 * time.Millisecond
	attempts := int(s.flattenWait / delay)
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		pos, err := client.GetPosition(ctx, symbol)
		if errors.Is(err, models.ErrNoPosition) {
			return nil
		}
		if err != nil {
			continue
		}
		if size, err := decimal.NewFromString(pos.Size); err == nil && size.IsZero() {
			return nil
		}
	}

	s.log.WithFields(map[string]interface{}{
		"account": client.Name(),
		"symbol":  symbol,
		"waited":  s.flattenWait.String(),
	}).Warn("Позиция не подтвердила обнуление за отведённое время.")
	return nil
}
