package ws

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

func (w *Watcher) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.conn.Close()
			return
		default:
		}

		_, data, err := w.conn.ReadMessage()
		if err != nil {
			w.logEntry().WithError(err).Warn("Ошибка чтения WS.")

			if !w.reconnect(ctx) {
				return
			}
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			w.logEntry().WithError(err).Warn("Не удалось разобрать WS сообщение.")
			continue
		}

		switch {
		case strings.HasPrefix(msg.Topic, "order"):
			w.handleOrder(msg)
		case strings.HasPrefix(msg.Topic, "execution"):
			w.handleExecution(msg)
		}
	}
}

func (w *Watcher) reconnect(ctx context.Context) bool {
	backoff := w.reconnectMin

	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}

		w.logEntry().Info("Попытка переподключения к WS.")

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.url, nil)
		if err != nil {
			w.logEntry().WithError(err).Warn("Не удалось переподключиться к WS.")
			backoff = w.nextBackoff(backoff)
			continue
		}

		if w.conn != nil {
			_ = w.conn.Close()
		}

		w.conn = conn
		w.conn.SetReadLimit(2 << 20)

		if err := w.authenticate(); err != nil {
			w.logEntry().WithError(err).Warn("Не удалось повторно авторизоваться в WS.")
			backoff = w.nextBackoff(backoff)
			continue
		}

		if err := w.subscribe(); err != nil {
			w.logEntry().WithError(err).Warn("Не удалось повторно подписаться на WS.")
			backoff = w.nextBackoff(backoff)
			continue
		}

		w.logEntry().Info("WS переподключён, подписки восстановлены.")
		return true
	}
}

func (w *Watcher) nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > w.reconnectMax {
		return w.reconnectMax
	}
	return next
}

func (w *Watcher) handleOrder(msg Message) {
	var data []struct {
		OrderID      string `json:"orderId"`
		OrderLink    string `json:"orderLinkId"`
		Symbol       string `json:"symbol"`
		Side         string `json:"side"`
		OrderType    string `json:"orderType"`
		Price        string `json:"price"`
		Qty          string `json:"qty"`
		LeavesQty    string `json:"leavesQty"`
		OrderStatus  string `json:"orderStatus"`
		CancelType   string `json:"cancelType"`
		RejectReason string `json:"rejectReason"`
	}

	if err := json.Unmarshal(msg.Data, &data); err != nil {
		w.logEntry().WithError(err).Warn("Не удалось разобрать order.")
		return
	}

	for _, item := range data {
		w.logEntry().WithFields(map[string]interface{}{
			"symbol":        item.Symbol,
			"side":          item.Side,
			"order_id":      item.OrderID,
			"order_link_id": item.OrderLink,
			"type":          item.OrderType,
			"status":        item.OrderStatus,
			"cancel_type":   item.CancelType,
			"reject_reason": item.RejectReason,
			"price":         item.Price,
			"qty":           item.Qty,
			"leaves_qty":    item.LeavesQty,
		}).Info("Обновление ордера.")
	}
}

func (w *Watcher) handleExecution(msg Message) {
	var data []struct {
		OrderID   string `json:"orderId"`
		OrderLink string `json:"orderLinkId"`
		ExecID    string `json:"execId"`
		Symbol    string `json:"symbol"`
		Side      string `json:"side"`
		ExecPrice string `json:"execPrice"`
		ExecQty   string `json:"execQty"`
		ExecTime  string `json:"execTime"`
	}

	if err := json.Unmarshal(msg.Data, &data); err != nil {
		w.logEntry().WithError(err).Warn("Не удалось разобрать execution.")
		return
	}

	for _, item := range data {
		w.logEntry().WithFields(map[string]interface{}{
			"symbol":        item.Symbol,
			"side":          item.Side,
			"exec_id":       item.ExecID,
			"order_id":      item.OrderID,
			"order_link_id": item.OrderLink,
			"price":         item.ExecPrice,
			"qty":           item.ExecQty,
			"ts":            item.ExecTime,
		}).Info("Исполнение.")
	}
}
