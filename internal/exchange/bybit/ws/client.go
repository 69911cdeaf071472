package ws

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hookbot/internal/logger"
	"hookbot/internal/models"
)

func NewWatcher(url string, account models.Account, log *logger.Logger) *Watcher {
	return &Watcher{
		url:          url,
		account:      account.Name,
		apiKey:       account.ApiKey,
		secret:       account.Secret,
		log:          log,
		reconnectMin: 1 * time.Second,
		reconnectMax: 30 * time.Second,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	w.logEntry().WithField("url", w.url).Info("Подключение к приватному потоку.")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("Не удалось подключиться к WS: %w", err)
	}

	w.conn = conn
	w.conn.SetReadLimit(2 << 20)

	if err := w.authenticate(); err != nil {
		return err
	}
	if err := w.subscribe(); err != nil {
		return fmt.Errorf("Не удалось подписаться на поток: %w", err)
	}

	w.logEntry().Info("Поток ордеров подключён.")

	go w.readLoop(ctx)

	return nil
}

func (w *Watcher) logEntry() *logrus.Entry {
	return w.log.WithComponent("bybit_ws").WithField("account", w.account)
}
