package ws

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

func (w *Watcher) authenticate() error {
	expires := time.Now().UnixMilli() + 5_000
	payload := fmt.Sprintf("GET/realtime%d", expires)

	mac := hmac.New(sha256.New, []byte(w.secret))
	mac.Write([]byte(payload))
	sign := hex.EncodeToString(mac.Sum(nil))

	msg := OpMessage{
		Op:   "auth",
		Args: []string{w.apiKey, fmt.Sprintf("%d", expires), sign},
	}

	if err := w.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("Не удалось авторизоваться: %w", err)
	}

	return nil
}

func (w *Watcher) subscribe() error {
	msg := OpMessage{
		Op:   "subscribe",
		Args: []string{"order", "execution"},
	}
	return w.conn.WriteJSON(msg)
}
