package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"hookbot/internal/logger"
)

// Watcher слушает приватный поток ордеров и исполнений одного аккаунта и
// пишет их в журнал. REST-конвейер от него не зависит.
type Watcher struct {
	url     string
	account string
	apiKey  string
	secret  string
	log     *logger.Logger
	conn    *websocket.Conn

	reconnectMin time.Duration
	reconnectMax time.Duration
}

type Message struct {
	Topic string          `json:"topic"`
	Type  string          `json:"type"`
	TS    int64           `json:"ts"`
	Data  json.RawMessage `json:"data"`
}

type OpMessage struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}
