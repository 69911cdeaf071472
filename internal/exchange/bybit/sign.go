package bybit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Окно приёма запроса, требуется биржей в подписи и в заголовке.
const recvWindow = "5000"

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload строит строку timestamp + apiKey + recvWindow + payload и
// подписывает её HMAC-SHA256. Порядок конкатенации фиксирован протоколом v5,
// иначе биржа отклонит запрос. Для GET payload — отсортированная query-строка,
// для POST — сериализованное тело как есть.
func SignPayload(apiKey, secret, timestamp, payload string) string {
	return sign(secret, timestamp+apiKey+recvWindow+payload)
}
