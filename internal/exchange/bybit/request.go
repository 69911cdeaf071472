package bybit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Response — единый результат любого вызова биржи. Транспортные сбои тоже
// сворачиваются в него (RetCode -1), наружу сырые ошибки не выходят:
// каждый вызывающий проверяет только RetCode == 0.
type Response struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

func (r Response) OK() bool {
	return r.RetCode == 0
}

func transportFailure(err error) Response {
	return Response{RetCode: -1, RetMsg: err.Error()}
}

func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body any) Response {
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return transportFailure(fmt.Errorf("Не удалось подготовить тело запроса: %w", err))
		}
		bodyStr = string(payload)
		bodyReader = bytes.NewReader(payload)
	}

	urlStr := c.baseURL + path
	if len(params) > 0 {
		urlStr += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, bodyReader)
	if err != nil {
		return transportFailure(fmt.Errorf("Не удалось создать запрос: %w", err))
	}

	// Подпись строится заново на каждый вызов: свежий timestamp обязателен
	// даже при повторе того же логического запроса.
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	query := ""
	if method == http.MethodGet && len(params) > 0 {
		query = params.Encode()
	}
	signature := SignPayload(c.apiKey, c.secret, timestamp, query+bodyStr)

	req.Header.Set("X-BAPI-API-KEY", c.apiKey)
	req.Header.Set("X-BAPI-SIGN", signature)
	req.Header.Set("X-BAPI-TIMESTAMP", timestamp)
	req.Header.Set("X-BAPI-RECV-WINDOW", recvWindow)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure(fmt.Errorf("Ошибка запроса: %w", err))
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(fmt.Errorf("Не удалось прочитать ответ: %w", err))
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode >= 400 {
			return transportFailure(fmt.Errorf("Неуспешный статус: %s", resp.Status))
		}
		return transportFailure(fmt.Errorf("Не удалось разобрать ответ: %w", err))
	}

	if out.RetCode != 0 {
		c.log.WithFields(map[string]interface{}{
			"account":  c.name,
			"path":     path,
			"ret_code": out.RetCode,
			"ret_msg":  out.RetMsg,
		}).Warn("Биржа вернула ошибку.")
	}

	return out
}
