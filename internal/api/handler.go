package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"hookbot/internal/models"
)

type webhookPayload struct {
	models.OrderRequest
	// TradingView умеет заворачивать сигнал в текстовое поле.
	Message string `json:"message"`
}

func (s *Server) handleWebhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, models.WebhookResponse{
			Status:  "error",
			Message: "Пустое тело запроса.",
			Results: []models.AccountOrderResult{},
		})
		return
	}

	req, err := parseSignal(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.WebhookResponse{
			Status:  "error",
			Message: err.Error(),
			Results: []models.AccountOrderResult{},
		})
		return
	}

	if err := req.Validate(); err != nil {
		s.log.WithComponent("api").WithError(err).Warn("Сигнал не прошёл проверку.")
		c.JSON(http.StatusBadRequest, models.WebhookResponse{
			Status:  "error",
			Message: err.Error(),
			Results: []models.AccountOrderResult{},
		})
		return
	}

	if s.submitter.Accounts() == 0 {
		c.JSON(http.StatusInternalServerError, models.WebhookResponse{
			Status:  "error",
			Message: "Нет настроенных аккаунтов.",
			Results: []models.AccountOrderResult{},
		})
		return
	}

	results := s.submitter.SubmitAll(c.Request.Context(), req)

	// Общий успех — хотя бы один аккаунт поставил ордер; по-аккаунтные
	// гарантии читаются из списка results.
	anySuccess := false
	for _, res := range results {
		if res.Success {
			anySuccess = true
			break
		}
	}

	if anySuccess {
		c.JSON(http.StatusOK, models.WebhookResponse{Status: "success", Results: results})
		return
	}
	c.JSON(http.StatusBadRequest, models.WebhookResponse{Status: "error", Results: results})
}

// Сигнал приходит либо JSON-объектом с полями ордера, либо позиционной
// строкой, в том числе внутри поля message.
func parseSignal(raw []byte) (models.OrderRequest, error) {
	text := strings.TrimSpace(string(raw))

	if strings.HasPrefix(text, "{") {
		var payload webhookPayload
		if err := jsoniter.Unmarshal(raw, &payload); err == nil {
			if payload.Symbol == "" && payload.Message != "" {
				return models.ParseDelimited(payload.Message)
			}
			return payload.OrderRequest, nil
		}
	}

	return models.ParseDelimited(text)
}
