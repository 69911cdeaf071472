package bybit

import (
	"net/http"
	"time"

	"hookbot/internal/logger"
	"hookbot/internal/models"
)

type Client struct {
	baseURL string
	name    string
	apiKey  string
	secret  string

	httpClient *http.Client
	log        *logger.Logger
}

func New(account models.Account, log *logger.Logger) *Client {
	return &Client{
		baseURL: account.BaseUrl,
		name:    account.Name,
		apiKey:  account.ApiKey,
		secret:  account.Secret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

func (c *Client) Name() string {
	return c.name
}
