package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookClient posts system events to the operations webhook endpoint.
// All calls go through the circuit breaker so a downed endpoint fails fast
// instead of tying up alert delivery workers.
type WebhookClient struct {
	client *resty.Client
	url    string
	cb     *CircuitBreaker
}

func NewWebhookClient(url string, cb *CircuitBreaker) *WebhookClient {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")
	return &WebhookClient{client: client, url: url, cb: cb}
}

// Post sends the payload as JSON. Non-2xx responses count as failures.
func (c *WebhookClient) Post(ctx context.Context, payload interface{}) error {
	return c.cb.Execute(func() error {
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(payload).
			Post(c.url)
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("webhook: endpoint returned %d", resp.StatusCode())
		}
		return nil
	})
}
