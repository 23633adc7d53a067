// Package webhook delivers JSON notifications to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/version"
	"go.uber.org/zap"
)

// Config holds the webhook client configuration.
type Config struct {
	URL     string
	Timeout time.Duration
}

// StatusError is returned when the endpoint answers with a 4xx or 5xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Client posts payloads to one URL.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New creates a webhook client. A zero timeout defaults to 10s.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.cfg.URL
}

// Send marshals payload and POSTs it. topic is only used for logging.
func (c *Client) Send(ctx context.Context, topic string, payload any) error {
	if c.cfg.URL == "" {
		return fmt.Errorf("webhook URL not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Forzashop-Webhook/"+version.Short())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("webhook delivery failed",
			zap.String("url", c.cfg.URL),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("webhook endpoint returned error",
			zap.String("url", c.cfg.URL),
			zap.String("topic", topic),
			zap.Int("status_code", resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	c.logger.Debug("webhook delivered",
		zap.String("topic", topic),
		zap.Int("status_code", resp.StatusCode),
	)
	return nil
}
