package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Compile-time interface guards.
var (
	_ Source         = (*HTTPGateway)(nil)
	_ SettingsWriter = (*HTTPGateway)(nil)
)

// HTTPGateway reads and writes theme settings through the REST settings API.
type HTTPGateway struct {
	baseURL string // e.g. http://localhost:8080/api/v1
	token   string
	client  *http.Client
}

// NewHTTPGateway creates a gateway against apiBase. token is sent as a
// bearer token on writes when non-empty.
func NewHTTPGateway(apiBase, token string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(apiBase, "/"),
		token:   token,
		client:  client,
	}
}

// Fetch returns every persisted settings record.
func (g *HTTPGateway) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/settings", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return records, nil
}

// BulkUpsert sends records in a single PUT.
func (g *HTTPGateway) BulkUpsert(ctx context.Context, records []Record) error {
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.baseURL+"/settings/bulk", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("bulk upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return responseError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// responseError surfaces the problem detail the backend sent, falling back
// to the status line.
func responseError(resp *http.Response) error {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &problem) == nil && problem.Detail != "" {
		return fmt.Errorf("settings api: %s (%d)", problem.Detail, resp.StatusCode)
	}
	return fmt.Errorf("settings api: unexpected status %s", resp.Status)
}
