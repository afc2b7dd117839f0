package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the main CenterPulse API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	cronSecret string
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // API base URL (e.g., "https://centerpulse.example.com")
	CronSecret string        // Optional secret for the cron endpoints
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new CenterPulse API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		cronSecret: cfg.CronSecret,
	}
}

// SetCronSecret sets the bearer secret for the cron endpoints
func (c *Client) SetCronSecret(secret string) {
	c.cronSecret = secret
}

// envelope is the standard API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *errorDetail    `json:"error"`
}

type errorDetail struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// doRequest performs an HTTP request and unwraps the response envelope
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cronSecret != "" {
		req.Header.Set("Authorization", "Bearer "+c.cronSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil || env.Error == nil {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
		}
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	// Cron responses are not wrapped in the standard envelope
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if env.Data == nil {
		return json.Unmarshal(respBody, result)
	}
	return json.Unmarshal(env.Data, result)
}

// Alerts returns the sent alert service
func (c *Client) Alerts() *AlertService {
	return &AlertService{client: c}
}

// Cron returns the scheduled evaluation service
func (c *Client) Cron() *CronService {
	return &CronService{client: c}
}

// Rules returns the alert rule administration service
func (c *Client) Rules() *RuleService {
	return &RuleService{client: c}
}

// Centers returns the center administration service
func (c *Client) Centers() *CenterService {
	return &CenterService{client: c}
}
