package client

import "context"

// CronService triggers evaluation sweeps
type CronService struct {
	client *Client
}

// EvaluateResponse is the cron endpoint response
type EvaluateResponse struct {
	Success   bool         `json:"success"`
	Timestamp string       `json:"timestamp"`
	Date      string       `json:"date"`
	Result    *SweepResult `json:"result"`
}

// Evaluate runs a full evaluation sweep across all active centers
func (s *CronService) Evaluate(ctx context.Context) (*EvaluateResponse, error) {
	var resp EvaluateResponse
	if err := s.client.doRequest(ctx, "POST", "/api/cron/evaluate-alerts", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// HourlyCheck runs the hourly cadence entry point
func (s *CronService) HourlyCheck(ctx context.Context) (*EvaluateResponse, error) {
	var resp EvaluateResponse
	if err := s.client.doRequest(ctx, "POST", "/api/cron/hourly-check", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
