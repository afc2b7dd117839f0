package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlertService handles sent alert API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing sent alerts
type AlertListOptions struct {
	ListOptions
	CenterID string
	Type     string
	Days     int
}

// AcknowledgeRequest is the payload for acknowledging an alert
type AcknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledged_by"`
	ResponseAction string `json:"response_action,omitempty"`
}

// List retrieves sent alert history, newest first
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*Page[SentAlert], error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.CenterID != "" {
			query.Set("center_id", opts.CenterID)
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.Days > 0 {
			query.Set("days", strconv.Itoa(opts.Days))
		}
	}

	path := "/api/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[SentAlert]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get retrieves a single sent alert by ID
func (s *AlertService) Get(ctx context.Context, id string) (*SentAlert, error) {
	var alert SentAlert
	if err := s.client.doRequest(ctx, "GET", "/api/alerts/"+url.PathEscape(id), nil, &alert); err != nil {
		return nil, err
	}

	return &alert, nil
}

// Acknowledge marks an alert as acknowledged
func (s *AlertService) Acknowledge(ctx context.Context, id, by, action string) (*SentAlert, error) {
	req := AcknowledgeRequest{AcknowledgedBy: by, ResponseAction: action}

	var alert SentAlert
	if err := s.client.doRequest(ctx, "PATCH", "/api/alerts/"+url.PathEscape(id), req, &alert); err != nil {
		return nil, err
	}

	return &alert, nil
}

// Summary retrieves ledger summary statistics for the trailing window
func (s *AlertService) Summary(ctx context.Context, days int) (*AlertSummary, error) {
	path := "/api/alerts/summary"
	if days > 0 {
		path += fmt.Sprintf("?days=%d", days)
	}

	var summary AlertSummary
	if err := s.client.doRequest(ctx, "GET", path, nil, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}
