package client

import (
	"context"
	"net/url"
)

// RuleService handles alert rule administration API calls
type RuleService struct {
	client *Client
}

// RuleRequest is the payload for creating or updating an alert rule
type RuleRequest struct {
	Name            string   `json:"name"`
	TriggerType     string   `json:"trigger_type"`
	Threshold       float64  `json:"threshold"`
	Priority        string   `json:"priority"`
	Channels        []string `json:"channels"`
	RecipientRoles  []string `json:"recipient_roles,omitempty"`
	MessageTemplate string   `json:"message_template"`
	QuietHoursStart string   `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   string   `json:"quiet_hours_end,omitempty"`
	Enabled         *bool    `json:"enabled,omitempty"`
}

// List retrieves all alert rules
func (s *RuleService) List(ctx context.Context) ([]AlertRule, error) {
	var rules []AlertRule
	if err := s.client.doRequest(ctx, "GET", "/api/admin/alert-rules", nil, &rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// Get retrieves a single alert rule by ID
func (s *RuleService) Get(ctx context.Context, id string) (*AlertRule, error) {
	var rule AlertRule
	if err := s.client.doRequest(ctx, "GET", "/api/admin/alert-rules/"+url.PathEscape(id), nil, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Create creates a new alert rule
func (s *RuleService) Create(ctx context.Context, req RuleRequest) (*AlertRule, error) {
	var rule AlertRule
	if err := s.client.doRequest(ctx, "POST", "/api/admin/alert-rules", req, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Update updates an existing alert rule
func (s *RuleService) Update(ctx context.Context, id string, req RuleRequest) (*AlertRule, error) {
	var rule AlertRule
	if err := s.client.doRequest(ctx, "PUT", "/api/admin/alert-rules/"+url.PathEscape(id), req, &rule); err != nil {
		return nil, err
	}

	return &rule, nil
}

// Delete deletes an alert rule
func (s *RuleService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/admin/alert-rules/"+url.PathEscape(id), nil, nil)
}
