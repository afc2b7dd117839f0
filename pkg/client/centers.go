package client

import (
	"context"
	"net/url"
)

// CenterService handles center administration API calls
type CenterService struct {
	client *Client
}

// CenterRequest is the payload for creating or updating a center
type CenterRequest struct {
	Name             string `json:"name"`
	Region           string `json:"region,omitempty"`
	Location         string `json:"location,omitempty"`
	DailySalesTarget int    `json:"daily_sales_target"`
	Active           *bool  `json:"active,omitempty"`
}

// List retrieves all centers
func (s *CenterService) List(ctx context.Context) ([]Center, error) {
	var centers []Center
	if err := s.client.doRequest(ctx, "GET", "/api/admin/centers", nil, &centers); err != nil {
		return nil, err
	}

	return centers, nil
}

// Get retrieves a single center by ID
func (s *CenterService) Get(ctx context.Context, id string) (*Center, error) {
	var c Center
	if err := s.client.doRequest(ctx, "GET", "/api/admin/centers/"+url.PathEscape(id), nil, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Create creates a new center
func (s *CenterService) Create(ctx context.Context, req CenterRequest) (*Center, error) {
	var c Center
	if err := s.client.doRequest(ctx, "POST", "/api/admin/centers", req, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Update updates an existing center
func (s *CenterService) Update(ctx context.Context, id string, req CenterRequest) (*Center, error) {
	var c Center
	if err := s.client.doRequest(ctx, "PUT", "/api/admin/centers/"+url.PathEscape(id), req, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Delete deletes a center
func (s *CenterService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/admin/centers/"+url.PathEscape(id), nil, nil)
}
