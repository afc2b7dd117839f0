package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// CenterService provides business logic for center administration
type CenterService interface {
	Create(ctx context.Context, c *center.Center) (*center.Center, error)
	Get(ctx context.Context, id string) (*center.Center, error)
	Update(ctx context.Context, c *center.Center) (*center.Center, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*center.Center, error)
}

type centerService struct {
	repo  center.Repository
	clock engine.Clock
	log   *logger.Logger
}

// NewCenterService creates a new center service
func NewCenterService(repo center.Repository, clock engine.Clock, log *logger.Logger) CenterService {
	return &centerService{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (s *centerService) Create(ctx context.Context, c *center.Center) (*center.Center, error) {
	if c.Name == "" {
		return nil, errors.BadRequest("center name is required")
	}
	if c.DailySalesTarget < 0 {
		return nil, errors.BadRequest("daily sales target cannot be negative")
	}

	c.ID = uuid.NewString()
	c.CreatedAt = s.clock.Now()
	c.UpdatedAt = c.CreatedAt
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errors.DatabaseError("failed to create center", err)
	}

	s.log.WithFields(map[string]interface{}{
		"center_id": c.ID,
		"name":      c.Name,
	}).Info("center created")

	return c, nil
}

func (s *centerService) Get(ctx context.Context, id string) (*center.Center, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("center")
	}
	return c, nil
}

func (s *centerService) Update(ctx context.Context, c *center.Center) (*center.Center, error) {
	if c.DailySalesTarget < 0 {
		return nil, errors.BadRequest("daily sales target cannot be negative")
	}

	existing, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, errors.NotFound("center")
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, errors.DatabaseError("failed to update center", err)
	}

	s.log.WithFields(map[string]interface{}{
		"center_id": c.ID,
	}).Info("center updated")

	return c, nil
}

func (s *centerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.NotFound("center")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.DatabaseError("failed to delete center", err)
	}

	s.log.WithFields(map[string]interface{}{
		"center_id": id,
	}).Info("center deleted")

	return nil
}

func (s *centerService) List(ctx context.Context) ([]*center.Center, error) {
	centers, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to list centers", err)
	}
	return centers, nil
}
