package services

import (
	"context"

	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// SentAlertService provides business logic over the sent alert ledger
type SentAlertService interface {
	// History retrieves sent alerts, newest first
	History(ctx context.Context, filter sentalert.Filter, limit, offset int) ([]*sentalert.SentAlert, int64, error)

	// Get retrieves a single sent alert
	Get(ctx context.Context, id string) (*sentalert.SentAlert, error)

	// Acknowledge marks an alert as acknowledged. Acknowledging an
	// already-acknowledged alert is a successful no-op; the original
	// acknowledger is never overwritten.
	Acknowledge(ctx context.Context, id, by, action string) (*sentalert.SentAlert, error)

	// Summary aggregates the ledger over the trailing number of days
	Summary(ctx context.Context, days int) (*sentalert.Summary, error)
}

type sentAlertService struct {
	repo  sentalert.Repository
	clock engine.Clock
	log   *logger.Logger
}

// NewSentAlertService creates a new sent alert service
func NewSentAlertService(repo sentalert.Repository, clock engine.Clock, log *logger.Logger) SentAlertService {
	return &sentAlertService{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (s *sentAlertService) History(ctx context.Context, filter sentalert.Filter, limit, offset int) ([]*sentalert.SentAlert, int64, error) {
	alerts, total, err := s.repo.ListWithPagination(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list sent alerts", err)
	}
	return alerts, total, nil
}

func (s *sentAlertService) Get(ctx context.Context, id string) (*sentalert.SentAlert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("alert")
	}
	return a, nil
}

func (s *sentAlertService) Acknowledge(ctx context.Context, id, by, action string) (*sentalert.SentAlert, error) {
	if by == "" {
		return nil, errors.BadRequest("acknowledged_by is required")
	}

	updated, err := s.repo.Acknowledge(ctx, id, by, action, s.clock.Now())
	if err != nil {
		return nil, errors.DatabaseError("failed to acknowledge alert", err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("alert")
	}

	if updated {
		s.log.WithFields(map[string]interface{}{
			"alert_id": id,
			"by":       by,
		}).Info("alert acknowledged")
	}

	return a, nil
}

func (s *sentAlertService) Summary(ctx context.Context, days int) (*sentalert.Summary, error) {
	if days <= 0 {
		days = 7
	}
	since := s.clock.Now().AddDate(0, 0, -days)
	summary, err := s.repo.Summarize(ctx, since)
	if err != nil {
		return nil, errors.DatabaseError("failed to summarize alerts", err)
	}
	return summary, nil
}
