package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// RuleService provides business logic for alert rule administration
type RuleService interface {
	Create(ctx context.Context, r *rule.AlertRule) (*rule.AlertRule, error)
	Get(ctx context.Context, id string) (*rule.AlertRule, error)
	Update(ctx context.Context, r *rule.AlertRule) (*rule.AlertRule, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*rule.AlertRule, error)
}

type ruleService struct {
	repo  rule.Repository
	clock engine.Clock
	log   *logger.Logger
}

// NewRuleService creates a new rule service
func NewRuleService(repo rule.Repository, clock engine.Clock, log *logger.Logger) RuleService {
	return &ruleService{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (s *ruleService) Create(ctx context.Context, r *rule.AlertRule) (*rule.AlertRule, error) {
	if err := validateRule(r); err != nil {
		return nil, err
	}

	r.ID = uuid.NewString()
	r.CreatedAt = s.clock.Now()
	r.UpdatedAt = r.CreatedAt
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, errors.DatabaseError("failed to create alert rule", err)
	}

	s.log.WithFields(map[string]interface{}{
		"rule_id": r.ID,
		"trigger": r.TriggerType,
	}).Info("alert rule created")

	return r, nil
}

func (s *ruleService) Get(ctx context.Context, id string) (*rule.AlertRule, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("alert rule")
	}
	return r, nil
}

func (s *ruleService) Update(ctx context.Context, r *rule.AlertRule) (*rule.AlertRule, error) {
	if err := validateRule(r); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		return nil, errors.NotFound("alert rule")
	}

	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, errors.DatabaseError("failed to update alert rule", err)
	}

	s.log.WithFields(map[string]interface{}{
		"rule_id": r.ID,
	}).Info("alert rule updated")

	return r, nil
}

func (s *ruleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.NotFound("alert rule")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.DatabaseError("failed to delete alert rule", err)
	}

	s.log.WithFields(map[string]interface{}{
		"rule_id": id,
	}).Info("alert rule deleted")

	return nil
}

func (s *ruleService) List(ctx context.Context) ([]*rule.AlertRule, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to list alert rules", err)
	}
	return rules, nil
}

func validateRule(r *rule.AlertRule) error {
	if r.Name == "" {
		return errors.BadRequest("rule name is required")
	}
	if r.MessageTemplate == "" {
		return errors.BadRequest("message template is required")
	}
	if !validTrigger(r.TriggerType) {
		return errors.BadRequest(fmt.Sprintf("unknown trigger type %q", r.TriggerType))
	}
	switch r.Priority {
	case rule.PriorityCritical, rule.PriorityHigh, rule.PriorityMedium, rule.PriorityLow:
	default:
		return errors.BadRequest(fmt.Sprintf("unknown priority %q", r.Priority))
	}
	if len(r.Channels) == 0 {
		return errors.BadRequest("at least one channel is required")
	}
	for _, ch := range r.Channels {
		switch ch {
		case rule.ChannelSlack, rule.ChannelEmail, rule.ChannelPush, rule.ChannelWhatsApp:
		default:
			return errors.BadRequest(fmt.Sprintf("unknown channel %q", ch))
		}
	}
	return nil
}

func validTrigger(t string) bool {
	for _, v := range rule.ValidTriggerTypes {
		if t == v {
			return true
		}
	}
	return false
}
