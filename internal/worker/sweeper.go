package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// Sweeper runs evaluation sweeps on a cron cadence. It is the
// in-process counterpart of the /api/cron endpoints: both call the
// same orchestrator entry point, and the cooldown gate keeps the two
// cadences from double-firing.
type Sweeper struct {
	orchestrator *engine.Orchestrator
	clock        engine.Clock
	cfg          config.AlertingConfig
	logger       *logger.Logger

	scheduler    *cron.Cron
	isRunning    bool
	runningMutex sync.Mutex
}

// NewSweeper creates a new evaluation sweeper
func NewSweeper(orchestrator *engine.Orchestrator, clock engine.Clock, cfg config.AlertingConfig, log *logger.Logger) *Sweeper {
	return &Sweeper{
		orchestrator: orchestrator,
		clock:        clock,
		cfg:          cfg,
		logger:       log,
	}
}

// Start registers the sweep schedules and starts the scheduler
func (s *Sweeper) Start() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("sweeper is already running")
	}

	s.scheduler = cron.New()

	if _, err := s.scheduler.AddFunc(s.cfg.SweepSchedule, func() { s.runSweep("sweep") }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.cfg.SweepSchedule, err)
	}
	if _, err := s.scheduler.AddFunc(s.cfg.HourlySchedule, func() { s.runSweep("hourly") }); err != nil {
		return fmt.Errorf("invalid hourly schedule %q: %w", s.cfg.HourlySchedule, err)
	}

	s.scheduler.Start()
	s.isRunning = true

	s.logger.WithFields(map[string]interface{}{
		"sweep_schedule":  s.cfg.SweepSchedule,
		"hourly_schedule": s.cfg.HourlySchedule,
	}).Info("Evaluation sweeper started")

	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.scheduler.Stop()
	<-ctx.Done()
	s.isRunning = false

	s.logger.Info("Evaluation sweeper stopped")
}

func (s *Sweeper) runSweep(cadence string) {
	ctx := context.Background()
	now := s.clock.Now()

	result, err := s.orchestrator.EvaluateAllCenters(ctx, now)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"cadence": cadence,
		}).ErrorWithErr(err, "Scheduled evaluation sweep failed")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"cadence": cadence,
		"fired":   result.Fired,
		"errors":  result.Errors,
	}).Info("Scheduled evaluation sweep completed")
}
