package handlers

import (
	"net/http"
	"time"

	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
)

// CronHandler exposes the scheduled evaluation entry points over HTTP.
// A hosted cron (or the in-process worker) hits these on its cadence.
type CronHandler struct {
	orchestrator *engine.Orchestrator
	clock        engine.Clock
	logger       *logger.Logger
}

// NewCronHandler creates a new cron handler
func NewCronHandler(orchestrator *engine.Orchestrator, clock engine.Clock, log *logger.Logger) *CronHandler {
	return &CronHandler{
		orchestrator: orchestrator,
		clock:        clock,
		logger:       log,
	}
}

type cronResponse struct {
	Success   bool                `json:"success"`
	Timestamp string              `json:"timestamp"`
	Date      string              `json:"date"`
	Result    *engine.SweepResult `json:"result"`
}

// EvaluateAlerts runs a full evaluation sweep across all active centers
func (h *CronHandler) EvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	h.runSweep(w, r)
}

// HourlyCheck is the hourly cadence entry point. It runs the same
// sweep; the gate keeps the two cadences from double-firing.
func (h *CronHandler) HourlyCheck(w http.ResponseWriter, r *http.Request) {
	h.runSweep(w, r)
}

func (h *CronHandler) runSweep(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()

	result, err := h.orchestrator.EvaluateAllCenters(r.Context(), now)
	if err != nil {
		h.logger.ErrorWithErr(err, "Evaluation sweep failed")
		utils.WriteErrorMessage(w, http.StatusInternalServerError, "SWEEP_FAILED", err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, cronResponse{
		Success:   true,
		Timestamp: now.Format(time.RFC3339),
		Date:      now.Format("2006-01-02"),
		Result:    result,
	})
}
