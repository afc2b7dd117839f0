package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/centerpulse/centerpulse/internal/api/dto"
	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
	"github.com/centerpulse/centerpulse/internal/pkg/validator"
	"github.com/centerpulse/centerpulse/internal/services"
)

// AlertHandler serves the sent alert ledger
type AlertHandler struct {
	service   services.SentAlertService
	clock     engine.Clock
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service services.SentAlertService, clock engine.Clock, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{service: service, clock: clock, logger: log, validator: val}
}

// List returns sent alert history with pagination and filtering
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	filter := sentalert.Filter{
		CenterID:  r.URL.Query().Get("center_id"),
		AlertType: r.URL.Query().Get("type"),
	}
	if days, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && days > 0 {
		filter.Since = h.clock.Now().AddDate(0, 0, -days)
	}

	alerts, total, err := h.service.History(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err, "Failed to list alerts")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(alerts, params.Page, params.PageSize, total))
}

// Get returns a single sent alert by ID
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get alert")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}

// Acknowledge marks an alert as acknowledged. Re-acknowledging is a
// no-op that still returns the row.
func (h *AlertHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	var req dto.AcknowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	a, err := h.service.Acknowledge(r.Context(), chi.URLParam(r, "id"), req.AcknowledgedBy, req.ResponseAction)
	if err != nil {
		writeServiceError(w, err, "Failed to acknowledge alert")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}

// GetSummary returns ledger summary statistics over a trailing window
func (h *AlertHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	summary, err := h.service.Summary(r.Context(), days)
	if err != nil {
		writeServiceError(w, err, "Failed to summarize alerts")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// writeServiceError unwraps AppErrors from the service layer so their
// status codes survive to the response
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}
