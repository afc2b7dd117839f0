package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/centerpulse/centerpulse/internal/api/dto"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
	"github.com/centerpulse/centerpulse/internal/pkg/validator"
	"github.com/centerpulse/centerpulse/internal/services"
)

// RuleHandler serves alert rule administration
type RuleHandler struct {
	service   services.RuleService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(service services.RuleService, log *logger.Logger, val *validator.Validator) *RuleHandler {
	return &RuleHandler{service: service, logger: log, validator: val}
}

// List returns all alert rules
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list alert rules")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rules)
}

// Get returns a single alert rule by ID
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	rl, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get alert rule")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rl)
}

// Create creates a new alert rule
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRule(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), ruleFromRequest(req))
	if err != nil {
		writeServiceError(w, err, "Failed to create alert rule")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Update updates an existing alert rule
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRule(w, r)
	if !ok {
		return
	}

	rl := ruleFromRequest(req)
	rl.ID = chi.URLParam(r, "id")

	updated, err := h.service.Update(r.Context(), rl)
	if err != nil {
		writeServiceError(w, err, "Failed to update alert rule")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete deletes an alert rule
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to delete alert rule")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Alert rule deleted", nil)
}

func (h *RuleHandler) decodeRule(w http.ResponseWriter, r *http.Request) (*dto.CreateRuleRequest, bool) {
	var req dto.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return nil, false
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return nil, false
	}

	return &req, true
}

func ruleFromRequest(req *dto.CreateRuleRequest) *rule.AlertRule {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	return &rule.AlertRule{
		Name:            req.Name,
		TriggerType:     req.TriggerType,
		Threshold:       req.Threshold,
		Priority:        req.Priority,
		Channels:        req.Channels,
		RecipientRoles:  req.RecipientRoles,
		MessageTemplate: req.MessageTemplate,
		QuietHoursStart: req.QuietHoursStart,
		QuietHoursEnd:   req.QuietHoursEnd,
		Enabled:         enabled,
	}
}
