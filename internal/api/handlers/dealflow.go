package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/centerpulse/centerpulse/internal/api/dto"
	"github.com/centerpulse/centerpulse/internal/domain/dealflow"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
	"github.com/centerpulse/centerpulse/internal/pkg/validator"
)

// DealFlowHandler ingests daily deal flow rows and DQ items. The
// metrics provider derives every per-center KPI from these tables.
type DealFlowHandler struct {
	repo      dealflow.Repository
	clock     engine.Clock
	logger    *logger.Logger
	validator *validator.Validator
}

// NewDealFlowHandler creates a new deal flow handler
func NewDealFlowHandler(repo dealflow.Repository, clock engine.Clock, log *logger.Logger, val *validator.Validator) *DealFlowHandler {
	return &DealFlowHandler{repo: repo, clock: clock, logger: log, validator: val}
}

// CreateEntry ingests one deal flow row
func (h *DealFlowHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.DealFlowEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	entry := &dealflow.Entry{
		ID:           uuid.NewString(),
		CenterID:     req.CenterID,
		AgentName:    req.AgentName,
		CustomerName: req.CustomerName,
		Status:       req.Status,
		CallResult:   req.CallResult,
		EntryDate:    req.EntryDate,
		CreatedAt:    h.clock.Now(),
	}
	if err := h.repo.InsertEntry(r.Context(), entry); err != nil {
		writeServiceError(w, err, "Failed to insert deal flow entry")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, entry)
}

// CreateDQ ingests one disqualified lead
func (h *DealFlowHandler) CreateDQ(w http.ResponseWriter, r *http.Request) {
	var req dto.DQItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	item := &dealflow.DQItem{
		ID:        uuid.NewString(),
		CenterID:  req.CenterID,
		Category:  req.Category,
		EntryDate: req.EntryDate,
		CreatedAt: h.clock.Now(),
	}
	if err := h.repo.InsertDQ(r.Context(), item); err != nil {
		writeServiceError(w, err, "Failed to insert DQ item")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, item)
}

// ListEntries returns the deal flow for one center and date
func (h *DealFlowHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	centerID := r.URL.Query().Get("center_id")
	date := r.URL.Query().Get("date")
	if centerID == "" || date == "" {
		utils.WriteError(w, errors.BadRequest("center_id and date are required"))
		return
	}

	entries, err := h.repo.ListByCenterDate(r.Context(), centerID, date)
	if err != nil {
		writeServiceError(w, err, "Failed to list deal flow entries")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, entries)
}
