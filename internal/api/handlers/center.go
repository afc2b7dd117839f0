package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/centerpulse/centerpulse/internal/api/dto"
	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
	"github.com/centerpulse/centerpulse/internal/pkg/validator"
	"github.com/centerpulse/centerpulse/internal/services"
)

// CenterHandler serves center administration
type CenterHandler struct {
	service   services.CenterService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewCenterHandler creates a new center handler
func NewCenterHandler(service services.CenterService, log *logger.Logger, val *validator.Validator) *CenterHandler {
	return &CenterHandler{service: service, logger: log, validator: val}
}

// List returns all centers
func (h *CenterHandler) List(w http.ResponseWriter, r *http.Request) {
	centers, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list centers")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, centers)
}

// Get returns a single center by ID
func (h *CenterHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get center")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, c)
}

// Create creates a new center
func (h *CenterHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCenter(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), centerFromRequest(req))
	if err != nil {
		writeServiceError(w, err, "Failed to create center")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// Update updates an existing center
func (h *CenterHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCenter(w, r)
	if !ok {
		return
	}

	c := centerFromRequest(req)
	c.ID = chi.URLParam(r, "id")

	updated, err := h.service.Update(r.Context(), c)
	if err != nil {
		writeServiceError(w, err, "Failed to update center")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete deletes a center
func (h *CenterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to delete center")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Center deleted", nil)
}

func (h *CenterHandler) decodeCenter(w http.ResponseWriter, r *http.Request) (*dto.CreateCenterRequest, bool) {
	var req dto.CreateCenterRequest
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

func centerFromRequest(req *dto.CreateCenterRequest) *center.Center {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &center.Center{
		Name:             req.Name,
		Region:           req.Region,
		Location:         req.Location,
		DailySalesTarget: req.DailySalesTarget,
		Active:           active,
	}
}
