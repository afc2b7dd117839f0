package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
	"github.com/centerpulse/centerpulse/internal/pkg/validator"
	"github.com/centerpulse/centerpulse/internal/services"
)

// SalesHandler announces new sale entries
type SalesHandler struct {
	service   services.SaleNotificationService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service services.SaleNotificationService, log *logger.Logger, val *validator.Validator) *SalesHandler {
	return &SalesHandler{service: service, logger: log, validator: val}
}

// Notify pushes a new-sale notification to slack, email and push
func (h *SalesHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req services.SaleNotification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	results, err := h.service.NotifySale(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to dispatch sale notification")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, results)
}
