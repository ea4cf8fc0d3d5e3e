package update_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset"
)

const (
	msgInvalidItemID      = "некорректный ID товара"
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация правил"
)

type Handler struct {
	service RulesetService
	logger  Logger
}

func NewHandler(service RulesetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleItem PUT /api/v1/items/{itemId}/rules
// Заменяет конфигурацию товара целиком; частичных обновлений нет
func (h *Handler) HandleItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /items/{id}/rules - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	var req UpdateItemConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /items/{id}/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToServiceInput()
	if err != nil {
		h.logger.Warn("PUT /items/{id}/rules - Invalid config payload: item_id=%d, error=%v", itemID, err)
		handlers.RespondBadRequest(w, msgInvalidConfig)
		return
	}

	if err := h.service.UpdateItemConfig(r.Context(), itemID, input); err != nil {
		switch {
		case errors.Is(err, ruleset.ErrInvalidConfiguration), errors.Is(err, ruleset.ErrInvalidInput):
			h.logger.Warn("PUT /items/{id}/rules - Invalid configuration: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /items/{id}/rules - Failed to update config: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /items/{id}/rules - Config updated successfully: item_id=%d", itemID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleResource PUT /api/v1/resources/{resourceId}/rules
// Заменяет набор правил ресурса целиком
func (h *Handler) HandleResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/rules - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req UpdateResourceRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateResourceRules(r.Context(), resourceID, req.ToServiceInputs()); err != nil {
		switch {
		case errors.Is(err, ruleset.ErrInvalidConfiguration), errors.Is(err, ruleset.ErrInvalidInput):
			h.logger.Warn("PUT /resources/{id}/rules - Invalid configuration: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /resources/{id}/rules - Failed to update rules: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id}/rules - Rules updated successfully: resource_id=%d", resourceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
