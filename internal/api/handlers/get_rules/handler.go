package get_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset"
)

const (
	msgInvalidItemID     = "некорректный ID товара"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgItemNotFound      = "товар не настроен для бронирования"
	msgResourceNotFound  = "ресурс не настроен"
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

// HandleItem GET /api/v1/items/{itemId}/rules
func (h *Handler) HandleItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/rules - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	config, err := h.service.GetItemConfig(r.Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, ruleset.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/rules - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /items/{id}/rules - Failed to get config: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/rules - Config retrieved: item_id=%d, rules_count=%d",
		itemID, len(config.Rows))
	handlers.RespondJSON(w, http.StatusOK, FromItemConfig(config))
}

// HandleResource GET /api/v1/resources/{resourceId}/rules
func (h *Handler) HandleResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/rules - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	rows, err := h.service.GetResourceConfig(r.Context(), resourceID)
	if err != nil {
		switch {
		case errors.Is(err, ruleset.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/rules - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("GET /resources/{id}/rules - Failed to get rules: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/rules - Rules retrieved: resource_id=%d, rules_count=%d",
		resourceID, len(rows))
	handlers.RespondJSON(w, http.StatusOK, FromResourceRows(resourceID, rows))
}
