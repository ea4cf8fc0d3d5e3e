package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	validateBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_booking"
)

const (
	msgInvalidItemID = "некорректный ID товара"
	msgMissingRange  = "параметры start и end обязательны"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/availability
// Query params: start (required, YYYY-MM-DD), end (required, YYYY-MM-DD),
// resourceId, timeSlot (HH:MM), quantity (default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	query := r.URL.Query()
	startStr := query.Get("start")
	endStr := query.Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /items/{id}/availability - Missing range boundaries")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(
		itemID,
		query.Get("resourceId"),
		startStr,
		endStr,
		query.Get("timeSlot"),
		query.Get("quantity"),
	)
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/availability - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /items/{id}/availability - Failed to check availability: item_id=%d, error=%v",
				itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /items/{id}/availability - Check completed: item_id=%d, feasible=%t, reason=%q",
		itemID, response.Feasible, response.FailureReason)
	handlers.RespondJSON(w, http.StatusOK, response)
}
