package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

const (
	msgInvalidItemID    = "некорректный ID товара"
	msgMissingRange     = "параметры start и end обязательны"
	msgInvalidParams    = "некорректные параметры запроса"
	msgItemNotFound     = "товар не настроен для бронирования"
	msgResourceNotFound = "ресурс не настроен"
	msgRangeTooWide     = "слишком широкое окно календаря"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/calendar
// Query params: start (required, YYYY-MM-DD), end (required, YYYY-MM-DD),
// resourceId, timeSlot (HH:MM), utcOffset (минуты, для отображения)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/calendar - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	query := r.URL.Query()
	startStr := query.Get("start")
	endStr := query.Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /items/{id}/calendar - Missing range boundaries")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(
		itemID,
		query.Get("resourceId"),
		startStr,
		endStr,
		query.Get("timeSlot"),
		query.Get("utcOffset"),
	)
	if err != nil {
		h.logger.Warn("GET /items/{id}/calendar - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/calendar - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getCalendar.ErrResourceNotFound):
			h.logger.Warn("GET /items/{id}/calendar - Resource not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getCalendar.ErrRangeTooWide):
			h.logger.Warn("GET /items/{id}/calendar - Range too wide: item_id=%d", itemID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/calendar - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /items/{id}/calendar - Failed to build calendar: item_id=%d, error=%v",
				itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /items/{id}/calendar - Calendar built: item_id=%d, days=%d",
		itemID, len(response.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
