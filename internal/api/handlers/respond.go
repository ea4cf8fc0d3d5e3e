package handlers

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON декодирует тело запроса в указанную структуру,
// отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ErrorResponse стандартная форма ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON отправляет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondBadRequest отправляет 400 с сообщением
func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// RespondUnauthorized отправляет 401 с сообщением
func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: msg})
}

// RespondForbidden отправляет 403 с сообщением
func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusForbidden, ErrorResponse{Error: msg})
}

// RespondNotFound отправляет 404 с сообщением
func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: msg})
}

// RespondInternalError отправляет 500 с обезличенным сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "внутренняя ошибка сервиса"})
}
