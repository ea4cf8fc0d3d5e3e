package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// HeaderManagerID заголовок с идентификатором менеджера.
// Проверка подлинности выполняется на API-шлюзе; здесь только наличие
const HeaderManagerID = "X-Manager-ID"

const msgManagerRequired = "требуется заголовок X-Manager-ID"

// Auth пропускает только запросы с идентификатором менеджера.
// Вешается на мутирующие маршруты конфигурации
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderManagerID) == "" {
			handlers.RespondUnauthorized(w, msgManagerRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
