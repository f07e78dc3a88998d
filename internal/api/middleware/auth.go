package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth проверяет статический админский токен из заголовка.
// Сравнение за постоянное время, чтобы токен нельзя было подобрать
// по времени ответа.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "доступ запрещен")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
