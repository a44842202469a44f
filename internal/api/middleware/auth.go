package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/mrgoksal/Chilliwili/internal/api/handlers"
)

const (
	adminTokenHeader = "X-Admin-Token"

	msgUnauthorized = "требуется токен администратора"
)

// AdminAuth проверяет токен администратора в заголовке X-Admin-Token.
// Сравнение за постоянное время, чтобы не утекала длина совпавшего префикса.
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("AdminAuth: unauthorized request %s %s", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
