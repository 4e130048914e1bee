package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// Auth извлекает bearer-токен из заголовка Authorization и кладет его
// в контекст запроса. Запросы без токена отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondUnauthorized(w, "отсутствует заголовок Authorization")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondUnauthorized(w, "ожидается схема Bearer")
			return
		}

		ctx := salonapi.WithToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
