package handler

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// requireAdminToken guards the catalog admin routes with a static bearer
// token. An empty token disables them.
func requireAdminToken(token string, log *zap.Logger, next http.HandlerFunc) http.HandlerFunc {
	want := []byte("Bearer " + token)
	return func(w http.ResponseWriter, r *http.Request) {
		if token == "" {
			log.Warn("catalog admin called without ADMIN_TOKEN", zap.String("path", r.URL.Path))
			http.Error(w, "catalog admin disabled: ADMIN_TOKEN not set", http.StatusInternalServerError)
			return
		}
		got := []byte(r.Header.Get("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			log.Warn("catalog admin unauthorized", zap.String("path", r.URL.Path))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
