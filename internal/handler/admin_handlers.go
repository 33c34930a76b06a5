package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const catalogReloadTimeout = 30 * time.Second

func RegisterAdminHandlers(r *mux.Router, admin service.AdminService, adminToken string, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	r.HandleFunc("/admin/catalog", requireAdminToken(adminToken, log, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(admin.CatalogInfo())
	})).Methods(http.MethodGet)

	r.HandleFunc("/admin/catalog/reload", requireAdminToken(adminToken, log, func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), catalogReloadTimeout)
		defer cancel()

		info, err := admin.ReloadCatalog(ctx)
		if err != nil {
			log.Warn("admin catalog reload failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		log.Info("catalog reloaded", zap.Int("movies", info.Movies))
		_ = json.NewEncoder(w).Encode(info)
	})).Methods(http.MethodPost)
}
