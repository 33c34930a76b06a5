package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
	"github.com/ArtemMoroz51/MovieQuiz/internal/service"
	"github.com/ArtemMoroz51/MovieQuiz/internal/ws"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type sessionResp struct {
	quiz.SessionSnapshot
	Connected bool `json:"connected"`
}

func RegisterHandlers(r *mux.Router, svc service.GameService, hub *ws.Hub, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	r.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		sess := svc.CreateSession()
		log.Info("session created", zap.String("session_id", sess.ID))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": sess.ID})
	}).Methods(http.MethodPost)

	r.HandleFunc("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		sess, ok := svc.GetSession(id)
		if !ok {
			log.Warn("session not found", zap.String("session_id", id))
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(sessionResp{
			SessionSnapshot: sess.Snapshot(),
			Connected:       hub.Connected(id),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		sess, ok := svc.GetSession(id)
		if !ok {
			log.Warn("session not found", zap.String("session_id", id))
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		hub.Disconnect(id)
		sess.Fail()
		svc.RemoveSession(id)
		log.Info("session removed", zap.String("session_id", id))
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	r.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		stats, err := svc.Statistics(ctx)
		if err != nil {
			log.Error("statistics read failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(stats)
	}).Methods(http.MethodGet)

	r.HandleFunc("/ws/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		log.Info("ws connect attempt", zap.String("session_id", id))
		hub.ServeWS(w, r, id)
	})
}
