package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/julianstephens/daytrack/internal/logger"
)

// RegisterRoutes sets up all routes for the API.
func RegisterRoutes(router *mux.Router, h *Handler) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	api.HandleFunc("/tasks/daily", h.GetDailyTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", h.GetTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", h.GetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/toggle", h.ToggleTask).Methods(http.MethodPost)
	api.HandleFunc("/history", h.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)
	router.Use(logRequests)
}

// NewRouter returns a router with every API route registered.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, h)
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
