package utils

import (
	"encoding/json"
	"net/http"
	"strings"

	_ "github.com/akolanti/EarningsAPI/cmd/api/docs"
	"github.com/akolanti/EarningsAPI/internal/adapter"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/http-swagger"
)

func NewJobID() string {
	return uuid.New().String()
}

func NewTraceID() string {
	return uuid.New().String()
}

// JobIDParam reads the {id} segment of /status/{id}. Anything that is not a
// UUID is returned as "" so it never reaches the job store.
func JobIDParam(request *http.Request) string {
	id := strings.TrimSpace(chi.URLParam(request, "id"))
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// NewRouter returns a router with swagger and /metrics mounted. Unknown
// routes and methods answer in the same JSON shape as job errors.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeRouteError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeRouteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/swagger", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeRouteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(adapter.BadRequest("", message, code))
}
