package httpapi

import (
	"net/http"
	"time"

	"climacheck-server/internal/utils"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type healthchecker interface {
	handleHealth(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	service string
	now     func() time.Time
}

func NewHealthchecker(serviceName string) healthchecker {
	return &healthcheckerImpl{service: serviceName, now: time.Now}
}

// handleHealth is a liveness probe; it does not check the provider or storage.
func (h *healthcheckerImpl) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339),
		Service:   h.service,
	})
}

func registerHealthcheck(mux *http.ServeMux, serviceName string) {
	healthchecker := NewHealthchecker(serviceName)
	mux.HandleFunc("GET /health", healthchecker.handleHealth)
}
