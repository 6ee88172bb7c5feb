package interfaces

import (
	"context"
	"log"
	"net/http"

	"github.com/aylton-yh/real-balance/internal/finance/application"
)

type StatsServiceInterface interface {
	GetDashboardStats(ctx context.Context, userID string) (*application.DashboardStats, error)
}

type StatsHandler struct {
	service      StatsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewStatsHandler(
	service StatsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *StatsHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &StatsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *StatsHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.service.GetDashboardStats(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing dashboard stats for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}
