package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type ActivityServiceInterface interface {
	LogActivity(ctx context.Context, entry *domain.ActivityEntry) error
	GetRecentActivities(ctx context.Context, userID string) ([]domain.ActivityEntry, error)
	ClearActivities(ctx context.Context, userID string) error
}

type ActivityHandler struct {
	service      ActivityServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewActivityHandler(
	service ActivityServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ActivityHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ActivityHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ActivityHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entries, err := h.service.GetRecentActivities(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing activities for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Activities retrieved successfully.",
		"data":    entries,
	})
}

func (h *ActivityHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry := domain.ActivityEntry{
		UserID:                 userID,
		Description:            req.Descricao,
		Kind:                   req.Tipo,
		Screen:                 req.Tela,
		ReferenceTransactionID: req.ReferenciaID,
	}
	if req.Valor != nil {
		amount, err := decimal.NewFromString(req.Valor.String())
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Activity amount must be a number")
			return
		}
		entry.Amount = &amount
	}

	if err := h.service.LogActivity(r.Context(), &entry); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error logging activity for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to log activity")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Activity successfully logged.",
		"data":    entry,
	})
}

func (h *ActivityHandler) ClearActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.ClearActivities(r.Context(), userID); err != nil {
		log.Printf("Error clearing activities for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to clear activities")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Activities cleared.",
	})
}
