package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetUserCategories(ctx context.Context, userID string, kind domain.TransactionKind) ([]domain.Category, error)
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var kind domain.TransactionKind
	if tipo := r.URL.Query().Get("tipo"); tipo != "" {
		mapped, ok := kindFromTipo(tipo)
		if !ok {
			h.respondError(w, http.StatusBadRequest, "Invalid category type")
			return
		}
		kind = mapped
	}

	categories, err := h.service.GetUserCategories(r.Context(), userID, kind)
	if err != nil {
		log.Printf("Error listing categories for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Categories retrieved successfully.",
		"data":    categories,
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, ok := kindFromTipo(req.Tipo)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Type must be 'receita' or 'despesa'")
		return
	}

	category := domain.Category{
		Kind:   kind,
		Name:   req.Nome,
		Icon:   req.Icone,
		Color:  req.Cor,
		UserID: &userID,
	}
	if err := h.service.CreateCategory(r.Context(), &category); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating category for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}
