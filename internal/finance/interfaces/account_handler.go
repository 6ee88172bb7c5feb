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

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetUserAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

type AccountHandler struct {
	service      AccountServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewAccountHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *AccountHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &AccountHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, ok := accountKindFromTipo(req.TipoConta)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Account kind must be 'dinheiro' or 'banco'")
		return
	}

	opening := decimal.Zero
	if req.SaldoInicial != "" {
		var err error
		opening, err = decimal.NewFromString(req.SaldoInicial.String())
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Opening balance must be a number")
			return
		}
	}

	account := domain.Account{
		UserID:         userID,
		Name:           req.NomeConta,
		Kind:           kind,
		BankName:       req.Banco,
		OpeningBalance: opening,
		Color:          req.CorTema,
	}
	if err := h.service.CreateAccount(r.Context(), &account); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating account for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully created.",
		"data":    account,
	})
}

func (h *AccountHandler) GetUserAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.service.GetUserAccounts(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing accounts for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve accounts")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Accounts retrieved successfully.",
		"data":    accounts,
	})
}
