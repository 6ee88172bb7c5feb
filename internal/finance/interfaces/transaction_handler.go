package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aylton-yh/real-balance/internal/finance/application"
	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

type LedgerServiceInterface interface {
	RecordTransaction(ctx context.Context, req application.NewTransaction) (*domain.Transaction, bool, error)
	GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	service      LedgerServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service LedgerServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// CreateTransaction posts one ledger entry. Validation failures come back as
// 400; only infrastructure failures inside the atomic write surface as 500,
// and their detail stays in the server log.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, ok := kindFromTipo(req.Tipo)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Type must be 'receita' or 'despesa'")
		return
	}

	amount, err := decimal.NewFromString(req.Valor.String())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, financeErrors.ErrInvalidAmount.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	transaction, created, err := h.service.RecordTransaction(r.Context(), application.NewTransaction{
		UserID:          userID,
		AccountID:       req.IDConta,
		CategoryID:      req.IDCategoria,
		Kind:            kind,
		Amount:          amount,
		Description:     req.Descricao,
		Date:            date,
		PaymentMethod:   req.MetodoPagamento,
		ClientReference: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error recording transaction for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	status := http.StatusCreated
	message := "Transaction successfully recorded."
	if !created {
		status = http.StatusOK
		message = "Transaction already recorded."
	}
	h.respondJSON(w, status, map[string]interface{}{
		"status":  "success",
		"message": message,
		"data":    transaction,
	})
}

func (h *TransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.service.GetUserTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing transactions for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions retrieved successfully.",
		"data":    transactions,
	})
}
