package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
	financeErrors "github.com/aylton-yh/real-balance/internal/finance/errors"
)

func authenticatedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
}

func TestCreateTransaction_Success(t *testing.T) {
	service := &MockLedgerService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"descricao":        "Salário",
		"valor":            1000.50,
		"data":             "2026-08-28",
		"tipo":             "receita",
		"metodo_pagamento": "transferencia",
		"id_categoria":     10,
		"id_conta":         1,
	})
	assert.NoError(t, err)

	req := authenticatedRequest(http.MethodPost, "/api/protected/finance/transactions", body)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response["status"])
	assert.Equal(t, "Transaction successfully recorded.", response["message"])

	assert.Equal(t, "user-1", service.LastRequest.UserID)
	assert.Equal(t, domain.KindIncome, service.LastRequest.Kind)
	assert.Equal(t, int64(1), service.LastRequest.AccountID)
	assert.Equal(t, "1000.5", service.LastRequest.Amount.String())
}

func TestCreateTransaction_ReplayRespondsOK(t *testing.T) {
	service := &MockLedgerService{Replayed: true}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"descricao":    "Salário",
		"valor":        1000,
		"data":         "2026-08-28",
		"tipo":         "receita",
		"id_categoria": 10,
		"id_conta":     1,
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/finance/transactions", body)
	req.Header.Set("Idempotency-Key", "ref-123")
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Transaction already recorded.", response["message"])
	assert.Equal(t, "ref-123", service.LastRequest.ClientReference)
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	service := &MockLedgerService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"descricao":    "Teste",
		"valor":        100,
		"data":         "2026-08-28",
		"tipo":         "transferencia",
		"id_categoria": 10,
		"id_conta":     1,
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/finance/transactions", body)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, service.RecordedCalled, "service must not be reached with an invalid type")
}

func TestCreateTransaction_ValidationErrorIsBadRequest(t *testing.T) {
	service := &MockLedgerService{RecordErr: financeErrors.ErrInvalidAmount}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"descricao":    "Teste",
		"valor":        0,
		"data":         "2026-08-28",
		"tipo":         "despesa",
		"id_categoria": 20,
		"id_conta":     1,
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/finance/transactions", body)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, financeErrors.ErrInvalidAmount.Error(), response["message"])
}

func TestCreateTransaction_InfrastructureErrorIsOpaque(t *testing.T) {
	service := &MockLedgerService{RecordErr: financeErrors.NewWriteFailedError(assert.AnError)}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"descricao":    "Teste",
		"valor":        100,
		"data":         "2026-08-28",
		"tipo":         "despesa",
		"id_categoria": 20,
		"id_conta":     1,
	})
	req := authenticatedRequest(http.MethodPost, "/api/protected/finance/transactions", body)
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	// the wrapped cause stays in the server log, the body gets a generic message
	assert.Equal(t, "Failed to record transaction", response["message"])
}

func TestCreateTransaction_MissingUserIsUnauthorized(t *testing.T) {
	service := &MockLedgerService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/protected/finance/transactions", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()

	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGetUserTransactions_ReturnsOnlyOwnRows(t *testing.T) {
	service := &MockLedgerService{
		Transactions: []domain.Transaction{
			{ID: "t-1", UserID: "user-1", Description: "Salário"},
			{ID: "t-2", UserID: "user-2", Description: "Renda"},
		},
	}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/protected/finance/transactions", nil)
	w := httptest.NewRecorder()

	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []domain.Transaction `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "t-1", response.Data[0].ID)
}
