package interfaces

import (
	"encoding/json"

	"github.com/aylton-yh/real-balance/internal/finance/domain"
)

// Request bodies keep the field names of the original Real Balance client, so
// the existing frontend keeps working against this backend unchanged.

type createTransactionRequest struct {
	Descricao       string      `json:"descricao"`
	Valor           json.Number `json:"valor"`
	Data            string      `json:"data"`
	Tipo            string      `json:"tipo"`
	MetodoPagamento string      `json:"metodo_pagamento"`
	IDCategoria     int64       `json:"id_categoria"`
	IDConta         int64       `json:"id_conta"`
}

type createAccountRequest struct {
	NomeConta    string      `json:"nome_conta"`
	TipoConta    string      `json:"tipo_conta"`
	Banco        string      `json:"banco"`
	SaldoInicial json.Number `json:"saldo_inicial"`
	CorTema      string      `json:"cor_tema"`
}

type createCategoryRequest struct {
	Nome  string `json:"nome"`
	Icone string `json:"icone"`
	Cor   string `json:"cor"`
	Tipo  string `json:"tipo"`
}

type createBudgetRequest struct {
	IDCategoriaDespesa int64       `json:"id_categoria_despesa"`
	ValorLimite        json.Number `json:"valor_limite"`
	Mes                int         `json:"mes"`
	Ano                int         `json:"ano"`
}

type logActivityRequest struct {
	Descricao    string       `json:"descricao"`
	Tipo         string       `json:"tipo"`
	Tela         string       `json:"tela"`
	Valor        *json.Number `json:"valor"`
	ReferenciaID *string      `json:"referencia_id"`
}

// kindFromTipo maps the wire values receita/despesa onto the domain kinds.
// The second result is false for anything else.
func kindFromTipo(tipo string) (domain.TransactionKind, bool) {
	switch tipo {
	case "receita":
		return domain.KindIncome, true
	case "despesa":
		return domain.KindExpense, true
	default:
		return "", false
	}
}

func accountKindFromTipo(tipo string) (domain.AccountKind, bool) {
	switch tipo {
	case "dinheiro", "cash":
		return domain.AccountCash, true
	case "banco", "bank":
		return domain.AccountBank, true
	default:
		return "", false
	}
}
