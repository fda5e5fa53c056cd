package dto

import "time"

// GrantCreditsRequest otorgamiento manual de créditos (admin).
type GrantCreditsRequest struct {
	TenantID    string `json:"tenant_id"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// SpendCreditsRequest consumo de créditos (publicación de vacante).
type SpendCreditsRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// CreditTransactionResponse una línea del libro de créditos.
type CreditTransactionResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Type         string    `json:"type"`
	Amount       int       `json:"amount"`
	Description  string    `json:"description"`
	BalanceAfter int       `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreditTransactionListResponse historial de transacciones.
type CreditTransactionListResponse struct {
	Items []CreditTransactionResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}

// BalanceResponse saldo actual del tenant.
type BalanceResponse struct {
	TenantID string `json:"tenant_id"`
	Balance  int    `json:"balance"`
}

// ReconcileResponse resultado del chequeo de consistencia del libro.
type ReconcileResponse struct {
	TenantID        string `json:"tenant_id"`
	Ok              bool   `json:"ok"`
	ComputedBalance int    `json:"computed_balance"`
	RecordedBalance int    `json:"recorded_balance"`
	MismatchIndex   int    `json:"mismatch_index"`
}
