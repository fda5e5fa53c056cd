package entity

import "time"

// Tipos de movimiento en el libro de créditos.
const (
	CreditTypeCredit = "credit" // otorgamiento (compra de plan o ajuste manual)
	CreditTypeDebit  = "debit"  // consumo (publicación de vacante)
)

// CreditTransaction es una línea inmutable del libro de créditos (append-only).
// Invariante: balanceAfter[i] = balanceAfter[i-1] + (credit ? amount : -amount),
// con saldo inicial 0. Ninguna transacción se muta ni se borra: es la pista de
// auditoría del saldo derivado.
type CreditTransaction struct {
	ID           string
	TenantID     string
	Type         string // ver constantes CreditType*
	Amount       int    // siempre positivo; el signo lo da Type
	Description  string
	BalanceAfter int // snapshot del saldo resultante
	CreatedAt    time.Time
}

// Signed devuelve el monto con signo según el tipo.
func (t *CreditTransaction) Signed() int {
	if t.Type == CreditTypeDebit {
		return -t.Amount
	}
	return t.Amount
}
