// Package ledger contiene la lógica pura del libro de créditos: repetición
// (replay) del historial y verificación de consistencia. Sin dependencias de
// infraestructura, para que sea trivialmente testeable.
package ledger

import "github.com/tu-usuario/empleos-pro/internal/domain/entity"

// ReconcileResult resultado del chequeo de consistencia de un tenant.
// Ok es false en el primer desajuste entre el saldo recalculado y el
// balanceAfter almacenado (indica corrupción del libro).
type ReconcileResult struct {
	Ok              bool
	ComputedBalance int
	RecordedBalance int
	MismatchIndex   int // índice de la primera transacción inconsistente; -1 si Ok
}

// Replay recalcula el saldo acumulado repitiendo las transacciones en orden
// cronológico (más antigua primero), partiendo de saldo 0.
func Replay(txs []*entity.CreditTransaction) int {
	balance := 0
	for _, tx := range txs {
		balance += tx.Signed()
	}
	return balance
}

// Reconcile repite el historial completo y compara cada saldo recalculado con
// el snapshot balanceAfter almacenado. Las transacciones deben venir en orden
// cronológico ascendente. Operación de diagnóstico, no de camino caliente.
func Reconcile(txs []*entity.CreditTransaction) ReconcileResult {
	balance := 0
	for i, tx := range txs {
		balance += tx.Signed()
		if tx.BalanceAfter != balance {
			return ReconcileResult{
				Ok:              false,
				ComputedBalance: balance,
				RecordedBalance: tx.BalanceAfter,
				MismatchIndex:   i,
			}
		}
	}
	return ReconcileResult{Ok: true, ComputedBalance: balance, RecordedBalance: balance, MismatchIndex: -1}
}
