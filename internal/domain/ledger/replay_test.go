package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func tx(txType string, amount, balanceAfter int) *entity.CreditTransaction {
	return &entity.CreditTransaction{
		ID:           "tx",
		TenantID:     "tenant-1",
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Replay
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_HistorialVacio_SaldoCero(t *testing.T) {
	assert.Equal(t, 0, ledger.Replay(nil), "sin transacciones el saldo debe ser 0")
}

func TestReplay_CreditosYDebitos(t *testing.T) {
	txs := []*entity.CreditTransaction{
		tx(entity.CreditTypeCredit, 10, 10),
		tx(entity.CreditTypeDebit, 3, 7),
		tx(entity.CreditTypeCredit, 5, 12),
		tx(entity.CreditTypeDebit, 12, 0),
	}
	assert.Equal(t, 0, ledger.Replay(txs), "10 - 3 + 5 - 12 = 0")
}

// Invariante central: el saldo repetido siempre coincide con el balanceAfter
// de la última transacción cuando el libro es consistente.
func TestReplay_CoincideConUltimoBalanceAfter(t *testing.T) {
	txs := []*entity.CreditTransaction{
		tx(entity.CreditTypeCredit, 20, 20),
		tx(entity.CreditTypeDebit, 4, 16),
		tx(entity.CreditTypeDebit, 6, 10),
	}
	assert.Equal(t, txs[len(txs)-1].BalanceAfter, ledger.Replay(txs))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_HistorialConsistente(t *testing.T) {
	txs := []*entity.CreditTransaction{
		tx(entity.CreditTypeCredit, 10, 10),
		tx(entity.CreditTypeDebit, 3, 7),
	}
	res := ledger.Reconcile(txs)

	assert.True(t, res.Ok, "el historial consistente debe reconciliar sin desajustes")
	assert.Equal(t, 7, res.ComputedBalance)
	assert.Equal(t, 7, res.RecordedBalance)
	assert.Equal(t, -1, res.MismatchIndex)
}

func TestReconcile_HistorialVacio(t *testing.T) {
	res := ledger.Reconcile(nil)
	assert.True(t, res.Ok)
	assert.Equal(t, 0, res.ComputedBalance)
	assert.Equal(t, -1, res.MismatchIndex)
}

// Un balanceAfter manipulado (corrupción del libro) debe detectarse en el
// índice exacto de la primera transacción inconsistente.
func TestReconcile_DetectaCorrupcion(t *testing.T) {
	txs := []*entity.CreditTransaction{
		tx(entity.CreditTypeCredit, 10, 10),
		tx(entity.CreditTypeDebit, 3, 8), // debería ser 7
		tx(entity.CreditTypeCredit, 5, 13),
	}
	res := ledger.Reconcile(txs)

	assert.False(t, res.Ok, "un snapshot manipulado debe marcar el libro como corrupto")
	assert.Equal(t, 1, res.MismatchIndex, "el desajuste está en la segunda transacción")
	assert.Equal(t, 7, res.ComputedBalance, "saldo recalculado en el punto del desajuste")
	assert.Equal(t, 8, res.RecordedBalance, "snapshot almacenado inconsistente")
}
