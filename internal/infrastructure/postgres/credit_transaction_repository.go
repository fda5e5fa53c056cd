package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

var _ repository.CreditTransactionRepository = (*CreditTransactionRepo)(nil)

// CreditTransactionRepo implementación del libro de créditos sobre PostgreSQL
// (usable con pool o tx). Append-only: sin UPDATE ni DELETE.
type CreditTransactionRepo struct {
	q Querier
}

// NewCreditTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditTransactionRepository(q Querier) *CreditTransactionRepo {
	return &CreditTransactionRepo{q: q}
}

const creditTxColumns = `id, tenant_id, type, amount, description, balance_after, created_at`

// Append inserta una línea nueva en el libro.
func (r *CreditTransactionRepo) Append(ctx context.Context, tx *entity.CreditTransaction) error {
	query := `
		INSERT INTO credit_transactions (id, tenant_id, type, amount, description, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.TenantID, tx.Type, tx.Amount, tx.Description,
		tx.BalanceAfter, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append credit transaction: %w", err)
	}
	return nil
}

// GetLatest devuelve la transacción más reciente del tenant o nil si no hay.
// Desempata por id para created_at idénticos.
func (r *CreditTransactionRepo) GetLatest(ctx context.Context, tenantID string) (*entity.CreditTransaction, error) {
	query := `SELECT ` + creditTxColumns + ` FROM credit_transactions
		WHERE tenant_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	var t entity.CreditTransaction
	err := r.q.QueryRow(ctx, query, tenantID).Scan(
		&t.ID, &t.TenantID, &t.Type, &t.Amount, &t.Description,
		&t.BalanceAfter, &t.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest credit transaction: %w", err)
	}
	return &t, nil
}

// ListByTenant lista transacciones del tenant, más recientes primero.
func (r *CreditTransactionRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.CreditTransaction, error) {
	query := `SELECT ` + creditTxColumns + ` FROM credit_transactions
		WHERE tenant_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list credit transactions: %w", err)
	}
	defer rows.Close()
	return scanCreditTransactions(rows)
}

// ListAllByTenantAsc devuelve el historial completo del tenant en orden
// cronológico ascendente (para reconciliación y extracto).
func (r *CreditTransactionRepo) ListAllByTenantAsc(ctx context.Context, tenantID string) ([]*entity.CreditTransaction, error) {
	query := `SELECT ` + creditTxColumns + ` FROM credit_transactions
		WHERE tenant_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list credit transactions asc: %w", err)
	}
	defer rows.Close()
	return scanCreditTransactions(rows)
}

func scanCreditTransactions(rows pgx.Rows) ([]*entity.CreditTransaction, error) {
	var list []*entity.CreditTransaction
	for rows.Next() {
		var t entity.CreditTransaction
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Type, &t.Amount, &t.Description,
			&t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan credit transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
