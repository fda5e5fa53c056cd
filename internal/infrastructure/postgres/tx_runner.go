package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appledger "github.com/tu-usuario/empleos-pro/internal/application/ledger"
	apppurchase "github.com/tu-usuario/empleos-pro/internal/application/purchase"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and purchase.TxRunner.
var _ appledger.TxRunner = (*TxRunner)(nil)
var _ apppurchase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del libro de créditos, ejecuta fn
// y hace Commit o Rollback. El SELECT FOR UPDATE sobre tenants dentro de fn
// serializa las mutaciones del libro por tenant.
func (r *TxRunner) Run(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	creditRepo repository.CreditTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tenantRepo := NewTenantRepository(tx)
	creditRepo := NewCreditTransactionRepository(tx)

	if err := fn(tenantRepo, creditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia una transacción con los repos de compra y libro de
// créditos (para RecordPurchase: insert purchase + append credit atómicos).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	tenantRepo repository.TenantRepository,
	creditRepo repository.CreditTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseRepository(tx)
	tenantRepo := NewTenantRepository(tx)
	creditRepo := NewCreditTransactionRepository(tx)

	if err := fn(purchaseRepo, tenantRepo, creditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
