package repository

import (
	"context"

	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
)

// CreditTransactionRepository define el puerto de persistencia del libro de
// créditos. Append-only: no hay Update ni Delete.
type CreditTransactionRepository interface {
	Append(ctx context.Context, tx *entity.CreditTransaction) error
	// GetLatest devuelve la transacción más reciente del tenant (por
	// created_at) o nil si no hay ninguna. Es el camino O(1) del saldo.
	GetLatest(ctx context.Context, tenantID string) (*entity.CreditTransaction, error)
	// ListByTenant lista transacciones del tenant más recientes primero.
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.CreditTransaction, error)
	// ListAllByTenantAsc devuelve el historial completo en orden cronológico
	// ascendente (para Reconcile y el extracto PDF).
	ListAllByTenantAsc(ctx context.Context, tenantID string) ([]*entity.CreditTransaction, error)
}
