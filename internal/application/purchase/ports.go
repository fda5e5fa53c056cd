package purchase

import (
	"context"

	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios necesarios para registrar una compra y acreditar el cupo del
// plan de forma atómica (insert purchase + append credit, misma tx).
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		tenantRepo repository.TenantRepository,
		creditRepo repository.CreditTransactionRepository,
	) error) error
}
