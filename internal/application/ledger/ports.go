package ledger

import (
	"context"

	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del par
// leer-saldo / insertar-transacción del libro de créditos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		creditRepo repository.CreditTransactionRepository,
	) error) error
}

// StatementPDFGenerator genera el extracto de créditos de un tenant en PDF.
// La implementación vive en infrastructure/pdf.
type StatementPDFGenerator interface {
	GenerateStatementPDF(
		ctx context.Context,
		tenant *entity.Tenant,
		transactions []*entity.CreditTransaction,
		balance int,
	) ([]byte, error)
}
