package ledger

import (
	"context"

	"github.com/tu-usuario/empleos-pro/internal/domain"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// StatementUseCase genera el extracto de créditos de un tenant en PDF
// (historial completo + saldo de cierre). Solo lectura.
type StatementUseCase struct {
	tenantRepo repository.TenantRepository
	creditRepo repository.CreditTransactionRepository
	generator  StatementPDFGenerator
}

// NewStatementUseCase construye el caso de uso del extracto.
func NewStatementUseCase(
	tenantRepo repository.TenantRepository,
	creditRepo repository.CreditTransactionRepository,
	generator StatementPDFGenerator,
) *StatementUseCase {
	return &StatementUseCase{tenantRepo: tenantRepo, creditRepo: creditRepo, generator: generator}
}

// Generate devuelve los bytes del PDF del extracto del tenant.
func (uc *StatementUseCase) Generate(ctx context.Context, tenantID string) ([]byte, error) {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.creditRepo.ListAllByTenantAsc(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	balance := 0
	if len(txs) > 0 {
		balance = txs[len(txs)-1].BalanceAfter
	}
	return uc.generator.GenerateStatementPDF(ctx, tenant, txs, balance)
}
