package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/empleos-pro/internal/application/dto"
	"github.com/tu-usuario/empleos-pro/internal/domain"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/empleos-pro/internal/domain/ledger"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// UseCase operaciones sobre el libro de créditos: otorgar, consumir, saldo,
// historial y reconciliación. Las mutaciones se serializan por tenant con
// SELECT FOR UPDATE sobre la fila del tenant (dentro de TxRunner.Run), de modo
// que dos consumos concurrentes no puedan pasar ambos el chequeo de saldo con
// una lectura obsoleta.
type UseCase struct {
	txRunner   TxRunner
	creditRepo repository.CreditTransactionRepository
}

// NewUseCase construye el caso de uso del libro de créditos.
func NewUseCase(txRunner TxRunner, creditRepo repository.CreditTransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, creditRepo: creditRepo}
}

// GrantCredits otorga créditos al tenant. Devuelve domain.ErrInvalidInput si
// amount <= 0 y domain.ErrNotFound si el tenant no existe.
func (uc *UseCase) GrantCredits(ctx context.Context, tenantID string, amount int, description string) (*dto.CreditTransactionResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.CreditTransaction
	err := uc.txRunner.Run(ctx, func(
		tenantRepo repository.TenantRepository,
		creditRepo repository.CreditTransactionRepository,
	) error {
		tx, err := AppendInTx(ctx, tenantRepo, creditRepo, tenantID, entity.CreditTypeCredit, amount, description, time.Now())
		if err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(created), nil
}

// SpendCredits consume créditos del tenant (publicación de vacante). Devuelve
// domain.ErrInsufficientBalance si el saldo actual es menor que amount; en ese
// caso no se inserta ninguna fila y el libro queda intacto.
func (uc *UseCase) SpendCredits(ctx context.Context, tenantID string, amount int, description string) (*dto.CreditTransactionResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.CreditTransaction
	err := uc.txRunner.Run(ctx, func(
		tenantRepo repository.TenantRepository,
		creditRepo repository.CreditTransactionRepository,
	) error {
		tx, err := AppendInTx(ctx, tenantRepo, creditRepo, tenantID, entity.CreditTypeDebit, amount, description, time.Now())
		if err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(created), nil
}

// AppendInTx agrega una línea al libro usando los repositorios proporcionados
// (misma transacción del caller). Bloquea la fila del tenant, lee el saldo más
// reciente y escribe la transacción con su snapshot balanceAfter. Lo usa este
// caso de uso y también purchase.UseCase para acreditar la compra de un plan
// en la misma transacción que inserta el purchase.
func AppendInTx(
	ctx context.Context,
	tenantRepo repository.TenantRepository,
	creditRepo repository.CreditTransactionRepository,
	tenantID, txType string,
	amount int,
	description string,
	now time.Time,
) (*entity.CreditTransaction, error) {
	// Bloquea la fila del tenant: serializa leer-saldo-luego-insertar por tenant
	tenant, err := tenantRepo.GetForUpdate(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	balance := 0
	latest, err := creditRepo.GetLatest(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		balance = latest.BalanceAfter
	}

	if txType == entity.CreditTypeDebit && balance < amount {
		return nil, domain.ErrInsufficientBalance
	}

	after := balance + amount
	if txType == entity.CreditTypeDebit {
		after = balance - amount
	}
	tx := &entity.CreditTransaction{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Type:         txType,
		Amount:       amount,
		Description:  description,
		BalanceAfter: after,
		CreatedAt:    now,
	}
	if err := creditRepo.Append(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetBalance devuelve el saldo actual del tenant: el balanceAfter de la
// transacción más reciente, o 0 si no hay ninguna. Lectura O(1).
func (uc *UseCase) GetBalance(ctx context.Context, tenantID string) (int, error) {
	latest, err := uc.creditRepo.GetLatest(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.BalanceAfter, nil
}

// History lista las transacciones del tenant, más recientes primero.
func (uc *UseCase) History(ctx context.Context, tenantID string, limit, offset int) (*dto.CreditTransactionListResponse, error) {
	list, err := uc.creditRepo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CreditTransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *toTransactionResponse(tx))
	}
	return &dto.CreditTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Reconcile repite el historial completo del tenant recalculando el saldo
// acumulado y lo compara contra cada balanceAfter almacenado. Operación de
// auditoría; no se usa en el camino caliente.
func (uc *UseCase) Reconcile(ctx context.Context, tenantID string) (*dto.ReconcileResponse, error) {
	txs, err := uc.creditRepo.ListAllByTenantAsc(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	res := domledger.Reconcile(txs)
	return &dto.ReconcileResponse{
		TenantID:        tenantID,
		Ok:              res.Ok,
		ComputedBalance: res.ComputedBalance,
		RecordedBalance: res.RecordedBalance,
		MismatchIndex:   res.MismatchIndex,
	}, nil
}

func toTransactionResponse(tx *entity.CreditTransaction) *dto.CreditTransactionResponse {
	if tx == nil {
		return nil
	}
	return &dto.CreditTransactionResponse{
		ID:           tx.ID,
		TenantID:     tx.TenantID,
		Type:         tx.Type,
		Amount:       tx.Amount,
		Description:  tx.Description,
		BalanceAfter: tx.BalanceAfter,
		CreatedAt:    tx.CreatedAt,
	}
}
