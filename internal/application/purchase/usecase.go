package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/empleos-pro/internal/application/dto"
	appledger "github.com/tu-usuario/empleos-pro/internal/application/ledger"
	"github.com/tu-usuario/empleos-pro/internal/domain"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// UseCase ciclo de vida de compras de plan: registro (con acreditación del
// cupo en la misma transacción), cancelación administrativa, reporte y barrido
// de vencimientos.
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	planRepo     repository.PlanRepository
	validityDays int
}

// NewUseCase construye el caso de uso. validityDays define la vigencia de cada
// compra (expiryDate = purchaseDate + validityDays).
func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	planRepo repository.PlanRepository,
	validityDays int,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		planRepo:     planRepo,
		validityDays: validityDays,
	}
}

// RecordPurchase registra la compra de un plan por un tenant. Congela el
// precio del plan en Amount (la historia de precios se preserva aunque el plan
// cambie después) y, en la MISMA transacción, agrega al libro de créditos una
// línea credit por el cupo de vacantes del plan.
func (uc *UseCase) RecordPurchase(ctx context.Context, tenantID string, in dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	plan, err := uc.planRepo.GetByID(in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if !plan.IsActive {
		return nil, domain.ErrConflict // plan retirado del catálogo
	}

	now := time.Now()
	p := &entity.Purchase{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		PlanID:        plan.ID,
		PurchaseDate:  now,
		ExpiryDate:    now.AddDate(0, 0, uc.validityDays),
		Amount:        plan.Price, // snapshot: nunca se recalcula desde el plan
		Status:        entity.PurchaseStatusActive,
		PaymentMethod: in.PaymentMethod,
		TransactionID: in.TransactionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		tenantRepo repository.TenantRepository,
		creditRepo repository.CreditTransactionRepository,
	) error {
		// El tenant se resuelve (y bloquea) antes de persistir nada: una
		// compra es registro financiero y nunca debe referenciar un tenant
		// inexistente, tampoco cuando el plan no genera línea de crédito
		tenant, err := tenantRepo.GetForUpdate(tenantID)
		if err != nil {
			return err
		}
		if tenant == nil {
			return domain.ErrNotFound
		}
		if err := purchaseRepo.Create(p); err != nil {
			return err
		}
		// Planes sin cupo (p.ej. solo destacados) no generan línea en el libro
		if plan.VacancyQuantity == 0 {
			return nil
		}
		desc := fmt.Sprintf("Compra de plan: %s", plan.Name)
		_, err = appledger.AppendInTx(ctx, tenantRepo, creditRepo, tenantID,
			entity.CreditTypeCredit, plan.VacancyQuantity, desc, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// SweepExpired transiciona a expired toda compra active con expiryDate < now
// y devuelve el conjunto cambiado. Idempotente: un segundo barrido con el
// mismo now no produce más cambios; compras expired/cancelled no se tocan.
func (uc *UseCase) SweepExpired(now time.Time) (*dto.SweepResponse, error) {
	stale, err := uc.purchaseRepo.ListActiveExpiredBefore(now)
	if err != nil {
		return nil, err
	}
	expired := make([]dto.PurchaseResponse, 0, len(stale))
	for _, p := range stale {
		// Update condicional active->expired: un barrido concurrente que ya
		// transicionó la fila simplemente no la cuenta dos veces
		changed, err := uc.purchaseRepo.UpdateStatus(p.ID, entity.PurchaseStatusActive, entity.PurchaseStatusExpired, now)
		if err != nil {
			return nil, err
		}
		if !changed {
			continue
		}
		p.Status = entity.PurchaseStatusExpired
		p.UpdatedAt = now
		expired = append(expired, *toPurchaseResponse(p))
	}
	return &dto.SweepResponse{ExpiredCount: len(expired), Expired: expired}, nil
}

// CancelPurchase cancela una compra activa (admin). Devuelve
// domain.ErrInvalidState si el estado actual no es active: expired y
// cancelled son terminales.
func (uc *UseCase) CancelPurchase(id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.CanTransitionTo(entity.PurchaseStatusCancelled) {
		return nil, domain.ErrInvalidState
	}
	now := time.Now()
	changed, err := uc.purchaseRepo.UpdateStatus(id, entity.PurchaseStatusActive, entity.PurchaseStatusCancelled, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Otro actor (barrido o admin) transicionó la fila entre la lectura y el update
		return nil, domain.ErrInvalidState
	}
	p.Status = entity.PurchaseStatusCancelled
	p.UpdatedAt = now
	return toPurchaseResponse(p), nil
}

// GetPurchase obtiene una compra. Barrido perezoso: si la compra activa ya
// venció al momento de la lectura, se transiciona antes de responder.
func (uc *UseCase) GetPurchase(id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	now := time.Now()
	if p.IsExpiredAt(now) {
		if changed, err := uc.purchaseRepo.UpdateStatus(p.ID, entity.PurchaseStatusActive, entity.PurchaseStatusExpired, now); err != nil {
			return nil, err
		} else if changed {
			p.Status = entity.PurchaseStatusExpired
			p.UpdatedAt = now
		}
	}
	return toPurchaseResponse(p), nil
}

// ListPurchases reporte de compras con filtros. Lectura pura sobre el estado
// persistido; ejecuta antes un barrido perezoso para que el reporte no muestre
// como active compras ya vencidas.
func (uc *UseCase) ListPurchases(in dto.ListPurchasesRequest) (*dto.PurchaseListResponse, error) {
	if _, err := uc.SweepExpired(time.Now()); err != nil {
		return nil, err
	}

	filters, err := parseFilters(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.purchaseRepo.List(filters)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filters.Limit, Offset: filters.Offset},
	}, nil
}

func parseFilters(in dto.ListPurchasesRequest) (repository.PurchaseFilters, error) {
	in.DefaultPage()
	filters := repository.PurchaseFilters{
		TenantID: in.TenantID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.StartDate != "" {
		t, err := parseDate(in.StartDate)
		if err != nil {
			return filters, domain.ErrInvalidInput
		}
		filters.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := parseDate(in.EndDate)
		if err != nil {
			return filters, domain.ErrInvalidInput
		}
		filters.EndDate = &t
	}
	if in.MinAmount != "" {
		d, err := decimal.NewFromString(in.MinAmount)
		if err != nil {
			return filters, domain.ErrInvalidInput
		}
		filters.MinAmount = &d
	}
	if in.MaxAmount != "" {
		d, err := decimal.NewFromString(in.MaxAmount)
		if err != nil {
			return filters, domain.ErrInvalidInput
		}
		filters.MaxAmount = &d
	}
	return filters, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		PlanID:        p.PlanID,
		PurchaseDate:  p.PurchaseDate,
		ExpiryDate:    p.ExpiryDate,
		Amount:        p.Amount.String(),
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
