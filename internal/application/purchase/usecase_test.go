package purchase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/empleos-pro/internal/application/dto"
	"github.com/tu-usuario/empleos-pro/internal/application/purchase"
	"github.com/tu-usuario/empleos-pro/internal/domain"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(t *entity.Tenant) error                { r.tenants[t.ID] = t; return nil }
func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error)    { return r.tenants[id], nil }
func (r *fakeTenantRepo) GetForUpdate(id string) (*entity.Tenant, error) { return r.tenants[id], nil }
func (r *fakeTenantRepo) Update(t *entity.Tenant) error                { r.tenants[t.ID] = t; return nil }
func (r *fakeTenantRepo) List(limit, offset int) ([]*entity.Tenant, error) { return nil, nil }

type fakeCreditRepo struct {
	txs []*entity.CreditTransaction
}

func (r *fakeCreditRepo) Append(ctx context.Context, tx *entity.CreditTransaction) error {
	r.txs = append(r.txs, tx)
	return nil
}
func (r *fakeCreditRepo) GetLatest(ctx context.Context, tenantID string) (*entity.CreditTransaction, error) {
	for i := len(r.txs) - 1; i >= 0; i-- {
		if r.txs[i].TenantID == tenantID {
			return r.txs[i], nil
		}
	}
	return nil, nil
}
func (r *fakeCreditRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.CreditTransaction, error) {
	return r.ListAllByTenantAsc(ctx, tenantID)
}
func (r *fakeCreditRepo) ListAllByTenantAsc(ctx context.Context, tenantID string) ([]*entity.CreditTransaction, error) {
	var out []*entity.CreditTransaction
	for _, tx := range r.txs {
		if tx.TenantID == tenantID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	plans map[string]*entity.Plan
}

func (r *fakePlanRepo) Create(p *entity.Plan) error             { r.plans[p.ID] = p; return nil }
func (r *fakePlanRepo) GetByID(id string) (*entity.Plan, error) { return r.plans[id], nil }
func (r *fakePlanRepo) Update(p *entity.Plan) error             { r.plans[p.ID] = p; return nil }
func (r *fakePlanRepo) List(activeOnly bool) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.plans {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePlanRepo) Delete(id string) error { delete(r.plans, id); return nil }

type fakePurchaseRepo struct {
	order     []string
	purchases map[string]*entity.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]*entity.Purchase)}
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	r.purchases[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}
func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) { return r.purchases[id], nil }
func (r *fakePurchaseRepo) List(filters repository.PurchaseFilters) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, id := range r.order {
		p := r.purchases[id]
		if filters.TenantID != "" && p.TenantID != filters.TenantID {
			continue
		}
		if filters.MinAmount != nil && p.Amount.LessThan(*filters.MinAmount) {
			continue
		}
		if filters.MaxAmount != nil && p.Amount.GreaterThan(*filters.MaxAmount) {
			continue
		}
		if filters.StartDate != nil && p.PurchaseDate.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && p.PurchaseDate.After(*filters.EndDate) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (r *fakePurchaseRepo) ListActiveExpiredBefore(now time.Time) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, id := range r.order {
		if p := r.purchases[id]; p.IsExpiredAt(now) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePurchaseRepo) UpdateStatus(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error) {
	p, ok := r.purchases[id]
	if !ok || p.Status != fromStatus {
		return false, nil
	}
	p.Status = toStatus
	p.UpdatedAt = updatedAt
	return true, nil
}
func (r *fakePurchaseRepo) ExistsByPlan(planID string) (bool, error) {
	for _, p := range r.purchases {
		if p.PlanID == planID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTxRunner struct {
	purchaseRepo *fakePurchaseRepo
	tenantRepo   *fakeTenantRepo
	creditRepo   *fakeCreditRepo
}

func (r *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	tenantRepo repository.TenantRepository,
	creditRepo repository.CreditTransactionRepository,
) error) error {
	return fn(r.purchaseRepo, r.tenantRepo, r.creditRepo)
}

type fixture struct {
	uc           *purchase.UseCase
	purchaseRepo *fakePurchaseRepo
	planRepo     *fakePlanRepo
	creditRepo   *fakeCreditRepo
}

func buildFixture(validityDays int) *fixture {
	purchaseRepo := newFakePurchaseRepo()
	planRepo := &fakePlanRepo{plans: map[string]*entity.Plan{
		"plan-basico": {
			ID:              "plan-basico",
			Name:            "Plano Básico",
			Price:           decimal.NewFromInt(100),
			VacancyQuantity: 10,
			IsActive:        true,
		},
		"plan-destacado": {
			ID:              "plan-destacado",
			Name:            "Destaque",
			Price:           decimal.NewFromInt(50),
			VacancyQuantity: 0, // solo destacados, sin cupo de vacantes
			IsActive:        true,
		},
		"plan-retirado": {
			ID:       "plan-retirado",
			Name:     "Legado",
			Price:    decimal.NewFromInt(10),
			IsActive: false,
		},
	}}
	tenantRepo := &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		"tenant-1": {ID: "tenant-1", Name: "Acme", Kind: entity.TenantKindCompany, Status: "active"},
	}}
	creditRepo := &fakeCreditRepo{}
	runner := &fakeTxRunner{purchaseRepo: purchaseRepo, tenantRepo: tenantRepo, creditRepo: creditRepo}
	return &fixture{
		uc:           purchase.NewUseCase(runner, purchaseRepo, planRepo, validityDays),
		purchaseRepo: purchaseRepo,
		planRepo:     planRepo,
		creditRepo:   creditRepo,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_CongelaPrecioYAcreditaCupo(t *testing.T) {
	f := buildFixture(30)

	out, err := f.uc.RecordPurchase(context.Background(), "tenant-1", dto.RecordPurchaseRequest{
		PlanID:        "plan-basico",
		PaymentMethod: "pix",
		TransactionID: "pay-123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusActive, out.Status)
	assert.Equal(t, "100", out.Amount, "el precio del plan queda congelado en la compra")
	assert.Equal(t, out.PurchaseDate.AddDate(0, 0, 30), out.ExpiryDate)

	// La compra acredita el cupo del plan en el libro, en la misma operación
	require.Len(t, f.creditRepo.txs, 1)
	credito := f.creditRepo.txs[0]
	assert.Equal(t, entity.CreditTypeCredit, credito.Type)
	assert.Equal(t, 10, credito.Amount)
	assert.Equal(t, 10, credito.BalanceAfter)
	assert.Equal(t, "Compra de plan: Plano Básico", credito.Description)
}

// Editar el plan después de la compra no altera el monto congelado: la
// historia de precios se preserva en las compras.
func TestRecordPurchase_PrecioNoEsRetroactivo(t *testing.T) {
	f := buildFixture(30)
	ctx := context.Background()

	out, err := f.uc.RecordPurchase(ctx, "tenant-1", dto.RecordPurchaseRequest{PlanID: "plan-basico"})
	require.NoError(t, err)

	// El admin sube el precio del plan
	f.planRepo.plans["plan-basico"].Price = decimal.NewFromInt(999)

	stored, err := f.uc.GetPurchase(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", stored.Amount, "el snapshot no se recalcula desde el plan")
}

func TestRecordPurchase_PlanSinCupo_NoEscribeEnLibro(t *testing.T) {
	f := buildFixture(30)

	_, err := f.uc.RecordPurchase(context.Background(), "tenant-1", dto.RecordPurchaseRequest{PlanID: "plan-destacado"})
	require.NoError(t, err)
	assert.Empty(t, f.creditRepo.txs, "planes con cupo 0 no generan línea de crédito")
}

func TestRecordPurchase_PlanInexistente(t *testing.T) {
	f := buildFixture(30)
	_, err := f.uc.RecordPurchase(context.Background(), "tenant-1", dto.RecordPurchaseRequest{PlanID: "plan-fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordPurchase_PlanRetirado(t *testing.T) {
	f := buildFixture(30)
	_, err := f.uc.RecordPurchase(context.Background(), "tenant-1", dto.RecordPurchaseRequest{PlanID: "plan-retirado"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Si el tenant no existe, la compra entera se rechaza: ni purchase ni crédito.
func TestRecordPurchase_TenantInexistente_NadaPersiste(t *testing.T) {
	f := buildFixture(30)
	_, err := f.uc.RecordPurchase(context.Background(), "tenant-fantasma", dto.RecordPurchaseRequest{PlanID: "plan-basico"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.creditRepo.txs)
	assert.Empty(t, f.purchaseRepo.purchases)
}

// El tenant se valida también cuando el plan no acredita cupo: un plan con
// vacancy_quantity 0 no debe colar un registro financiero hacia un tenant
// inexistente solo porque el camino del libro no se ejecuta.
func TestRecordPurchase_PlanSinCupo_TenantInexistente(t *testing.T) {
	f := buildFixture(30)
	_, err := f.uc.RecordPurchase(context.Background(), "tenant-fantasma", dto.RecordPurchaseRequest{PlanID: "plan-destacado"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.purchaseRepo.purchases, "la compra no se persiste para un tenant inexistente")
	assert.Empty(t, f.creditRepo.txs)
}

// ──────────────────────────────────────────────────────────────────────────────
// SweepExpired
// ──────────────────────────────────────────────────────────────────────────────

func seedPurchase(f *fixture, id string, status string, expiry time.Time) *entity.Purchase {
	p := &entity.Purchase{
		ID:         id,
		TenantID:   "tenant-1",
		PlanID:     "plan-basico",
		Amount:     decimal.NewFromInt(100),
		Status:     status,
		ExpiryDate: expiry,
	}
	_ = f.purchaseRepo.Create(p)
	return p
}

func TestSweepExpired_TransicionaSoloVencidas(t *testing.T) {
	f := buildFixture(30)
	now := time.Now()
	seedPurchase(f, "p-vencida", entity.PurchaseStatusActive, now.Add(-time.Hour))
	seedPurchase(f, "p-vigente", entity.PurchaseStatusActive, now.Add(time.Hour))
	seedPurchase(f, "p-cancelada", entity.PurchaseStatusCancelled, now.Add(-time.Hour))

	res, err := f.uc.SweepExpired(now)
	require.NoError(t, err)

	assert.Equal(t, 1, res.ExpiredCount)
	require.Len(t, res.Expired, 1)
	assert.Equal(t, "p-vencida", res.Expired[0].ID)

	assert.Equal(t, entity.PurchaseStatusExpired, f.purchaseRepo.purchases["p-vencida"].Status)
	assert.Equal(t, entity.PurchaseStatusActive, f.purchaseRepo.purchases["p-vigente"].Status)
	assert.Equal(t, entity.PurchaseStatusCancelled, f.purchaseRepo.purchases["p-cancelada"].Status,
		"cancelled es terminal: el barrido no la toca")
}

func TestSweepExpired_Idempotente(t *testing.T) {
	f := buildFixture(30)
	now := time.Now()
	seedPurchase(f, "p-vencida", entity.PurchaseStatusActive, now.Add(-time.Hour))

	primera, err := f.uc.SweepExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 1, primera.ExpiredCount)

	segunda, err := f.uc.SweepExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 0, segunda.ExpiredCount, "el segundo barrido con el mismo now no cambia nada")
}

// Un barrido con un now anterior nunca revierte una compra ya expirada.
func TestSweepExpired_NowAnterior_NoRevierte(t *testing.T) {
	f := buildFixture(30)
	now := time.Now()
	seedPurchase(f, "p-vencida", entity.PurchaseStatusActive, now.Add(-2*time.Hour))

	_, err := f.uc.SweepExpired(now)
	require.NoError(t, err)
	require.Equal(t, entity.PurchaseStatusExpired, f.purchaseRepo.purchases["p-vencida"].Status)

	res, err := f.uc.SweepExpired(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExpiredCount)
	assert.Equal(t, entity.PurchaseStatusExpired, f.purchaseRepo.purchases["p-vencida"].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelPurchase_Activa(t *testing.T) {
	f := buildFixture(30)
	seedPurchase(f, "p-1", entity.PurchaseStatusActive, time.Now().Add(time.Hour))

	out, err := f.uc.CancelPurchase("p-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, out.Status)
}

func TestCancelPurchase_EstadosTerminales(t *testing.T) {
	f := buildFixture(30)
	seedPurchase(f, "p-expirada", entity.PurchaseStatusExpired, time.Now().Add(-time.Hour))
	seedPurchase(f, "p-cancelada", entity.PurchaseStatusCancelled, time.Now().Add(time.Hour))

	_, err := f.uc.CancelPurchase("p-expirada")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.CancelPurchase("p-cancelada")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelPurchase_Inexistente(t *testing.T) {
	f := buildFixture(30)
	_, err := f.uc.CancelPurchase("p-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetPurchase / ListPurchases — barrido perezoso
// ──────────────────────────────────────────────────────────────────────────────

// Leer una compra activa ya vencida la transiciona antes de responder: el
// lector nunca ve una compra vencida reportada como active.
func TestGetPurchase_BarridoPerezoso(t *testing.T) {
	f := buildFixture(30)
	seedPurchase(f, "p-vencida", entity.PurchaseStatusActive, time.Now().Add(-time.Hour))

	out, err := f.uc.GetPurchase("p-vencida")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusExpired, out.Status)
	assert.Equal(t, entity.PurchaseStatusExpired, f.purchaseRepo.purchases["p-vencida"].Status,
		"la transición se persiste, no es solo cosmética de la respuesta")
}

func TestListPurchases_FiltraPorMonto(t *testing.T) {
	f := buildFixture(30)
	now := time.Now().Add(time.Hour)
	p1 := seedPurchase(f, "p-barata", entity.PurchaseStatusActive, now)
	p1.Amount = decimal.NewFromInt(50)
	p2 := seedPurchase(f, "p-cara", entity.PurchaseStatusActive, now)
	p2.Amount = decimal.NewFromInt(500)

	out, err := f.uc.ListPurchases(dto.ListPurchasesRequest{MinAmount: "100"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "p-cara", out.Items[0].ID)
}

func TestListPurchases_FechaInvalida(t *testing.T) {
	f := buildFixture(30)
	_, err := f.uc.ListPurchases(dto.ListPurchasesRequest{StartDate: "no-es-fecha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
