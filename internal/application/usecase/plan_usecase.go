package usecase

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/empleos-pro/internal/application/dto"
	"github.com/tu-usuario/empleos-pro/internal/domain"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

// PlanUseCase administra el catálogo de planes. Los planes referenciados por
// compras nunca se borran (guarda referencial): el borrado se bloquea con
// domain.ErrConflict, no se cascadea, para preservar la historia financiera.
type PlanUseCase struct {
	planRepo     repository.PlanRepository
	purchaseRepo repository.PurchaseRepository
}

// NewPlanUseCase construye el caso de uso del catálogo.
func NewPlanUseCase(planRepo repository.PlanRepository, purchaseRepo repository.PurchaseRepository) *PlanUseCase {
	return &PlanUseCase{planRepo: planRepo, purchaseRepo: purchaseRepo}
}

// List devuelve los planes, opcionalmente solo los activos. Sin efectos.
func (uc *PlanUseCase) List(activeOnly bool) (*dto.PlanListResponse, error) {
	list, err := uc.planRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPlanResponse(p))
	}
	return &dto.PlanListResponse{Items: items}, nil
}

// Create valida y persiste un plan nuevo. Devuelve domain.ErrInvalidInput si
// price no parsea como decimal no negativo o vacancy_quantity como entero no
// negativo.
func (uc *PlanUseCase) Create(in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	qty, err := parseVacancyQuantity(in.VacancyQuantity)
	if err != nil {
		return nil, err
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	plan := &entity.Plan{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           price,
		VacancyQuantity: qty,
		Features:        in.Features,
		IsActive:        isActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Update aplica una edición parcial. Devuelve domain.ErrNotFound si el plan no
// existe. No altera retroactivamente compras existentes: el precio de cada
// compra quedó congelado en Purchase.Amount.
func (uc *PlanUseCase) Update(id string, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		plan.Name = *in.Name
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.Price != nil {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		plan.Price = price
	}
	if in.VacancyQuantity != nil {
		qty, err := parseVacancyQuantity(*in.VacancyQuantity)
		if err != nil {
			return nil, err
		}
		plan.VacancyQuantity = qty
	}
	if in.Features != nil {
		plan.Features = *in.Features
	}
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}
	plan.UpdatedAt = time.Now()
	if err := uc.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// Delete borra un plan sin compras asociadas. Devuelve domain.ErrConflict si
// alguna compra lo referencia y domain.ErrNotFound si no existe.
func (uc *PlanUseCase) Delete(id string) error {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.purchaseRepo.ExistsByPlan(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrConflict
	}
	return uc.planRepo.Delete(id)
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil || price.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return price, nil
}

func parseVacancyQuantity(s string) (int, error) {
	qty, err := strconv.Atoi(s)
	if err != nil || qty < 0 {
		return 0, domain.ErrInvalidInput
	}
	return qty, nil
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price.String(),
		VacancyQuantity: p.VacancyQuantity,
		Features:        p.Features,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
