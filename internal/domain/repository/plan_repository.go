package repository

import "github.com/tu-usuario/empleos-pro/internal/domain/entity"

// PlanRepository define el puerto de persistencia para Plan (DIP).
type PlanRepository interface {
	Create(plan *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	Update(plan *entity.Plan) error
	List(activeOnly bool) ([]*entity.Plan, error)
	// Delete borra el plan. La guarda referencial (compras existentes) la
	// valida el caso de uso antes de llamar aquí.
	Delete(id string) error
}
