package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del catálogo de planes sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, name, description, price, vacancy_quantity, features, is_active, created_at, updated_at`

// Create persiste un plan nuevo.
func (r *PlanRepo) Create(plan *entity.Plan) error {
	query := `
		INSERT INTO plans (id, name, description, price, vacancy_quantity, features, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Description, plan.Price, plan.VacancyQuantity,
		plan.Features, plan.IsActive, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.VacancyQuantity,
		&p.Features, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// Update actualiza un plan existente.
func (r *PlanRepo) Update(plan *entity.Plan) error {
	query := `
		UPDATE plans SET name = $2, description = $3, price = $4, vacancy_quantity = $5, features = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Description, plan.Price, plan.VacancyQuantity,
		plan.Features, plan.IsActive, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// List devuelve los planes, opcionalmente solo los activos.
func (r *PlanRepo) List(activeOnly bool) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.VacancyQuantity,
			&p.Features, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete borra un plan por ID. La guarda referencial vive en el caso de uso.
func (r *PlanRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}
