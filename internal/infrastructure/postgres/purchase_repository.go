package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
	"github.com/tu-usuario/empleos-pro/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del registro de compras sobre PostgreSQL
// (usable con pool o tx). Registro financiero: sin Delete.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, tenant_id, plan_id, purchase_date, expiry_date, amount, status, payment_method, transaction_id, created_at, updated_at`

// Create persiste una compra nueva.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, tenant_id, plan_id, purchase_date, expiry_date, amount, status, payment_method, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.TenantID, purchase.PlanID,
		purchase.PurchaseDate, purchase.ExpiryDate, purchase.Amount,
		purchase.Status, purchase.PaymentMethod, purchase.TransactionID,
		purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TenantID, &p.PlanID, &p.PurchaseDate, &p.ExpiryDate,
		&p.Amount, &p.Status, &p.PaymentMethod, &p.TransactionID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// List devuelve compras según filtros de reporte, más recientes primero.
func (r *PurchaseRepo) List(filters repository.PurchaseFilters) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE 1=1`
	args := []any{}
	pos := 1
	if filters.TenantID != "" {
		query += fmt.Sprintf(" AND tenant_id = $%d", pos)
		args = append(args, filters.TenantID)
		pos++
	}
	if filters.StartDate != nil {
		query += fmt.Sprintf(" AND purchase_date >= $%d", pos)
		args = append(args, *filters.StartDate)
		pos++
	}
	if filters.EndDate != nil {
		query += fmt.Sprintf(" AND purchase_date <= $%d", pos)
		args = append(args, *filters.EndDate)
		pos++
	}
	if filters.MinAmount != nil {
		query += fmt.Sprintf(" AND amount >= $%d", pos)
		args = append(args, *filters.MinAmount)
		pos++
	}
	if filters.MaxAmount != nil {
		query += fmt.Sprintf(" AND amount <= $%d", pos)
		args = append(args, *filters.MaxAmount)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY purchase_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.TenantID, &p.PlanID, &p.PurchaseDate, &p.ExpiryDate,
			&p.Amount, &p.Status, &p.PaymentMethod, &p.TransactionID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListActiveExpiredBefore devuelve compras active con expiry_date < now
// (candidatas al barrido de vencimientos).
func (r *PurchaseRepo) ListActiveExpiredBefore(now time.Time) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases
		WHERE status = $1 AND expiry_date < $2
		ORDER BY expiry_date ASC`
	rows, err := r.q.Query(context.Background(), query, entity.PurchaseStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("list expired purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.TenantID, &p.PlanID, &p.PurchaseDate, &p.ExpiryDate,
			&p.Amount, &p.Status, &p.PaymentMethod, &p.TransactionID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado solo si el estado actual coincide (update
// condicional). Devuelve true si la fila cambió; false si otro actor la
// transicionó antes o el id no existe. Hace el barrido idempotente sin
// coordinación adicional.
func (r *PurchaseRepo) UpdateStatus(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error) {
	query := `UPDATE purchases SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(context.Background(), query, id, fromStatus, toStatus, updatedAt)
	if err != nil {
		return false, fmt.Errorf("update purchase status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ExistsByPlan informa si alguna compra referencia el plan (guarda referencial).
func (r *PurchaseRepo) ExistsByPlan(planID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM purchases WHERE plan_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, planID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check plan references: %w", err)
	}
	return exists, nil
}
