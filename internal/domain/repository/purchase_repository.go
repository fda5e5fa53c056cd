package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
)

// PurchaseFilters filtros del listado de compras (reportes).
type PurchaseFilters struct {
	TenantID  string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Limit     int
	Offset    int
}

// PurchaseRepository define el puerto de persistencia para Purchase (DIP).
// Las compras son registro financiero: no hay Delete.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	List(filters PurchaseFilters) ([]*entity.Purchase, error)
	// ListActiveExpiredBefore devuelve compras status=active con expiry_date < now.
	ListActiveExpiredBefore(now time.Time) ([]*entity.Purchase, error)
	// UpdateStatus cambia el estado solo si el estado actual coincide con
	// fromStatus (update condicional; hace el barrido idempotente y seguro
	// ante barridos concurrentes). Devuelve true si la fila cambió.
	UpdateStatus(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error)
	// ExistsByPlan informa si algún purchase referencia el plan (guarda
	// referencial para el borrado de planes).
	ExistsByPlan(planID string) (bool, error)
}
