package repository

import "github.com/tu-usuario/empleos-pro/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	// GetForUpdate obtiene el tenant bloqueando su fila (SELECT FOR UPDATE).
	// Es el punto de serialización por tenant del libro de créditos: toda
	// mutación leer-saldo-luego-insertar debe pasar por aquí dentro de una tx.
	GetForUpdate(id string) (*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	List(limit, offset int) ([]*entity.Tenant, error)
}
