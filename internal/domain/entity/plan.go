package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan representa un paquete comprable que otorga un cupo de vacantes.
// Inmutable respecto a compras existentes: editar un plan solo afecta
// compras futuras (el precio se congela en Purchase.Amount al comprar).
type Plan struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	VacancyQuantity int    // créditos de publicación de vacantes que otorga
	Features        string // texto libre mostrado al tenant
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
