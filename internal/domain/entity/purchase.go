package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra de plan. Máquina de un solo sentido:
// active -> expired (automático por fecha) y active -> cancelled (manual).
// expired y cancelled son terminales.
const (
	PurchaseStatusActive    = "active"
	PurchaseStatusExpired   = "expired"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase registra la compra de un Plan por un tenant, con su propio ciclo
// de vencimiento. Registro financiero: nunca se borra.
type Purchase struct {
	ID            string
	TenantID      string
	PlanID        string
	PurchaseDate  time.Time
	ExpiryDate    time.Time
	Amount        decimal.Decimal // snapshot del precio del plan al momento de la compra
	Status        string          // ver constantes PurchaseStatus*
	PaymentMethod string
	TransactionID string // referencia externa del medio de pago
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransitionTo informa si el cambio de estado es legal según la máquina
// de estados de un solo sentido.
func (p *Purchase) CanTransitionTo(status string) bool {
	if p.Status != PurchaseStatusActive {
		return false // expired y cancelled son terminales
	}
	return status == PurchaseStatusExpired || status == PurchaseStatusCancelled
}

// IsExpiredAt informa si la compra activa ya venció en el instante dado.
// Compras no activas nunca "vencen de nuevo".
func (p *Purchase) IsExpiredAt(now time.Time) bool {
	return p.Status == PurchaseStatusActive && p.ExpiryDate.Before(now)
}
