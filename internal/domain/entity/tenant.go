package entity

import "time"

// Tipos de tenant: companies autoregistradas y clients administrados por un
// admin comparten la misma tabla, diferenciados por kind.
const (
	TenantKindCompany = "company"
	TenantKindClient  = "client"
)

// Tenant representa la cuenta dueña de compras y créditos (multi-tenant).
// Las compras y las transacciones de crédito referencian el mismo tenant_id.
type Tenant struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria (CNPJ/NIT), opcional
	Email     string
	Phone     string
	Kind      string // ver constantes TenantKind*
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
