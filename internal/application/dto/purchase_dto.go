package dto

import "time"

// RecordPurchaseRequest registro de una compra de plan.
type RecordPurchaseRequest struct {
	PlanID        string `json:"plan_id"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
}

// PurchaseResponse representación pública de una compra.
type PurchaseResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	PlanID        string    `json:"plan_id"`
	PurchaseDate  time.Time `json:"purchase_date"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListPurchasesRequest filtros de reporte de compras (query params).
// Fechas en formato RFC 3339 o YYYY-MM-DD; montos como decimal textual.
type ListPurchasesRequest struct {
	TenantID  string `query:"tenant_id"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	MinAmount string `query:"min_amount"`
	MaxAmount string `query:"max_amount"`
	PageRequest
}

// PurchaseListResponse listado de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SweepResponse resultado de un barrido de vencimientos.
type SweepResponse struct {
	ExpiredCount int                `json:"expired_count"`
	Expired      []PurchaseResponse `json:"expired"`
}
