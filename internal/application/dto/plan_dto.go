package dto

import "time"

// CreatePlanRequest alta de plan (admin). Price y VacancyQuantity llegan como
// texto y se validan en el caso de uso (decimal no negativo / entero no negativo).
type CreatePlanRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	VacancyQuantity string `json:"vacancy_quantity"`
	Features        string `json:"features"`
	IsActive        *bool  `json:"is_active"`
}

// UpdatePlanRequest edición parcial de plan. Campos nil no se tocan.
// No altera compras existentes: el precio ya está congelado en cada Purchase.
type UpdatePlanRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	VacancyQuantity *string `json:"vacancy_quantity"`
	Features        *string `json:"features"`
	IsActive        *bool   `json:"is_active"`
}

// PlanResponse representación pública de un plan.
type PlanResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           string    `json:"price"`
	VacancyQuantity int       `json:"vacancy_quantity"`
	Features        string    `json:"features"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PlanListResponse listado de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
}
