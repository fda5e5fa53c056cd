package entity

import "time"

// Roles de usuario. admin gestiona catálogo, tenants y ajustes de créditos;
// company opera sobre su propio tenant (comprar planes, publicar vacantes).
const (
	RoleAdmin   = "admin"
	RoleCompany = "company"
)

// User cuenta de acceso asociada a un tenant.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
