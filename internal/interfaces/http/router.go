package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empleos-pro/internal/application/auth"
	"github.com/tu-usuario/empleos-pro/internal/application/ledger"
	"github.com/tu-usuario/empleos-pro/internal/application/purchase"
	"github.com/tu-usuario/empleos-pro/internal/application/usecase"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC    *usecase.TenantUseCase
	PlanUC      *usecase.PlanUseCase
	PurchaseUC  *purchase.UseCase
	CreditUC    *ledger.UseCase
	StatementUC *ledger.StatementUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Plans (lectura para todos; mutaciones solo admin)
	plans := protected.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", planHandler.List)
	plans.Post("/", adminOnly, planHandler.Create)
	plans.Put("/:id", adminOnly, planHandler.Update)
	plans.Delete("/:id", adminOnly, planHandler.Delete)

	// Purchases (protegido; cancelación y barrido solo admin)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Record)
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/sweep", adminOnly, purchaseHandler.Sweep)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/cancel", adminOnly, purchaseHandler.Cancel)

	// Credits (protegido; grant y reconcile solo admin)
	credits := protected.Group("/credits")
	creditHandler := NewCreditHandler(deps.CreditUC, deps.StatementUC)
	credits.Get("/balance", creditHandler.Balance)
	credits.Get("/transactions", creditHandler.Transactions)
	credits.Get("/statement", creditHandler.Statement)
	credits.Post("/spend", creditHandler.Spend)
	credits.Post("/grant", adminOnly, creditHandler.Grant)
	credits.Get("/reconcile", adminOnly, creditHandler.Reconcile)

	// Tenants (solo admin)
	tenants := protected.Group("/tenants", adminOnly)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
}
