package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/empleos-pro/internal/application/auth"
	appledger "github.com/tu-usuario/empleos-pro/internal/application/ledger"
	"github.com/tu-usuario/empleos-pro/internal/application/purchase"
	"github.com/tu-usuario/empleos-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/empleos-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/empleos-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/empleos-pro/internal/interfaces/http"
	"github.com/tu-usuario/empleos-pro/pkg/config"
	"github.com/tu-usuario/empleos-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	creditRepo := postgres.NewCreditTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	planUC := usecase.NewPlanUseCase(planRepo, purchaseRepo)
	creditUC := appledger.NewUseCase(txRunner, creditRepo)
	purchaseUC := purchase.NewUseCase(txRunner, purchaseRepo, planRepo, cfg.Billing.ValidityDays)

	// PDF: extracto de créditos del tenant
	pdfGenerator := infrapdf.NewMarotoStatementGenerator()
	statementUC := appledger.NewStatementUseCase(tenantRepo, creditRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EmpleosPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:    tenantUC,
		PlanUC:      planUC,
		PurchaseUC:  purchaseUC,
		CreditUC:    creditUC,
		StatementUC: statementUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
