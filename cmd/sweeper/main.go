// Barrido programado de vencimientos: transiciona a expired las compras
// activas cuya fecha de vigencia ya pasó. Pensado para correr como proceso
// aparte del API (cron dentro del proceso, no del sistema).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tu-usuario/empleos-pro/internal/application/purchase"
	"github.com/tu-usuario/empleos-pro/internal/infrastructure/postgres"
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
		Service: "sweeper",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("schedule", cfg.Billing.SweepSchedule).
		Msg("iniciando sweeper de vencimientos")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	purchaseRepo := postgres.NewPurchaseRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	purchaseUC := purchase.NewUseCase(txRunner, purchaseRepo, planRepo, cfg.Billing.ValidityDays)

	sweep := func() {
		start := time.Now()
		res, err := purchaseUC.SweepExpired(start)
		if err != nil {
			log.Error().Err(err).Msg("barrido de vencimientos")
			return
		}
		log.Info().
			Int("expired", res.ExpiredCount).
			Dur("took", time.Since(start)).
			Msg("barrido de vencimientos completado")
	}

	// Un barrido inmediato al arrancar: compras vencidas durante un downtime
	// del sweeper no esperan hasta la próxima marca del cron
	sweep()

	c := cron.New()
	if _, err := c.AddFunc(cfg.Billing.SweepSchedule, sweep); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Billing.SweepSchedule).Msg("expresión cron inválida")
	}
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, deteniendo sweeper...")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info().Msg("sweeper detenido")
}
