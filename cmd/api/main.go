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

	"github.com/jhoicas/Bodega-scan-api/internal/application/auth"
	"github.com/jhoicas/Bodega-scan-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/application/tracking"
	"github.com/jhoicas/Bodega-scan-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-scan-api/internal/infrastructure/carrier"
	"github.com/jhoicas/Bodega-scan-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodega-scan-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-scan-api/pkg/config"
	"github.com/jhoicas/Bodega-scan-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	trackingRepo := postgres.NewTrackingCodeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	matcher, err := carrier.NewRegexMatcher(cfg.Scan.CarrierPatterns)
	if err != nil {
		log.Fatal().Err(err).Msg("patrones de rastreo inválidos (SCAN_CARRIER_PATTERNS)")
	}

	resolver := scan.NewResolver(productRepo)
	engine := scan.NewEngine(resolver, txRunner)
	trackingUC := tracking.NewUseCase(trackingRepo, matcher)
	ledgerUC := ledger.NewUseCase(movementRepo, txRunner, cfg.Scan.ExportCap)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Bodega Scan API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ScanEngine:     engine,
		ScanResolver:   resolver,
		TrackingUC:     trackingUC,
		LedgerUC:       ledgerUC,
		ProductUC:      productUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
		ScanRatePerMin: cfg.Scan.RateLimitPerMin,
		Log:            log,
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
