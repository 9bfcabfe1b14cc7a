package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/Bodega-scan-api/internal/application/auth"
	"github.com/jhoicas/Bodega-scan-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/application/tracking"
	"github.com/jhoicas/Bodega-scan-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ScanEngine     *scan.Engine
	ScanResolver   *scan.Resolver
	TrackingUC     *tracking.UseCase
	LedgerUC       *ledger.UseCase
	ProductUC      *usecase.ProductUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	ScanRatePerMin int
	Log            *logger.Logger
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

	// Scan (protegido, con rate limit por IP: los escáneres disparan ráfagas)
	scanRate := deps.ScanRatePerMin
	if scanRate <= 0 {
		scanRate = 120
	}
	scanGroup := protected.Group("/scan", limiter.New(limiter.Config{
		Max:        scanRate,
		Expiration: time.Minute,
	}))
	scanHandler := NewScanHandler(deps.ScanEngine, deps.ScanResolver, deps.TrackingUC, deps.Log)
	scanGroup.Post("/", scanHandler.StockOut)
	scanGroup.Post("/in", scanHandler.StockIn)
	scanGroup.Get("/resolve", scanHandler.Resolve)

	// Movements (protegido; el borrado compensatorio es solo para admin)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Get("/", movementHandler.List)
	movements.Get("/export", movementHandler.Export)
	movements.Delete("/:id", RequireRole(entity.RoleAdmin), movementHandler.Delete)

	// Tracking (protegido)
	trackingGroup := protected.Group("/tracking")
	trackingHandler := NewTrackingHandler(deps.TrackingUC)
	trackingGroup.Post("/", trackingHandler.Record)
	trackingGroup.Get("/", trackingHandler.List)
	trackingGroup.Get("/search", trackingHandler.Search)
	trackingGroup.Get("/:id", trackingHandler.GetByID)
	trackingGroup.Delete("/:id", RequireRole(entity.RoleAdmin), trackingHandler.Delete)

	// Products (protegido; escritura solo para admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
}
