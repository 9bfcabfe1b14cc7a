package scan

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-scan-api/internal/application/ports"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

// Actor identidad del usuario que ejecuta la operación (viene del token).
type Actor struct {
	UserID   string
	UserName string
}

// StockInput entrada para StockOut/StockIn: código escaneado, cantidad
// solicitada y actor.
type StockInput struct {
	Code     string
	Quantity float64
	Actor    Actor
}

// StockResult resultado de una transacción de stock exitosa. Product es el
// snapshot posterior a la actualización.
type StockResult struct {
	Product      *entity.Product
	Kit          *entity.KitAlias
	EffectiveQty int64
	ScannedSKU   string
	Movement     *entity.StockMovement
}

// Engine motor transaccional de stock: resuelve el código, valida y aplica el
// read-check-write atómico sobre el producto y agrega la entrada del ledger,
// todo dentro de una única transacción (TxRunner). La verificación de cantidad
// ocurre sobre la relectura con bloqueo de fila, no sobre el snapshot de la
// resolución: dos escaneos concurrentes del mismo producto serializan ahí.
type Engine struct {
	resolver *Resolver
	tx       ports.TxRunner
}

// NewEngine construye el motor.
func NewEngine(resolver *Resolver, tx ports.TxRunner) *Engine {
	return &Engine{resolver: resolver, tx: tx}
}

// StockOut descuenta stock por un escaneo. Errores: ErrUnauthenticated,
// ErrInvalidQuantity (validaciones locales, sin efectos), ErrProductNotFound
// (el caller puede intentar el fallback de rastreo), ErrInsufficientStock
// (rechazo de negocio, ningún descuento parcial).
func (e *Engine) StockOut(ctx context.Context, in StockInput) (*StockResult, error) {
	return e.apply(ctx, in, entity.MovementTypeOut)
}

// StockIn registra una entrada de stock (reposición) por el mismo camino de
// resolución y amplificación de kit que StockOut.
func (e *Engine) StockIn(ctx context.Context, in StockInput) (*StockResult, error) {
	return e.apply(ctx, in, entity.MovementTypeIn)
}

func (e *Engine) apply(ctx context.Context, in StockInput, movType string) (*StockResult, error) {
	if strings.TrimSpace(in.Actor.UserID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	qty, err := requestedQty(in.Quantity)
	if err != nil {
		return nil, err
	}

	res, err := e.resolver.Resolve(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrProductNotFound
	}

	multiplier := int64(1)
	if res.Kit != nil {
		multiplier = res.Kit.Multiplier
	}
	effectiveQty := qty * multiplier
	// El multiplicador es dato configurado externamente: revalidar aunque la
	// precondición ya garantice qty >= 1.
	if effectiveQty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	return ports.InTx(ctx, e.tx, func(repos ports.TxRepos) (*StockResult, error) {
		// Relectura con bloqueo de fila: quantity y unit_price vigentes, no el
		// snapshot posiblemente obsoleto de la resolución.
		product, err := repos.Products.GetForUpdate(ctx, res.Product.ID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}

		switch movType {
		case entity.MovementTypeOut:
			if product.Quantity < effectiveQty {
				return nil, domain.ErrInsufficientStock
			}
			product.Quantity -= effectiveQty
		case entity.MovementTypeIn:
			product.Quantity += effectiveQty
		default:
			return nil, domain.ErrInvalidInput
		}
		product.RecalcTotalValue()
		if err := repos.Products.UpdateStock(ctx, product.ID, product.Quantity, product.TotalValue); err != nil {
			return nil, err
		}

		unitPrice := product.UnitPrice.Round(2)
		movement := &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			SKU:          product.SKU,
			Type:         movType,
			Qty:          effectiveQty,
			UserID:       in.Actor.UserID,
			UserName:     in.Actor.UserName,
			UnitPrice:    unitPrice,
			TotalValue:   unitPrice.Mul(decimal.NewFromInt(effectiveQty)).Round(2),
			ParentSKU:    product.SKU,
			ScannedSKU:   res.Code,
			Multiplier:   multiplier,
			EffectiveQty: effectiveQty,
		}
		// Timestamp lo asigna el servidor de datos al confirmar (Create lo
		// deja escrito en movement.Timestamp).
		if err := repos.Movements.Create(ctx, movement); err != nil {
			return nil, err
		}

		return &StockResult{
			Product:      product,
			Kit:          res.Kit,
			EffectiveQty: effectiveQty,
			ScannedSKU:   res.Code,
			Movement:     movement,
		}, nil
	})
}

// requestedQty valida la cantidad solicitada: finita y > 0, truncada a entero
// con piso 1 (floor(max(1, q))).
func requestedQty(q float64) (int64, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	n := int64(math.Floor(q))
	if n < 1 {
		n = 1
	}
	return n, nil
}
