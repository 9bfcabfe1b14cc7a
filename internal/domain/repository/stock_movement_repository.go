package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

// MovementFilter filtros del ledger de movimientos. Los campos string vacíos
// y los punteros nil se ignoran.
type MovementFilter struct {
	SKU        string // SKU del producto padre
	ScannedSKU string // código físicamente escaneado (incluye alias de kit)
	UserID     string
	Type       string // out, in
	From       *time.Time
	To         *time.Time
}

// MovementCursor posición del último registro visto, para paginación por cursor.
// El orden del ledger es (timestamp DESC, id DESC); el cursor apunta al último
// par devuelto.
type MovementCursor struct {
	Timestamp time.Time
	ID        string
}

// StockMovementRepository define el puerto de persistencia del ledger (DIP).
// Create asigna el timestamp en el servidor de datos y lo deja en el entity.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List devuelve hasta limit movimientos posteriores al cursor (nil = desde
	// el más reciente), ordenados por timestamp descendente.
	List(ctx context.Context, filter MovementFilter, limit int, cursor *MovementCursor) ([]*entity.StockMovement, error)
	// Delete retorna ErrMovementNotFound si ninguna fila coincide: el caller
	// transaccional usa esa señal para abortar una compensación duplicada.
	Delete(ctx context.Context, id string) error
}
