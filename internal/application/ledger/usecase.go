// Package ledger lee el historial de movimientos de stock (paginado por
// cursor, con modo export) y soporta el borrado compensatorio: eliminar un
// movimiento revierte su efecto sobre el stock del producto si este aún existe.
package ledger

import (
	"context"

	"github.com/jhoicas/Bodega-scan-api/internal/application/ports"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	exportPageSize  = 500
)

// Page una página del ledger. NextCursor vacío significa que no hay más.
type Page struct {
	Movements  []*entity.StockMovement
	NextCursor string
}

// Export resultado del modo export. Truncated indica que se alcanzó el tope.
type Export struct {
	Movements []*entity.StockMovement
	Truncated bool
}

// UseCase lectura y borrado compensatorio del ledger.
type UseCase struct {
	movements repository.StockMovementRepository
	tx        ports.TxRunner
	exportCap int
}

// NewUseCase construye el caso de uso. exportCap <= 0 usa 5000.
func NewUseCase(movements repository.StockMovementRepository, tx ports.TxRunner, exportCap int) *UseCase {
	if exportCap <= 0 {
		exportCap = 5000
	}
	return &UseCase{movements: movements, tx: tx, exportCap: exportCap}
}

// List devuelve una página del ledger ordenada por timestamp descendente.
// cursorToken vacío arranca desde el movimiento más reciente.
func (uc *UseCase) List(ctx context.Context, filter repository.MovementFilter, limit int, cursorToken string) (*Page, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	cursor, err := decodeCursor(cursorToken)
	if err != nil {
		return nil, err
	}

	// limit+1 para saber si existe página siguiente sin un count extra.
	rows, err := uc.movements.List(ctx, filter, limit+1, cursor)
	if err != nil {
		return nil, err
	}
	page := &Page{Movements: rows}
	if len(rows) > limit {
		page.Movements = rows[:limit]
		last := page.Movements[limit-1]
		page.NextCursor = encodeCursor(repository.MovementCursor{Timestamp: last.Timestamp, ID: last.ID})
	}
	return page, nil
}

// ExportAll pagina internamente hasta agotar los resultados o alcanzar el
// tope configurado.
func (uc *UseCase) ExportAll(ctx context.Context, filter repository.MovementFilter) (*Export, error) {
	out := &Export{}
	var cursor *repository.MovementCursor
	for {
		remaining := uc.exportCap - len(out.Movements)
		if remaining <= 0 {
			out.Truncated = true
			return out, nil
		}
		size := exportPageSize
		if size > remaining {
			size = remaining
		}
		rows, err := uc.movements.List(ctx, filter, size+1, cursor)
		if err != nil {
			return nil, err
		}
		more := len(rows) > size
		if more {
			rows = rows[:size]
		}
		out.Movements = append(out.Movements, rows...)
		if !more {
			return out, nil
		}
		last := rows[len(rows)-1]
		cursor = &repository.MovementCursor{Timestamp: last.Timestamp, ID: last.ID}
	}
}

// Delete elimina un movimiento en su propia transacción, aplicando el ajuste
// compensatorio sobre el producto: un "out" devuelve qty al stock, un "in" lo
// resta con piso en cero. Si el producto ya no existe, el movimiento se
// elimina sin compensación (no es error). Es una corrección manual, no un log
// de rollback generalizado: no reconstruye estados intermedios.
func (uc *UseCase) Delete(ctx context.Context, movementID string) error {
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		movement, err := repos.Movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrMovementNotFound
		}

		product, err := repos.Products.GetForUpdate(ctx, movement.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			switch movement.Type {
			case entity.MovementTypeOut:
				product.Quantity += movement.Qty
			case entity.MovementTypeIn:
				product.Quantity -= movement.Qty
				if product.Quantity < 0 {
					product.Quantity = 0
				}
			}
			product.RecalcTotalValue()
			if err := repos.Products.UpdateStock(ctx, product.ID, product.Quantity, product.TotalValue); err != nil {
				return err
			}
		}

		// Si otro borrado concurrente eliminó la fila entre la lectura y este
		// DELETE, el repo retorna ErrMovementNotFound y el rollback revierte
		// la compensación de arriba: el ajuste se aplica exactamente una vez.
		return repos.Movements.Delete(ctx, movement.ID)
	})
}
