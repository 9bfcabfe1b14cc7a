package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Las filas son append-only: no existe Update.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, sku, type, qty, user_id, user_name, "timestamp", unit_price, total_value, parent_sku, scanned_sku, multiplier, effective_qty`

// scanMovement decodifica una fila de stock_movements (único punto de decode).
func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.SKU, &m.Type, &m.Qty,
		&m.UserID, &m.UserName, &m.Timestamp,
		&m.UnitPrice, &m.TotalValue,
		&m.ParentSKU, &m.ScannedSKU, &m.Multiplier, &m.EffectiveQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	return &m, nil
}

// Create persiste un movimiento. El timestamp lo asigna el servidor de datos
// (now() al confirmar) y se relee vía RETURNING hacia el entity.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, sku, type, qty, user_id, user_name, "timestamp", unit_price, total_value, parent_sku, scanned_sku, multiplier, effective_qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8, $9, $10, $11, $12, $13)
		RETURNING "timestamp"`
	err := r.q.QueryRow(ctx, query,
		movement.ID, movement.ProductID, movement.SKU, movement.Type, movement.Qty,
		movement.UserID, movement.UserName,
		movement.UnitPrice, movement.TotalValue,
		movement.ParentSKU, movement.ScannedSKU, movement.Multiplier, movement.EffectiveQty,
	).Scan(&movement.Timestamp)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. (nil, nil) si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	return scanMovement(r.q.QueryRow(ctx, query, id))
}

// List devuelve hasta limit movimientos que cumplen el filtro, posteriores al
// cursor, ordenados por ("timestamp" DESC, id DESC). El cursor es la posición
// del último registro devuelto en la página anterior.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit int, cursor *repository.MovementCursor) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1

	add := func(clause string, value any) {
		query += fmt.Sprintf(clause, pos)
		args = append(args, value)
		pos++
	}

	if filter.SKU != "" {
		add(" AND sku = $%d", filter.SKU)
	}
	if filter.ScannedSKU != "" {
		add(" AND scanned_sku = $%d", filter.ScannedSKU)
	}
	if filter.UserID != "" {
		add(" AND user_id = $%d", filter.UserID)
	}
	if filter.Type != "" {
		add(" AND type = $%d", filter.Type)
	}
	if filter.From != nil {
		add(` AND "timestamp" >= $%d`, *filter.From)
	}
	if filter.To != nil {
		add(` AND "timestamp" <= $%d`, *filter.To)
	}
	if cursor != nil {
		query += fmt.Sprintf(` AND ("timestamp", id) < ($%d, $%d)`, pos, pos+1)
		args = append(args, cursor.Timestamp, cursor.ID)
		pos += 2
	}
	query += fmt.Sprintf(` ORDER BY "timestamp" DESC, id DESC LIMIT $%d`, pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina un movimiento por ID (solo desde el borrado compensatorio
// del ledger). Si el DELETE no alcanza ninguna fila retorna
// ErrMovementNotFound: otro borrado concurrente ya la eliminó y ya aplicó la
// compensación, así que la transacción del caller debe abortar en lugar de
// compensar por segunda vez.
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}
