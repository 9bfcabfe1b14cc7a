package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

var _ repository.TrackingCodeRepository = (*TrackingCodeRepo)(nil)

// TrackingCodeRepo implementación sobre PostgreSQL (usable con pool o tx).
type TrackingCodeRepo struct {
	q Querier
}

// NewTrackingCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTrackingCodeRepository(q Querier) *TrackingCodeRepo {
	return &TrackingCodeRepo{q: q}
}

const trackingColumns = `id, code, code_normalized, user_id, user_name, created_at, product_sku, product_name, products, stock_movement_id`

// scanTracking decodifica una fila de tracking_codes (único punto de decode).
func scanTracking(row pgx.Row) (*entity.TrackingCode, error) {
	var t entity.TrackingCode
	var productsJSON []byte
	err := row.Scan(
		&t.ID, &t.Code, &t.CodeNormalized, &t.UserID, &t.UserName, &t.CreatedAt,
		&t.ProductSKU, &t.ProductName, &productsJSON, &t.StockMovementID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan tracking code: %w", err)
	}
	if len(productsJSON) > 0 {
		if err := json.Unmarshal(productsJSON, &t.Products); err != nil {
			return nil, fmt.Errorf("decode tracking products: %w", err)
		}
	}
	return &t, nil
}

// Create persiste un código de rastreo. created_at lo asigna el servidor de
// datos y se relee vía RETURNING.
func (r *TrackingCodeRepo) Create(ctx context.Context, code *entity.TrackingCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	productsJSON := []byte("[]")
	if len(code.Products) > 0 {
		raw, err := json.Marshal(code.Products)
		if err != nil {
			return fmt.Errorf("encode tracking products: %w", err)
		}
		productsJSON = raw
	}
	query := `
		INSERT INTO tracking_codes (id, code, code_normalized, user_id, user_name, created_at, product_sku, product_name, products, stock_movement_id)
		VALUES ($1, $2, $3, $4, $5, now(), $6, $7, $8, $9)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		code.ID, code.Code, code.CodeNormalized, code.UserID, code.UserName,
		code.ProductSKU, code.ProductName, productsJSON, code.StockMovementID,
	).Scan(&code.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert tracking code: %w", err)
	}
	return nil
}

// GetByID obtiene un código por ID. (nil, nil) si no existe.
func (r *TrackingCodeRepo) GetByID(ctx context.Context, id string) (*entity.TrackingCode, error) {
	query := `SELECT ` + trackingColumns + ` FROM tracking_codes WHERE id = $1`
	return scanTracking(r.q.QueryRow(ctx, query, id))
}

// ListByUser lista códigos registrados por un usuario, más recientes primero.
func (r *TrackingCodeRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.TrackingCode, error) {
	query := `SELECT ` + trackingColumns + ` FROM tracking_codes WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tracking codes: %w", err)
	}
	defer rows.Close()
	return collectTracking(rows)
}

// SearchByPrefix busca por prefijo sobre code_normalized con rango opcional de
// created_at. El prefijo se escapa para LIKE.
func (r *TrackingCodeRepo) SearchByPrefix(ctx context.Context, prefix string, from, to *time.Time, limit int) ([]*entity.TrackingCode, error) {
	query := `SELECT ` + trackingColumns + ` FROM tracking_codes WHERE code_normalized LIKE $1`
	args := []any{escapeLike(prefix) + "%"}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search tracking codes: %w", err)
	}
	defer rows.Close()
	return collectTracking(rows)
}

// Delete elimina un código por ID.
func (r *TrackingCodeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tracking_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tracking code: %w", err)
	}
	return nil
}

func collectTracking(rows pgx.Rows) ([]*entity.TrackingCode, error) {
	var list []*entity.TrackingCode
	for rows.Next() {
		t, err := scanTracking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// escapeLike escapa los metacaracteres de LIKE en el prefijo del usuario.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
