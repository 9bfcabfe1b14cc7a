package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). El decode/encode de Product vive solo aquí: el
// resto del sistema nunca ve filas crudas.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, category, supplier, unit_price, quantity, total_value, min_stock, kits, kit_skus, created_at, updated_at`

// scanProduct decodifica una fila de products en el entity (único punto de decode).
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var kitsJSON []byte
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Supplier,
		&p.UnitPrice, &p.Quantity, &p.TotalValue, &p.MinStock,
		&kitsJSON, &p.KitSKUs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if len(kitsJSON) > 0 {
		if err := json.Unmarshal(kitsJSON, &p.Kits); err != nil {
			return nil, fmt.Errorf("decode kits: %w", err)
		}
	}
	return &p, nil
}

// encodeKits serializa la lista de alias a JSONB (único punto de encode).
func encodeKits(kits []entity.KitAlias) ([]byte, error) {
	if len(kits) == 0 {
		return []byte("[]"), nil
	}
	raw, err := json.Marshal(kits)
	if err != nil {
		return nil, fmt.Errorf("encode kits: %w", err)
	}
	return raw, nil
}

// Create persiste un nuevo producto con sus alias de kit.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	kitsJSON, err := encodeKits(product.Kits)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (id, sku, name, category, supplier, unit_price, quantity, total_value, min_stock, kits, kit_skus, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Category, product.Supplier,
		product.UnitPrice, product.Quantity, product.TotalValue, product.MinStock,
		kitsJSON, product.KitSKUs, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.q.QueryRow(ctx, query, id))
}

// GetBySKU obtiene un producto por igualdad exacta de SKU (fase 1 del resolver).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return scanProduct(r.q.QueryRow(ctx, query, sku))
}

// GetByKitSKU obtiene el producto cuyo kit_skus contiene el código (fase 2 del
// resolver). Usa containment sobre el arreglo, cubierto por el índice GIN.
func (r *ProductRepo) GetByKitSKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE kit_skus @> ARRAY[$1]::text[] LIMIT 1`
	return scanProduct(r.q.QueryRow(ctx, query, sku))
}

// GetForUpdate relee el producto bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return scanProduct(r.q.QueryRow(ctx, query, id))
}

// Update actualiza los campos editables del producto. quantity/total_value no
// se tocan aquí salvo por el recálculo de total_value al cambiar el precio.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	kitsJSON, err := encodeKits(product.Kits)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET name = $2, category = $3, supplier = $4, unit_price = $5, total_value = $6, min_stock = $7, kits = $8, kit_skus = $9, updated_at = $10
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Supplier,
		product.UnitPrice, product.TotalValue, product.MinStock,
		kitsJSON, product.KitSKUs, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe únicamente quantity y total_value (motor de stock y
// borrado compensatorio).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity int64, totalValue decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, total_value = $3, updated_at = now() WHERE id = $1`,
		id, quantity, totalValue,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con paginación por offset.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
