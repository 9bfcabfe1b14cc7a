package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay coincidencia.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetBySKU busca por igualdad exacta del campo sku (fase 1 del resolver).
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetByKitSKU busca el producto cuyo arreglo kit_skus contiene el código
	// (fase 2 del resolver).
	GetByKitSKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate relee el producto bloqueando la fila; solo tiene sentido
	// dentro de una transacción (TxRunner).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe únicamente quantity y total_value (motor de stock).
	UpdateStock(ctx context.Context, id string, quantity int64, totalValue decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
