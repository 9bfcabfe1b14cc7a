package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Supplier  string          `json:"supplier,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"` // stock inicial
	MinStock  int64           `json:"min_stock,omitempty"`
	Kits      []KitAliasDTO   `json:"kits,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Quantity no se acepta:
// el stock solo cambia vía movimientos.
type UpdateProductRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Supplier  string          `json:"supplier,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	MinStock  int64           `json:"min_stock,omitempty"`
	Kits      []KitAliasDTO   `json:"kits,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Supplier   string          `json:"supplier,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
	MinStock   int64           `json:"min_stock,omitempty"`
	Kits       []KitAliasDTO   `json:"kits,omitempty"`
	KitSKUs    []string        `json:"kit_skus,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
