package scan

import (
	"context"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
	domscan "github.com/jhoicas/Bodega-scan-api/internal/domain/scan"
)

// Resolution resultado de resolver un código: el producto padre y, si el
// código era un alias de kit, el alias con su multiplicador.
type Resolution struct {
	// Code es el código ya normalizado que se resolvió.
	Code    string
	Product *entity.Product
	Kit     *entity.KitAlias // nil en coincidencia directa de SKU
}

// Resolver resuelve un código normalizado a un producto, de forma directa por
// SKU o a través de un alias de kit. Búsqueda en dos fases: primero igualdad
// exacta de sku, después containment sobre kit_skus. Un alias de kit es
// indistinguible de un SKU real para el escáner, pero siempre mapea a
// exactamente un padre con un multiplicador.
type Resolver struct {
	products repository.ProductRepository
}

// NewResolver construye el resolver.
func NewResolver(products repository.ProductRepository) *Resolver {
	return &Resolver{products: products}
}

// Resolve devuelve (nil, nil) cuando el código no es un producto ni un alias
// conocido (el caller decide si intenta el fallback de rastreo), y
// domain.ErrEmptyCode cuando la entrada queda vacía tras el recorte.
func (r *Resolver) Resolve(ctx context.Context, rawCode string) (*Resolution, error) {
	code, err := domscan.NormalizeCode(rawCode)
	if err != nil {
		return nil, err
	}

	// Fase 1: coincidencia directa de SKU. Siempre tiene precedencia sobre
	// cualquier alias de kit, incluso si la misma cadena apareciera también
	// como alias en otro producto.
	product, err := r.products.GetBySKU(ctx, code)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return &Resolution{Code: code, Product: product}, nil
	}

	// Fase 2: containment sobre kit_skus.
	parent, err := r.products.GetByKitSKU(ctx, code)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, nil
	}
	kit := parent.FindKit(code)
	if kit == nil {
		// kit_skus desincronizado de kits: datos corruptos, tratar como no resuelto
		return nil, nil
	}
	return &Resolution{Code: code, Product: parent, Kit: kit}, nil
}
