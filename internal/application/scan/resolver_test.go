package scan_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

func producto(id, sku string, qty int64, kits ...entity.KitAlias) *entity.Product {
	p := &entity.Product{
		ID:        id,
		SKU:       sku,
		Name:      "Producto " + sku,
		UnitPrice: decimal.NewFromFloat(10.50),
		Quantity:  qty,
		Kits:      kits,
	}
	p.SyncKitSKUs()
	p.RecalcTotalValue()
	return p
}

func TestResolver_SKUDirecto(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", "ABC-123", 10))
	resolver := scan.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "ABC-123")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "p1", res.Product.ID)
	assert.Nil(t, res.Kit, "coincidencia directa no trae alias de kit")
}

func TestResolver_AliasDeKit(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", "ABC-123", 10,
		entity.KitAlias{SKU: "KIT-6", Label: "Caja x6", Multiplier: 6}))
	resolver := scan.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "KIT-6")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "p1", res.Product.ID)
	require.NotNil(t, res.Kit)
	assert.Equal(t, int64(6), res.Kit.Multiplier)
}

// El SKU directo siempre gana sobre un alias de kit con la misma cadena.
func TestResolver_SKUDirectoTienePrecedenciaSobreAlias(t *testing.T) {
	directo := producto("p1", "X-100", 5)
	conAlias := producto("p2", "OTRO-SKU", 8,
		entity.KitAlias{SKU: "X-100", Label: "Paquete", Multiplier: 4})
	repo := newFakeProductRepo(directo, conAlias)
	resolver := scan.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "X-100")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "p1", res.Product.ID)
	assert.Nil(t, res.Kit)
}

func TestResolver_CodigoDesconocidoRetornaNil(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", "ABC-123", 10))
	resolver := scan.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "NO-EXISTE")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolver_CodigoVacioRetornaError(t *testing.T) {
	resolver := scan.NewResolver(newFakeProductRepo())

	_, err := resolver.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyCode)
}

// El resolver recorta espacios pero no cambia mayúsculas/minúsculas: los SKU
// son sensibles a caja.
func TestResolver_NoCambiaCaja(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", "ABC-123", 10))
	resolver := scan.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "  abc-123  ")
	require.NoError(t, err)
	assert.Nil(t, res)
}
