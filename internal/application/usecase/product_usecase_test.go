package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-scan-api/internal/application/dto"
	"github.com/jhoicas/Bodega-scan-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByKitSKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		for _, alias := range p.KitSKUs {
			if alias == sku {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, quantity int64, totalValue decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
		p.TotalValue = totalValue
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func crearBase(t *testing.T, uc *usecase.ProductUseCase, in dto.CreateProductRequest) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	return out
}

func TestCreate_ProductoConKits(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	out := crearBase(t, uc, dto.CreateProductRequest{
		SKU:       "ABC-123",
		Name:      "Gaseosa 350ml",
		UnitPrice: decimal.NewFromFloat(10.505),
		Quantity:  24,
		Kits: []dto.KitAliasDTO{
			{SKU: "KIT-6", Multiplier: 6},
			{SKU: "KIT-12", Label: "Caja x12", Multiplier: 12},
		},
	})

	assert.NotEmpty(t, out.ID)
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromFloat(10.51)), "precio redondeado a 2")
	assert.True(t, out.TotalValue.Equal(decimal.NewFromFloat(252.24)), "24 * 10.51")
	assert.ElementsMatch(t, []string{"KIT-6", "KIT-12"}, out.KitSKUs)
	require.Len(t, out.Kits, 2)
	assert.Equal(t, "KIT-6", out.Kits[0].Label, "label por defecto = alias")
	assert.Equal(t, "Caja x12", out.Kits[1].Label)
}

func TestCreate_SKUDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	crearBase(t, uc, dto.CreateProductRequest{SKU: "ABC-123", Name: "Uno"})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "ABC-123", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_SKURegistradoComoAliasAjeno(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	crearBase(t, uc, dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno",
		Kits: []dto.KitAliasDTO{{SKU: "KIT-6", Multiplier: 6}},
	})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "KIT-6", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrKitAliasConflict)
}

func TestCreate_AliasIgualAlSKUPropio(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno",
		Kits: []dto.KitAliasDTO{{SKU: "ABC-123", Multiplier: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrKitAliasConflict)
}

func TestCreate_AliasIgualAlSKUDeOtroProducto(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	crearBase(t, uc, dto.CreateProductRequest{SKU: "XYZ-999", Name: "Otro"})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno",
		Kits: []dto.KitAliasDTO{{SKU: "XYZ-999", Multiplier: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrKitAliasConflict)
}

func TestCreate_AliasYaRegistradoEnOtroProducto(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	crearBase(t, uc, dto.CreateProductRequest{
		SKU: "XYZ-999", Name: "Otro",
		Kits: []dto.KitAliasDTO{{SKU: "KIT-6", Multiplier: 6}},
	})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno",
		Kits: []dto.KitAliasDTO{{SKU: "KIT-6", Multiplier: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrKitAliasConflict)
}

func TestCreate_AliasDuplicadoEnLaMismaLista(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno",
		Kits: []dto.KitAliasDTO{
			{SKU: "KIT-6", Multiplier: 6},
			{SKU: "KIT-6", Multiplier: 12},
		},
	})
	assert.ErrorIs(t, err, domain.ErrKitAliasConflict)
}

func TestCreate_MultiplicadorInvalido(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno",
		Kits: []dto.KitAliasDTO{{SKU: "KIT-0", Multiplier: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ValidacionesBasicas(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{SKU: "A", Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "A", Name: "X", UnitPrice: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "A", Name: "X", Quantity: -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un producto puede conservar sus propios alias al actualizarse.
func TestUpdate_ConservaAliasPropios(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	created := crearBase(t, uc, dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno", UnitPrice: decimal.NewFromInt(10),
		Kits: []dto.KitAliasDTO{{SKU: "KIT-6", Multiplier: 6}},
	})

	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name: "Uno renombrado", UnitPrice: decimal.NewFromInt(12),
		Kits: []dto.KitAliasDTO{{SKU: "KIT-6", Multiplier: 6}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Uno renombrado", out.Name)
	assert.ElementsMatch(t, []string{"KIT-6"}, out.KitSKUs)
}

// Update no acepta cantidad: el stock solo cambia vía movimientos.
func TestUpdate_NoTocaElStock(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	created := crearBase(t, uc, dto.CreateProductRequest{
		SKU: "ABC-123", Name: "Uno", UnitPrice: decimal.NewFromInt(10), Quantity: 7,
	})

	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name: "Uno", UnitPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Quantity)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(140)), "total recalculado con el nuevo precio")
}

func TestUpdate_ProductoInexistenteRetornaNil(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	out, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{
		Name: "X", UnitPrice: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDelete_ProductoInexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
