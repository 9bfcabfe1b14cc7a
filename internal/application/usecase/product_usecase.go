package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bodega-scan-api/internal/application/dto"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity solo cambia vía
// movimientos (motor de escaneo o borrado compensatorio); aquí únicamente se
// fija el stock inicial al crear.
//
// La unicidad global de los alias de kit se valida en este punto de escritura:
// un alias no puede coincidir con el SKU de ningún producto ni con un alias de
// otro producto. El resolver asume esa invariante.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con su stock inicial y sus alias de kit.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	// Un SKU de producto tampoco puede estar ya registrado como alias de kit.
	if aliasOwner, err := uc.repo.GetByKitSKU(ctx, sku); err != nil {
		return nil, err
	} else if aliasOwner != nil {
		return nil, domain.ErrKitAliasConflict
	}

	kits, err := uc.validateKits(ctx, "", sku, in.Kits)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Supplier:  in.Supplier,
		UnitPrice: in.UnitPrice.Round(2),
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
		Kits:      kits,
		CreatedAt: now,
		UpdatedAt: now,
	}
	product.SyncKitSKUs()
	product.RecalcTotalValue()

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU exacto. (nil, nil) si no existe.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos con paginación por offset.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto. No acepta Quantity: el stock solo cambia vía
// movimientos. TotalValue se recalcula si cambia el precio.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if strings.TrimSpace(in.Name) == "" || in.UnitPrice.IsNegative() || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	kits, err := uc.validateKits(ctx, product.ID, product.SKU, in.Kits)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Category = in.Category
	product.Supplier = in.Supplier
	product.UnitPrice = in.UnitPrice.Round(2)
	product.MinStock = in.MinStock
	product.Kits = kits
	product.SyncKitSKUs()
	product.RecalcTotalValue()
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete elimina un producto. Los movimientos históricos quedan en el ledger;
// su borrado posterior ya no compensa stock (el producto no existe).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// validateKits normaliza y valida la lista de alias de kit de un producto:
// multiplier >= 1, sin duplicados dentro de la lista, y unicidad global del
// alias frente al SKU propio, a los SKU de otros productos y a los alias de
// otros productos. productID vacío = producto en creación.
func (uc *ProductUseCase) validateKits(ctx context.Context, productID, ownSKU string, in []dto.KitAliasDTO) ([]entity.KitAlias, error) {
	if len(in) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(in))
	kits := make([]entity.KitAlias, 0, len(in))
	for _, k := range in {
		alias := strings.TrimSpace(k.SKU)
		if alias == "" || k.Multiplier < 1 {
			return nil, domain.ErrInvalidInput
		}
		if alias == ownSKU {
			return nil, domain.ErrKitAliasConflict
		}
		if _, dup := seen[alias]; dup {
			return nil, domain.ErrKitAliasConflict
		}
		seen[alias] = struct{}{}

		// El alias no puede ser el SKU de ningún producto.
		if other, err := uc.repo.GetBySKU(ctx, alias); err != nil {
			return nil, err
		} else if other != nil {
			return nil, domain.ErrKitAliasConflict
		}
		// Ni un alias ya registrado en otro producto.
		if owner, err := uc.repo.GetByKitSKU(ctx, alias); err != nil {
			return nil, err
		} else if owner != nil && owner.ID != productID {
			return nil, domain.ErrKitAliasConflict
		}

		label := strings.TrimSpace(k.Label)
		if label == "" {
			label = alias
		}
		kits = append(kits, entity.KitAlias{SKU: alias, Label: label, Multiplier: k.Multiplier})
	}
	return kits, nil
}
