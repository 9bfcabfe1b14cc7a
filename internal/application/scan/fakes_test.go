package scan_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-scan-api/internal/application/ports"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

// Fakes en memoria para los tests del motor. Devuelven copias para emular los
// snapshots que entrega la BD.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product // por ID
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Kits = append([]entity.KitAlias(nil), p.Kits...)
	cp.KitSKUs = append([]string(nil), p.KitSKUs...)
	return &cp
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyProduct(r.products[id]), nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return copyProduct(p), nil
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
				return copyProduct(p), nil
			}
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyProduct(r.products[id]), nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = copyProduct(product)
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
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if movement.Timestamp.IsZero() {
		movement.Timestamp = time.Now()
	}
	cp := *movement
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, _ repository.MovementFilter, _ int, _ *repository.MovementCursor) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockMovement, 0, len(r.movements))
	for _, m := range r.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.movements {
		if m.ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

// fakeTxRunner serializa los cuerpos transaccionales con un mutex, emulando la
// atomicidad de la BD sobre los mismos fakes.
type fakeTxRunner struct {
	mu        sync.Mutex
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(repos ports.TxRepos) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ports.TxRepos{Products: t.products, Movements: t.movements})
}
