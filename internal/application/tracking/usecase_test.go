package tracking_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/application/tracking"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

type fakeTrackingRepo struct {
	mu    sync.Mutex
	codes []*entity.TrackingCode
}

func (r *fakeTrackingRepo) Create(_ context.Context, code *entity.TrackingCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	cp := *code
	r.codes = append(r.codes, &cp)
	return nil
}

func (r *fakeTrackingRepo) GetByID(_ context.Context, id string) (*entity.TrackingCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTrackingRepo) ListByUser(_ context.Context, userID string, limit, _ int) ([]*entity.TrackingCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.TrackingCode
	for _, c := range r.codes {
		if c.UserID == userID && len(out) < limit {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTrackingRepo) SearchByPrefix(_ context.Context, prefix string, _, _ *time.Time, limit int) ([]*entity.TrackingCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.TrackingCode
	for _, c := range r.codes {
		if strings.HasPrefix(c.CodeNormalized, prefix) && len(out) < limit {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTrackingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.codes {
		if c.ID == id {
			r.codes = append(r.codes[:i], r.codes[i+1:]...)
			return nil
		}
	}
	return nil
}

// matcherFunc adapta una función al puerto Matcher.
type matcherFunc func(string) bool

func (f matcherFunc) Match(code string) bool { return f(code) }

var (
	aceptaTodo  = matcherFunc(func(string) bool { return true })
	rechazaTodo = matcherFunc(func(string) bool { return false })
	actorPrueba = scan.Actor{UserID: "u1", UserName: "Operador Uno"}
)

func TestRecordFallback_NormalizaYPersiste(t *testing.T) {
	repo := &fakeTrackingRepo{}
	uc := tracking.NewUseCase(repo, aceptaTodo)

	record, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "  ss123456785br ",
		Actor: actorPrueba,
	})
	require.NoError(t, err)

	assert.Equal(t, "ss123456785br", record.Code, "se conserva tal como se escaneó")
	assert.Equal(t, "SS123456785BR", record.CodeNormalized)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "Operador Uno", record.UserName)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	require.Len(t, repo.codes, 1)
}

func TestRecordFallback_MatcherRechazaRetornaUnrecognized(t *testing.T) {
	repo := &fakeTrackingRepo{}
	uc := tracking.NewUseCase(repo, rechazaTodo)

	_, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "ABC-123",
		Actor: actorPrueba,
	})
	assert.ErrorIs(t, err, domain.ErrUnrecognizedCode)
	assert.Empty(t, repo.codes, "nada se persiste")
}

func TestRecordFallback_SinActorRetornaUnauthenticated(t *testing.T) {
	uc := tracking.NewUseCase(&fakeTrackingRepo{}, aceptaTodo)

	_, err := uc.RecordFallback(context.Background(), tracking.RecordInput{Code: "SS123456785BR"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRecordFallback_CodigoVacioRetornaError(t *testing.T) {
	uc := tracking.NewUseCase(&fakeTrackingRepo{}, aceptaTodo)

	_, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "   ",
		Actor: actorPrueba,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCode)
}

// Con exactamente un producto vinculado se copian los campos de conveniencia.
func TestRecordFallback_UnProductoCopiaCamposDeConveniencia(t *testing.T) {
	repo := &fakeTrackingRepo{}
	uc := tracking.NewUseCase(repo, aceptaTodo)

	record, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "1Z999AA10123456784",
		Actor: actorPrueba,
		Products: []entity.TrackingProductRef{
			{SKU: "ABC-123", Name: "Producto ABC", Quantity: 2},
		},
		StockMovementID: "mov-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC-123", record.ProductSKU)
	assert.Equal(t, "Producto ABC", record.ProductName)
	assert.Equal(t, "mov-1", record.StockMovementID)
}

func TestRecordFallback_VariosProductosNoCopiaConveniencia(t *testing.T) {
	repo := &fakeTrackingRepo{}
	uc := tracking.NewUseCase(repo, aceptaTodo)

	record, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "1Z999AA10123456784",
		Actor: actorPrueba,
		Products: []entity.TrackingProductRef{
			{SKU: "ABC-123"}, {SKU: "DEF-456"},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, record.ProductSKU)
	assert.Len(t, record.Products, 2)
}

func TestSearch_NormalizaElPrefijo(t *testing.T) {
	repo := &fakeTrackingRepo{}
	uc := tracking.NewUseCase(repo, aceptaTodo)

	_, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "ss123456785br",
		Actor: actorPrueba,
	})
	require.NoError(t, err)

	found, err := uc.Search(context.Background(), "ss123", nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "SS123456785BR", found[0].CodeNormalized)
}

func TestDelete_NoExisteRetornaNotFound(t *testing.T) {
	uc := tracking.NewUseCase(&fakeTrackingRepo{}, aceptaTodo)

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_EliminaElRegistro(t *testing.T) {
	repo := &fakeTrackingRepo{}
	uc := tracking.NewUseCase(repo, aceptaTodo)

	record, err := uc.RecordFallback(context.Background(), tracking.RecordInput{
		Code:  "SS123456785BR",
		Actor: actorPrueba,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), record.ID))
	assert.Empty(t, repo.codes)
}
