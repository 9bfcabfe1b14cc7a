// Package tracking registra códigos de rastreo de transportadora: el fallback
// del escaneo cuando un código no resuelve a ningún producto, más la consulta
// del panel de envíos.
package tracking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
	domscan "github.com/jhoicas/Bodega-scan-api/internal/domain/scan"
)

// RecordInput entrada para registrar un código de rastreo.
type RecordInput struct {
	Code            string
	Actor           scan.Actor
	Products        []entity.TrackingProductRef
	StockMovementID string
}

// UseCase casos de uso de códigos de rastreo.
type UseCase struct {
	codes   repository.TrackingCodeRepository
	matcher Matcher
}

// NewUseCase construye el caso de uso.
func NewUseCase(codes repository.TrackingCodeRepository, matcher Matcher) *UseCase {
	return &UseCase{codes: codes, matcher: matcher}
}

// RecordFallback clasifica y persiste el código como número de rastreo.
// Se invoca solo después de que la resolución de SKU falló con
// ErrProductNotFound: es una clasificación secundaria de mejor esfuerzo, no
// un reintento del descuento de stock. Si el matcher rechaza el código,
// retorna ErrUnrecognizedCode y el caller deja que el ProductNotFound
// original llegue al usuario.
func (uc *UseCase) RecordFallback(ctx context.Context, in RecordInput) (*entity.TrackingCode, error) {
	if strings.TrimSpace(in.Actor.UserID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	normalized, err := domscan.NormalizeTracking(in.Code)
	if err != nil {
		return nil, err
	}
	if !uc.matcher.Match(normalized) {
		return nil, domain.ErrUnrecognizedCode
	}

	record := &entity.TrackingCode{
		ID:              uuid.New().String(),
		Code:            strings.TrimSpace(in.Code), // tal como se escaneó
		CodeNormalized:  normalized,
		UserID:          in.Actor.UserID,
		UserName:        in.Actor.UserName,
		Products:        in.Products,
		StockMovementID: in.StockMovementID,
	}
	if len(in.Products) == 1 {
		record.ProductSKU = in.Products[0].SKU
		record.ProductName = in.Products[0].Name
	}
	// CreatedAt lo asigna el servidor de datos (Create lo deja en el entity).
	if err := uc.codes.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByUser lista los códigos registrados por un usuario, más recientes primero.
func (uc *UseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.TrackingCode, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.codes.ListByUser(ctx, userID, limit, offset)
}

// Search busca por prefijo sobre el código normalizado, con rango opcional de fechas.
func (uc *UseCase) Search(ctx context.Context, prefix string, from, to *time.Time, limit int) ([]*entity.TrackingCode, error) {
	normalized, err := domscan.NormalizeTracking(prefix)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.codes.SearchByPrefix(ctx, normalized, from, to, limit)
}

// GetByID obtiene un código por ID. (nil, nil) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.TrackingCode, error) {
	return uc.codes.GetByID(ctx, id)
}

// Delete elimina un código de rastreo. No tiene efecto compensatorio sobre
// stock: los códigos de rastreo no tocan inventario.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.codes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.codes.Delete(ctx, id)
}
