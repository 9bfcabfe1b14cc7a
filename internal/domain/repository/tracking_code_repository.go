package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

// TrackingCodeRepository define el puerto de persistencia para códigos de
// rastreo (DIP). Create asigna created_at en el servidor de datos.
type TrackingCodeRepository interface {
	Create(ctx context.Context, code *entity.TrackingCode) error
	GetByID(ctx context.Context, id string) (*entity.TrackingCode, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.TrackingCode, error)
	// SearchByPrefix busca por prefijo sobre code_normalized (mayúsculas),
	// con rango opcional de created_at.
	SearchByPrefix(ctx context.Context, prefix string, from, to *time.Time, limit int) ([]*entity.TrackingCode, error)
	Delete(ctx context.Context, id string) error
}
