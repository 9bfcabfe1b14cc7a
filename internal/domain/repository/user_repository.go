package repository

import (
	"context"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// El motor de stock no depende de este puerto: el actor viaja en el token.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
