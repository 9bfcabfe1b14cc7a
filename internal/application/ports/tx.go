// Package ports define los puertos compartidos entre casos de uso.
package ports

import (
	"context"

	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// la verificación de cantidad ocurre sobre la relectura dentro de la
// transacción, nunca sobre un snapshot previo.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// InTx ejecuta fn transaccionalmente y devuelve su resultado de forma directa.
// Evita el patrón de capturar variables mutables externas en el closure de la
// transacción: el cuerpo retorna su valor y el caller lo recibe tipado.
func InTx[T any](ctx context.Context, runner TxRunner, fn func(repos TxRepos) (T, error)) (T, error) {
	var out T
	err := runner.Run(ctx, func(repos TxRepos) error {
		v, err := fn(repos)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
