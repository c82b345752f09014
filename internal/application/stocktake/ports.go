package stocktake

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única frontera transaccional del
// workflow de conteos: commit o rollback son las dos salidas posibles.
type TxRunner interface {
	RunCount(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		countRepo repository.StockCountRepository,
	) error) error
}
