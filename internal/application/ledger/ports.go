package ledger

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios del ledger atados a esa tx. Garantiza que leer el stock actual,
// calcular el nuevo y escribir movimiento + agregado sea una unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
