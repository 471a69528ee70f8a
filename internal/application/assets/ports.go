package assets

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de transacciones de activos atados a esa tx.
type TxRunner interface {
	RunAssets(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		productRepo repository.ProductRepository,
	) error) error
}
