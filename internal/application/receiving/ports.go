package receiving

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de recepción atados a esa tx: la línea del recibo, el
// movimiento del ledger, el total del recibo y los productos generados se
// confirman o revierten juntos.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
		receiptRepo repository.PurchaseReceiptRepository,
		itemRepo repository.PurchaseReceiptItemRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.ProductSequenceRepository,
	) error) error
}
