package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Activos-api/internal/application/assets"
	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/application/receiving"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner, receiving.TxRunner y assets.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ receiving.TxRunner = (*TxRunner)(nil)
var _ assets.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del ledger atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	catRepo := NewCategoryRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(catRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia una transacción con los repos de recepción (recibo,
// líneas, ledger, productos generados y secuencias de código).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
	receiptRepo repository.PurchaseReceiptRepository,
	itemRepo repository.PurchaseReceiptItemRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.ProductSequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	catRepo := NewCategoryRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	receiptRepo := NewPurchaseReceiptRepository(tx)
	itemRepo := NewPurchaseReceiptItemRepository(tx)
	productRepo := NewProductRepository(tx)
	seqRepo := NewProductSequenceRepository(tx)

	if err := fn(catRepo, movRepo, receiptRepo, itemRepo, productRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAssets inicia una transacción con los repos de transacciones de activos.
func (r *TxRunner) RunAssets(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	itemRepo repository.TransactionItemRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewTransactionRepository(tx)
	itemRepo := NewTransactionItemRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(txRepo, itemRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
