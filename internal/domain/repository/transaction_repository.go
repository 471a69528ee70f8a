package repository

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones de
// activos (DIP). CountByTypeSince alimenta el consecutivo diario por tipo del
// número de referencia.
type TransactionRepository interface {
	Create(transaction *entity.Transaction) error
	GetByID(id int64) (*entity.Transaction, error)
	Update(transaction *entity.Transaction) error
	UpdateStatus(id int64, status string) error
	CountByTypeSince(transactionType entity.TransactionType, since time.Time) (int, error)
	List(limit, offset int) ([]*entity.Transaction, error)
	Delete(id int64) error
}

// TransactionItemRepository define el puerto para las líneas de transacción (DIP).
type TransactionItemRepository interface {
	Create(item *entity.TransactionItem) error
	GetByID(id int64) (*entity.TransactionItem, error)
	GetByTransactionAndProduct(transactionID int64, productID string) (*entity.TransactionItem, error)
	ListByTransaction(transactionID int64) ([]*entity.TransactionItem, error)
	Delete(id int64) error
}
