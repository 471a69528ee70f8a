package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// PurchaseReceiptRepository define el puerto de persistencia para recibos (DIP).
// CountCreatedSince alimenta el consecutivo diario del número de recibo.
type PurchaseReceiptRepository interface {
	Create(receipt *entity.PurchaseReceipt) error
	GetByID(id int64) (*entity.PurchaseReceipt, error)
	GetByNumber(receiptNumber string) (*entity.PurchaseReceipt, error)
	GetForUpdate(id int64) (*entity.PurchaseReceipt, error)
	Update(receipt *entity.PurchaseReceipt) error
	UpdateTotalAmount(id int64, total decimal.Decimal) error
	CountCreatedSince(since time.Time) (int, error)
	List(limit, offset int) ([]*entity.PurchaseReceipt, error)
	Delete(id int64) error
}

// PurchaseReceiptItemRepository define el puerto para las líneas de recibo (DIP).
type PurchaseReceiptItemRepository interface {
	Create(item *entity.PurchaseReceiptItem) error
	GetByID(id int64) (*entity.PurchaseReceiptItem, error)
	ListByReceipt(receiptID int64) ([]*entity.PurchaseReceiptItem, error)
	Delete(id int64) error
}
