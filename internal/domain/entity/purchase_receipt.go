package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un recibo de compra.
const (
	ReceiptStatusPending   = "pending"
	ReceiptStatusCompleted = "completed"
	ReceiptStatusCancelled = "cancelled"
)

// PurchaseReceipt agrupa las líneas recibidas de un proveedor.
// TotalAmount siempre debe ser la suma de TotalPrice de sus líneas.
// Un recibo completado es inmutable salvo la transición de estado a cancelled.
type PurchaseReceipt struct {
	ID            int64
	ReceiptNumber string // RCP-YYYYMMDD-NNN, único
	PONumber      string
	SupplierID    int64
	ReceiptDate   time.Time
	TotalAmount   decimal.Decimal
	Status        string
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Locked indica si el recibo ya no admite altas/bajas de líneas ni borrado.
func (r *PurchaseReceipt) Locked() bool {
	return r.Status == ReceiptStatusCompleted
}
