package entity

import "time"

// MovementType tipo de movimiento de stock (enum cerrado).
type MovementType string

const (
	MovementTypeIn         MovementType = "in"         // entrada
	MovementTypeOut        MovementType = "out"        // salida
	MovementTypeAdjustment MovementType = "adjustment" // ajuste a un nivel objetivo
)

// Valid indica si el tipo es uno de los tres permitidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// ReferenceType origen del movimiento (enum cerrado, no string libre).
type ReferenceType string

const (
	ReferenceManual             ReferenceType = "manual"
	ReferencePurchaseReceipt    ReferenceType = "purchase_receipt"
	ReferenceReceiptReversal    ReferenceType = "purchase_receipt_reversal"
	ReferenceReceiptItemRemoval ReferenceType = "purchase_receipt_item_removal"
	ReferenceBulkAdjustment     ReferenceType = "bulk_adjustment"
)

// Valid indica si el origen es uno de los permitidos.
func (r ReferenceType) Valid() bool {
	switch r {
	case ReferenceManual, ReferencePurchaseReceipt, ReferenceReceiptReversal,
		ReferenceReceiptItemRemoval, ReferenceBulkAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable de un cambio en el stock de una categoría.
// Quantity es siempre la magnitud aplicada (>= 0); el signo lo da MovementType.
// Invariante: AfterStock = BeforeStock + Quantity (in) o - Quantity (out);
// en ajustes Quantity = |AfterStock - BeforeStock|.
type StockMovement struct {
	ID            string // uuid
	CategoryID    int64
	MovementType  MovementType
	Quantity      int
	ReferenceType ReferenceType
	ReferenceID   *int64
	BeforeStock   int
	AfterStock    int
	MovementDate  time.Time
	CreatedBy     string
	Notes         string
}
