package entity

import "github.com/shopspring/decimal"

// PurchaseReceiptItem línea de un recibo de compra, referida a una categoría.
type PurchaseReceiptItem struct {
	ID            int64
	ReceiptID     int64
	CategoryID    int64
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	SerialNumbers string
	Condition     string
	Notes         string
}
