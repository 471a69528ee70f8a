package entity

import "time"

// Supplier proveedor asociado a los recibos de compra.
type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
