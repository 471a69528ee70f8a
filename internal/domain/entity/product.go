package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un activo serializado.
const (
	ProductStatusAvailable = "Available"
	ProductStatusInUse     = "In Use"
	ProductStatusRepair    = "Repair"
	ProductStatusLost      = "Lost"
	ProductStatusDisposed  = "Disposed"
)

// Condición por defecto de un activo recién recibido.
const ProductConditionNew = "New"

// Product representa un activo serializado (no fungible) de una categoría.
// No cuenta en CurrentStock de la categoría: su ciclo de vida se sigue por
// Status/Location, no por cantidad. ProductID tiene la forma <CODE><NNN>.
type Product struct {
	ProductID           string // p. ej. NET001
	CategoryID          int64
	Brand               string
	Model               string
	SerialNumber        string
	SupplierID          *int64
	PONumber            string
	ReceiptItemID       *int64
	Description         string
	Location            string
	Status              string
	Condition           string
	Quantity            int
	PurchaseDate        *time.Time
	PurchasePrice       decimal.Decimal
	LastMaintenanceDate *time.Time
	TicketingID         string
	IsLinkedToTicketing bool
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ClearTicketLink desvincula el activo de cualquier ticket externo.
func (p *Product) ClearTicketLink() {
	p.TicketingID = ""
	p.IsLinkedToTicketing = false
}
