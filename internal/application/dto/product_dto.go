package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// CreateProductRequest alta manual de un activo. ProductID vacío = generado.
type CreateProductRequest struct {
	ProductID     string          `json:"product_id"`
	CategoryID    int64           `json:"category_id"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	SerialNumber  string          `json:"serial_number"`
	SupplierID    *int64          `json:"supplier_id"`
	PONumber      string          `json:"po_number"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Status        string          `json:"status"`
	Condition     string          `json:"condition"`
	Quantity      int             `json:"quantity"`
	PurchaseDate  *time.Time      `json:"purchase_date"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Notes         string          `json:"notes"`
}

// UpdateProductRequest edición parcial de un activo. Campos nil = sin cambio.
type UpdateProductRequest struct {
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	Condition    *string `json:"condition"`
	Quantity     *int    `json:"quantity"`
	Notes        *string `json:"notes"`
	TicketingID  *string `json:"ticketing_id"`
}

// ProductResponse activo serializado.
type ProductResponse struct {
	ProductID           string          `json:"product_id"`
	CategoryID          int64           `json:"category_id"`
	Brand               string          `json:"brand,omitempty"`
	Model               string          `json:"model,omitempty"`
	SerialNumber        string          `json:"serial_number,omitempty"`
	SupplierID          *int64          `json:"supplier_id,omitempty"`
	PONumber            string          `json:"po_number,omitempty"`
	ReceiptItemID       *int64          `json:"receipt_item_id,omitempty"`
	Description         string          `json:"description,omitempty"`
	Location            string          `json:"location,omitempty"`
	Status              string          `json:"status"`
	Condition           string          `json:"condition,omitempty"`
	Quantity            int             `json:"quantity"`
	PurchaseDate        *time.Time      `json:"purchase_date,omitempty"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	LastMaintenanceDate *time.Time      `json:"last_maintenance_date,omitempty"`
	TicketingID         string          `json:"ticketing_id,omitempty"`
	IsLinkedToTicketing bool            `json:"is_linked_to_ticketing"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToProductResponse convierte la entidad a su DTO.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ProductID:           p.ProductID,
		CategoryID:          p.CategoryID,
		Brand:               p.Brand,
		Model:               p.Model,
		SerialNumber:        p.SerialNumber,
		SupplierID:          p.SupplierID,
		PONumber:            p.PONumber,
		ReceiptItemID:       p.ReceiptItemID,
		Description:         p.Description,
		Location:            p.Location,
		Status:              p.Status,
		Condition:           p.Condition,
		Quantity:            p.Quantity,
		PurchaseDate:        p.PurchaseDate,
		PurchasePrice:       p.PurchasePrice,
		LastMaintenanceDate: p.LastMaintenanceDate,
		TicketingID:         p.TicketingID,
		IsLinkedToTicketing: p.IsLinkedToTicketing,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ToProductResponses convierte una lista de activos.
func ToProductResponses(list []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
