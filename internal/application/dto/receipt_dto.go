package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/application/receiving"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// ReceiptItemRequest línea a recibir.
type ReceiptItemRequest struct {
	CategoryID       int64           `json:"category_id"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	SerialNumbers    string          `json:"serial_numbers,omitempty"`
	Condition        string          `json:"condition,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	GenerateProducts bool            `json:"generate_products,omitempty"`
}

// ToItemInput convierte la línea al input del caso de uso.
func (r ReceiptItemRequest) ToItemInput() receiving.ItemInput {
	return receiving.ItemInput{
		CategoryID:       r.CategoryID,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		SerialNumbers:    r.SerialNumbers,
		Condition:        r.Condition,
		Notes:            r.Notes,
		GenerateProducts: r.GenerateProducts,
	}
}

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	ReceiptNumber string               `json:"receipt_number,omitempty"`
	PONumber      string               `json:"po_number,omitempty"`
	SupplierID    int64                `json:"supplier_id"`
	ReceiptDate   *time.Time           `json:"receipt_date,omitempty"`
	Status        string               `json:"status,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Items         []ReceiptItemRequest `json:"items"`
}

// UpdateReceiptRequest body para PUT /api/receipts/:id. Campos omitidos no cambian.
type UpdateReceiptRequest struct {
	ReceiptNumber *string    `json:"receipt_number,omitempty"`
	PONumber      *string    `json:"po_number,omitempty"`
	SupplierID    *int64     `json:"supplier_id,omitempty"`
	ReceiptDate   *time.Time `json:"receipt_date,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// ReceiptItemResponse línea de recibo serializada.
type ReceiptItemResponse struct {
	ID            int64           `json:"id"`
	ReceiptID     int64           `json:"receipt_id"`
	CategoryID    int64           `json:"category_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	SerialNumbers string          `json:"serial_numbers,omitempty"`
	Condition     string          `json:"condition,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ToReceiptItemResponse convierte la entidad a su DTO.
func ToReceiptItemResponse(it *entity.PurchaseReceiptItem) *ReceiptItemResponse {
	if it == nil {
		return nil
	}
	return &ReceiptItemResponse{
		ID:            it.ID,
		ReceiptID:     it.ReceiptID,
		CategoryID:    it.CategoryID,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice,
		TotalPrice:    it.TotalPrice,
		SerialNumbers: it.SerialNumbers,
		Condition:     it.Condition,
		Notes:         it.Notes,
	}
}

// ReceiptResponse recibo serializado.
type ReceiptResponse struct {
	ID            int64                  `json:"id"`
	ReceiptNumber string                 `json:"receipt_number"`
	PONumber      string                 `json:"po_number,omitempty"`
	SupplierID    int64                  `json:"supplier_id"`
	ReceiptDate   time.Time              `json:"receipt_date"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	Status        string                 `json:"status"`
	CreatedBy     string                 `json:"created_by,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Items         []*ReceiptItemResponse `json:"items,omitempty"`
}

// ToReceiptResponse convierte la entidad (y opcionalmente sus líneas) a su DTO.
func ToReceiptResponse(r *entity.PurchaseReceipt, items []*entity.PurchaseReceiptItem) *ReceiptResponse {
	if r == nil {
		return nil
	}
	out := &ReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		PONumber:      r.PONumber,
		SupplierID:    r.SupplierID,
		ReceiptDate:   r.ReceiptDate,
		TotalAmount:   r.TotalAmount,
		Status:        r.Status,
		CreatedBy:     r.CreatedBy,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, ToReceiptItemResponse(it))
	}
	return out
}

// ToReceiptResponses convierte una lista de recibos (sin líneas).
func ToReceiptResponses(list []*entity.PurchaseReceipt) []*ReceiptResponse {
	out := make([]*ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToReceiptResponse(r, nil))
	}
	return out
}
