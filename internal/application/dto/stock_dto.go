package dto

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// MovementRequest body para POST /api/stock/movements.
// Para in/out, quantity es la magnitud; para adjustment es el nivel objetivo.
type MovementRequest struct {
	CategoryID    int64  `json:"category_id"`
	MovementType  string `json:"movement_type"`
	Quantity      int    `json:"quantity"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceID   *int64 `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// MovementResponse movimiento del ledger serializado.
type MovementResponse struct {
	ID            string    `json:"id"`
	CategoryID    int64     `json:"category_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	BeforeStock   int       `json:"before_stock"`
	AfterStock    int       `json:"after_stock"`
	MovementDate  time.Time `json:"movement_date"`
	CreatedBy     string    `json:"created_by,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// ToMovementResponse convierte la entidad a su DTO.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:            m.ID,
		CategoryID:    m.CategoryID,
		MovementType:  string(m.MovementType),
		Quantity:      m.Quantity,
		ReferenceType: string(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		BeforeStock:   m.BeforeStock,
		AfterStock:    m.AfterStock,
		MovementDate:  m.MovementDate,
		CreatedBy:     m.CreatedBy,
		Notes:         m.Notes,
	}
}

// ToMovementResponses convierte una lista de movimientos.
func ToMovementResponses(list []*entity.StockMovement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ApplyMovementResponse movimiento aplicado + estado resultante del agregado.
type ApplyMovementResponse struct {
	Movement     *MovementResponse `json:"movement"`
	CurrentStock int               `json:"current_stock"`
	IsLowStock   bool              `json:"is_low_stock"`
}

// ToApplyMovementResponse convierte el resultado del ledger a su DTO.
func ToApplyMovementResponse(r *ledger.MovementResult) *ApplyMovementResponse {
	if r == nil {
		return nil
	}
	return &ApplyMovementResponse{
		Movement:     ToMovementResponse(r.Movement),
		CurrentStock: r.CurrentStock,
		IsLowStock:   r.IsLowStock,
	}
}

// BulkEntryRequest ajuste relativo de una categoría dentro de un lote.
type BulkEntryRequest struct {
	CategoryID int64  `json:"category_id"`
	Adjustment int    `json:"adjustment"` // delta con signo
	Notes      string `json:"notes,omitempty"`
}

// BulkAdjustmentRequest body para POST /api/stock/bulk-adjust.
type BulkAdjustmentRequest struct {
	Adjustments []BulkEntryRequest `json:"adjustments"`
}
