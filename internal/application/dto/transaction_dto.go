package dto

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/application/assets"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// TransactionItemRequest activo a incluir en una transacción.
type TransactionItemRequest struct {
	ProductID       string `json:"product_id"`
	ConditionBefore string `json:"condition_before,omitempty"`
	ConditionAfter  string `json:"condition_after,omitempty"`
	Quantity        int    `json:"quantity,omitempty"`
	TicketingID     string `json:"ticketing_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ToItemInput convierte la línea al input del caso de uso.
func (r TransactionItemRequest) ToItemInput() assets.ItemInput {
	return assets.ItemInput{
		ProductID:       r.ProductID,
		ConditionBefore: r.ConditionBefore,
		ConditionAfter:  r.ConditionAfter,
		Quantity:        r.Quantity,
		TicketingID:     r.TicketingID,
		Notes:           r.Notes,
	}
}

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	TransactionType string                   `json:"transaction_type"`
	ReferenceNo     string                   `json:"reference_no,omitempty"`
	FirstPerson     string                   `json:"first_person,omitempty"`
	SecondPerson    string                   `json:"second_person,omitempty"`
	Location        string                   `json:"location,omitempty"`
	TransactionDate *time.Time               `json:"transaction_date,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	Items           []TransactionItemRequest `json:"items"`
}

// TransactionItemResponse línea de transacción serializada.
type TransactionItemResponse struct {
	ID              int64  `json:"id"`
	TransactionID   int64  `json:"transaction_id"`
	ProductID       string `json:"product_id"`
	ConditionBefore string `json:"condition_before,omitempty"`
	ConditionAfter  string `json:"condition_after,omitempty"`
	Quantity        int    `json:"quantity"`
	Notes           string `json:"notes,omitempty"`
	Status          string `json:"status"`
}

// ToTransactionItemResponse convierte la entidad a su DTO.
func ToTransactionItemResponse(it *entity.TransactionItem) *TransactionItemResponse {
	if it == nil {
		return nil
	}
	return &TransactionItemResponse{
		ID:              it.ID,
		TransactionID:   it.TransactionID,
		ProductID:       it.ProductID,
		ConditionBefore: it.ConditionBefore,
		ConditionAfter:  it.ConditionAfter,
		Quantity:        it.Quantity,
		Notes:           it.Notes,
		Status:          it.Status,
	}
}

// TransactionResponse transacción serializada.
type TransactionResponse struct {
	ID              int64                      `json:"id"`
	TransactionType string                     `json:"transaction_type"`
	ReferenceNo     string                     `json:"reference_no"`
	FirstPerson     string                     `json:"first_person,omitempty"`
	SecondPerson    string                     `json:"second_person,omitempty"`
	Location        string                     `json:"location,omitempty"`
	TransactionDate time.Time                  `json:"transaction_date"`
	Status          string                     `json:"status"`
	CreatedBy       string                     `json:"created_by,omitempty"`
	Notes           string                     `json:"notes,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	Items           []*TransactionItemResponse `json:"items,omitempty"`
}

// ToTransactionResponse convierte la entidad (y opcionalmente sus líneas) a su DTO.
func ToTransactionResponse(t *entity.Transaction, items []*entity.TransactionItem) *TransactionResponse {
	if t == nil {
		return nil
	}
	out := &TransactionResponse{
		ID:              t.ID,
		TransactionType: string(t.TransactionType),
		ReferenceNo:     t.ReferenceNo,
		FirstPerson:     t.FirstPerson,
		SecondPerson:    t.SecondPerson,
		Location:        t.Location,
		TransactionDate: t.TransactionDate,
		Status:          t.Status,
		CreatedBy:       t.CreatedBy,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, ToTransactionItemResponse(it))
	}
	return out
}

// ToTransactionResponses convierte una lista de transacciones (sin líneas).
func ToTransactionResponses(list []*entity.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t, nil))
	}
	return out
}
