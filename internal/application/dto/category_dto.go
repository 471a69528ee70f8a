package dto

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	HasStock     bool   `json:"has_stock"`
	MinStock     int    `json:"min_stock"`
	MaxStock     int    `json:"max_stock"`
	CurrentStock int    `json:"current_stock"`
	ReorderPoint int    `json:"reorder_point"`
	Unit         string `json:"unit,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id. Campos omitidos no cambian.
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Code         *string `json:"code,omitempty"`
	HasStock     *bool   `json:"has_stock,omitempty"`
	MinStock     *int    `json:"min_stock,omitempty"`
	MaxStock     *int    `json:"max_stock,omitempty"`
	CurrentStock *int    `json:"current_stock,omitempty"`
	ReorderPoint *int    `json:"reorder_point,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// CategoryResponse categoría serializada.
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	HasStock     bool      `json:"has_stock"`
	MinStock     int       `json:"min_stock"`
	MaxStock     int       `json:"max_stock"`
	CurrentStock int       `json:"current_stock"`
	ReorderPoint int       `json:"reorder_point"`
	IsLowStock   bool      `json:"is_low_stock"`
	Unit         string    `json:"unit,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCategoryResponse convierte la entidad a su DTO.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		HasStock:     c.HasStock,
		MinStock:     c.MinStock,
		MaxStock:     c.MaxStock,
		CurrentStock: c.CurrentStock,
		ReorderPoint: c.ReorderPoint,
		IsLowStock:   c.IsLowStock,
		Unit:         c.Unit,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCategoryResponses convierte una lista de categorías.
func ToCategoryResponses(list []*entity.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCategoryResponse(c))
	}
	return out
}
