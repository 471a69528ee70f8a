package dto

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// SupplierRequest body para crear/actualizar proveedores.
type SupplierRequest struct {
	Name     string `json:"name"`
	Contact  string `json:"contact,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// SupplierResponse proveedor serializado.
type SupplierResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSupplierResponse convierte la entidad a su DTO.
func ToSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSupplierResponses convierte una lista de proveedores.
func ToSupplierResponses(list []*entity.Supplier) []*SupplierResponse {
	out := make([]*SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSupplierResponse(s))
	}
	return out
}
