package catalog

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// SupplierUseCase ciclo de vida de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// SupplierInput datos de alta/edición de un proveedor.
type SupplierInput struct {
	Name     string
	Contact  string
	Phone    string
	Email    string
	Address  string
	IsActive *bool
}

// Create valida y persiste un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in SupplierInput) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	supplier := &entity.Supplier{
		Name:     in.Name,
		Contact:  in.Contact,
		Phone:    in.Phone,
		Email:    in.Email,
		Address:  in.Address,
		IsActive: active,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Get devuelve un proveedor por id.
func (uc *SupplierUseCase) Get(ctx context.Context, id int64) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// Update edita un proveedor existente.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in SupplierInput) (*entity.Supplier, error) {
	supplier, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		supplier.Name = in.Name
	}
	supplier.Contact = in.Contact
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Address = in.Address
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// List lista proveedores paginados.
func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(limit, offset)
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.supplierRepo.Delete(id)
}
