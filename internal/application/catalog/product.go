package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// ProductUseCase ciclo de vida de activos serializados fuera de la recepción:
// alta manual, edición, listado por categoría y baja. La baja es la vía para
// desbloquear el retiro de líneas/recibos con activos vinculados.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	catRepo     repository.CategoryRepository
	seqRepo     repository.ProductSequenceRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	catRepo repository.CategoryRepository,
	seqRepo repository.ProductSequenceRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, catRepo: catRepo, seqRepo: seqRepo}
}

// CreateProductInput datos de alta manual de un activo.
type CreateProductInput struct {
	ProductID     string // vacío = generar <CODE><NNN>
	CategoryID    int64
	Brand         string
	Model         string
	SerialNumber  string
	SupplierID    *int64
	PONumber      string
	Description   string
	Location      string
	Status        string // vacío = Available
	Condition     string // vacío = New
	Quantity      int    // <= 0 = 1
	PurchaseDate  *time.Time
	PurchasePrice decimal.Decimal
	Notes         string
}

// Create registra un activo. Sin ProductID se genera el siguiente código
// <CODE><NNN> de la categoría; con ProductID explícito (alta manual) el
// código se normaliza a mayúsculas y debe estar libre.
func (uc *ProductUseCase) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	category, err := uc.catRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	status := in.Status
	if status == "" {
		status = entity.ProductStatusAvailable
	}
	if !validProductStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	productID := strings.ToUpper(strings.TrimSpace(in.ProductID))
	if productID == "" {
		productID, err = uc.nextProductID(category)
		if err != nil {
			return nil, err
		}
	} else {
		taken, err := uc.productRepo.Exists(productID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicate
		}
	}

	condition := in.Condition
	if condition == "" {
		condition = entity.ProductConditionNew
	}
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product := &entity.Product{
		ProductID:     productID,
		CategoryID:    in.CategoryID,
		Brand:         in.Brand,
		Model:         in.Model,
		SerialNumber:  in.SerialNumber,
		SupplierID:    in.SupplierID,
		PONumber:      in.PONumber,
		Description:   in.Description,
		Location:      in.Location,
		Status:        status,
		Condition:     condition,
		Quantity:      quantity,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		Notes:         in.Notes,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput campos editables de un activo. Punteros nil = sin cambio.
type UpdateProductInput struct {
	Brand        *string
	Model        *string
	SerialNumber *string
	Description  *string
	Location     *string
	Status       *string
	Condition    *string
	Quantity     *int
	Notes        *string
	TicketingID  *string // "" desvincula el ticket
}

// Update edita un activo existente. El cambio de Status por aquí es la edición
// administrativa directa; el ciclo normal va por las transacciones de activos.
func (uc *ProductUseCase) Update(ctx context.Context, productID string, in UpdateProductInput) (*entity.Product, error) {
	product, err := uc.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if !validProductStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Model != nil {
		product.Model = *in.Model
	}
	if in.SerialNumber != nil {
		product.SerialNumber = *in.SerialNumber
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Condition != nil {
		product.Condition = *in.Condition
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	if in.TicketingID != nil {
		if *in.TicketingID == "" {
			product.ClearTicketLink()
		} else {
			product.TicketingID = *in.TicketingID
			product.IsLinkedToTicketing = true
		}
	}

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get devuelve un activo por su código.
func (uc *ProductUseCase) Get(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListByCategory lista los activos de una categoría existente.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]*entity.Product, error) {
	category, err := uc.catRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.productRepo.ListByCategory(categoryID, limit, offset)
}

// Delete da de baja un activo. Con esto se liberan los retiros de líneas y
// recibos que estaban bloqueados por activos vinculados.
func (uc *ProductUseCase) Delete(ctx context.Context, productID string) error {
	if _, err := uc.Get(ctx, productID); err != nil {
		return err
	}
	return uc.productRepo.Delete(productID)
}

// nextProductID pide consecutivos de la categoría hasta encontrar un sufijo
// libre (las altas manuales pueden haber ocupado códigos por delante).
func (uc *ProductUseCase) nextProductID(category *entity.Category) (string, error) {
	for {
		n, err := uc.seqRepo.Next(category.ID)
		if err != nil {
			return "", err
		}
		productID := fmt.Sprintf("%s%03d", category.Code, n)
		exists, err := uc.productRepo.Exists(productID)
		if err != nil {
			return "", err
		}
		if !exists {
			return productID, nil
		}
	}
}

// validProductStatus indica si el estado es uno de los permitidos.
func validProductStatus(s string) bool {
	switch s {
	case entity.ProductStatusAvailable, entity.ProductStatusInUse,
		entity.ProductStatusRepair, entity.ProductStatusLost,
		entity.ProductStatusDisposed:
		return true
	}
	return false
}
