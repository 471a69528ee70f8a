package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// CategoryUseCase ciclo de vida de categorías. Una vez habilitado el stock,
// CurrentStock/IsLowStock solo los muta el ledger: las ediciones directas de
// min/max/reorder_point recalculan IsLowStock a partir del CurrentStock
// existente, y los intentos de editar CurrentStock se rechazan.
type CategoryUseCase struct {
	catRepo     repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	catRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CategoryUseCase {
	return &CategoryUseCase{catRepo: catRepo, productRepo: productRepo}
}

// CreateCategoryInput datos de alta de una categoría.
type CreateCategoryInput struct {
	Name         string
	Code         string
	HasStock     bool
	MinStock     int
	MaxStock     int
	CurrentStock int
	ReorderPoint int
	Unit         string
	Notes        string
}

// Create valida código (2-3 letras, único, mayúsculas) y nombre, normaliza los
// campos de stock (pineados a cero si no maneja stock) y deriva IsLowStock.
func (uc *CategoryUseCase) Create(ctx context.Context, in CreateCategoryInput) (*entity.Category, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if len(code) < 2 || len(code) > 3 || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.catRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	existing, err = uc.catRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	category := &entity.Category{
		Name:     in.Name,
		Code:     code,
		HasStock: in.HasStock,
		Notes:    in.Notes,
	}
	if in.HasStock {
		if in.MinStock > in.MaxStock || in.CurrentStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		category.MinStock = in.MinStock
		category.MaxStock = in.MaxStock
		category.CurrentStock = in.CurrentStock
		category.ReorderPoint = in.ReorderPoint
		category.Unit = in.Unit
		category.IsLowStock = category.ComputeLowStock(in.CurrentStock)
	}
	if err := uc.catRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategoryInput campos editables. Punteros nil = sin cambio.
type UpdateCategoryInput struct {
	Name         *string
	Code         *string
	HasStock     *bool
	MinStock     *int
	MaxStock     *int
	CurrentStock *int
	ReorderPoint *int
	Unit         *string
	Notes        *string
}

// Update edita la categoría. Cambiar CurrentStock directamente está prohibido
// mientras el stock esté habilitado (es propiedad exclusiva del ledger); solo
// se acepta como valor inicial al habilitar HasStock. Editar ReorderPoint
// recalcula IsLowStock de inmediato sobre el CurrentStock vigente.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in UpdateCategoryInput) (*entity.Category, error) {
	category, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if in.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.Code))
		if len(code) < 2 || len(code) > 3 {
			return nil, domain.ErrInvalidInput
		}
		if code != category.Code {
			existing, err := uc.catRepo.GetByCode(code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
			category.Code = code
		}
	}
	if in.Name != nil && *in.Name != category.Name {
		existing, err := uc.catRepo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}

	wasStocked := category.HasStock
	if in.HasStock != nil {
		category.HasStock = *in.HasStock
	}

	if wasStocked && in.CurrentStock != nil && *in.CurrentStock != category.CurrentStock {
		// CurrentStock es del ledger: las correcciones van por un ajuste.
		return nil, domain.ErrInvalidInput
	}

	if category.HasStock {
		if in.MinStock != nil {
			category.MinStock = *in.MinStock
		}
		if in.MaxStock != nil {
			category.MaxStock = *in.MaxStock
		}
		if !wasStocked && in.CurrentStock != nil {
			category.CurrentStock = *in.CurrentStock
		}
		if in.ReorderPoint != nil {
			category.ReorderPoint = *in.ReorderPoint
		}
		if in.Unit != nil {
			category.Unit = *in.Unit
		}
		if category.MinStock > category.MaxStock || category.CurrentStock < 0 {
			return nil, domain.ErrInvalidInput
		}
	} else {
		category.MinStock = 0
		category.MaxStock = 0
		category.CurrentStock = 0
		category.ReorderPoint = 0
		category.Unit = ""
	}
	category.IsLowStock = category.ComputeLowStock(category.CurrentStock)

	if in.Notes != nil {
		category.Notes = *in.Notes
	}
	if err := uc.catRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete elimina una categoría sin productos asociados.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	category, err := uc.catRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrLinkedProductsExist
	}
	return uc.catRepo.Delete(id)
}

// Get devuelve una categoría por id.
func (uc *CategoryUseCase) Get(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// List lista categorías paginadas.
func (uc *CategoryUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	return uc.catRepo.List(limit, offset)
}

// StockSummary resumen del stock por categoría.
type StockSummary struct {
	TotalCategories int                `json:"total_categories"`
	LowStockCount   int                `json:"low_stock_count"`
	OutOfStockCount int                `json:"out_of_stock_count"`
	Categories      []*entity.Category `json:"categories"`
}

// Summary devuelve las categorías con stock y los conteos agregados.
func (uc *CategoryUseCase) Summary(ctx context.Context, lowStockOnly bool) (*StockSummary, error) {
	categories, err := uc.catRepo.ListWithStock(lowStockOnly)
	if err != nil {
		return nil, err
	}
	summary := &StockSummary{Categories: categories, TotalCategories: len(categories)}
	for _, c := range categories {
		if c.IsLowStock {
			summary.LowStockCount++
		}
		if c.CurrentStock == 0 {
			summary.OutOfStockCount++
		}
	}
	return summary, nil
}

// Niveles de urgencia de una alerta de bajo stock.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
)

// LowStockAlert alerta de reposición para una categoría en bajo stock.
type LowStockAlert struct {
	Category *entity.Category `json:"category"`
	Urgency  string           `json:"urgency"`
	Shortage int              `json:"shortage"`
}

// Alerts devuelve las categorías bajo el punto de reorden con urgencia
// (critical: agotado; high: bajo la mitad del punto de reorden) y el faltante
// respecto al stock mínimo.
func (uc *CategoryUseCase) Alerts(ctx context.Context) ([]LowStockAlert, error) {
	categories, err := uc.catRepo.ListWithStock(true)
	if err != nil {
		return nil, err
	}
	alerts := make([]LowStockAlert, 0, len(categories))
	for _, c := range categories {
		urgency := UrgencyMedium
		switch {
		case c.CurrentStock == 0:
			urgency = UrgencyCritical
		case c.CurrentStock*2 <= c.ReorderPoint:
			urgency = UrgencyHigh
		}
		shortage := c.MinStock - c.CurrentStock
		if shortage < 0 {
			shortage = 0
		}
		alerts = append(alerts, LowStockAlert{Category: c, Urgency: urgency, Shortage: shortage})
	}
	return alerts, nil
}
