package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// MovementQueryUseCase lecturas del historial de movimientos (sin tx).
type MovementQueryUseCase struct {
	movRepo repository.StockMovementRepository
	catRepo repository.CategoryRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(
	movRepo repository.StockMovementRepository,
	catRepo repository.CategoryRepository,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, catRepo: catRepo}
}

// GetMovement devuelve un movimiento por id.
func (uc *MovementQueryUseCase) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	movement, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// ListByCategory lista los movimientos de una categoría en un rango de fechas.
func (uc *MovementQueryUseCase) ListByCategory(
	ctx context.Context,
	categoryID int64,
	from, to *time.Time,
	limit, offset int,
) ([]*entity.StockMovement, error) {
	category, err := uc.catRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByCategory(categoryID, from, to, limit, offset)
}

// Recent devuelve los últimos movimientos de todas las categorías.
func (uc *MovementQueryUseCase) Recent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.movRepo.ListRecent(limit)
}
