package repository

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el historial
// de movimientos (DIP). Los movimientos son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByCategory(categoryID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
