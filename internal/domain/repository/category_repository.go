package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE): es la base de la unidad
// atómica leer-calcular-escribir del ledger. UpdateStock es la única vía de
// escritura de CurrentStock/IsLowStock.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	GetByCode(code string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	GetForUpdate(id int64) (*entity.Category, error)
	Update(category *entity.Category) error
	UpdateStock(id int64, currentStock int, isLowStock bool) error
	List(limit, offset int) ([]*entity.Category, error)
	ListWithStock(lowStockOnly bool) ([]*entity.Category, error)
	Delete(id int64) error
}
