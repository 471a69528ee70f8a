package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para activos serializados (DIP).
// Los Count* sostienen los bloqueos de borrado (LinkedProductsExist) y de
// eliminación de categorías.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(productID string) (*entity.Product, error)
	Exists(productID string) (bool, error)
	Update(product *entity.Product) error
	ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error)
	CountByCategory(categoryID int64) (int, error)
	CountByReceiptItem(receiptItemID int64) (int, error)
	CountByReceipt(receiptID int64) (int, error)
	Delete(productID string) error
}

// ProductSequenceRepository contador explícito por categoría para el sufijo
// numérico de los ProductID (<CODE><NNN>). Sustituye el barrido lineal de ids
// existentes: Next incrementa y devuelve el siguiente consecutivo.
type ProductSequenceRepository interface {
	Next(categoryID int64) (int, error)
}
