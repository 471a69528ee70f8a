package entity

import "time"

// Category representa una categoría de inventario. Puede llevar stock agregado
// (HasStock=true, contado en CurrentStock) o ser solo contenedora de activos
// serializados (HasStock=false, p. ej. mobiliario).
type Category struct {
	ID           int64
	Name         string
	Code         string // 2-3 letras, único, siempre en mayúsculas
	HasStock     bool
	MinStock     int
	MaxStock     int
	CurrentStock int
	ReorderPoint int
	IsLowStock   bool // derivado: CurrentStock <= ReorderPoint
	Unit         string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ComputeLowStock recalcula el flag derivado a partir de un nivel de stock dado.
// Solo aplica a categorías con stock; las demás nunca están en bajo stock.
func (c *Category) ComputeLowStock(stock int) bool {
	return c.HasStock && stock <= c.ReorderPoint
}
