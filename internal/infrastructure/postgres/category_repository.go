package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, code, has_stock, min_stock, max_stock, current_stock, reorder_point, is_low_stock, unit, notes, created_at, updated_at`

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría y asigna el ID generado.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (name, code, has_stock, min_stock, max_stock, current_stock, reorder_point, is_low_stock, unit, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		category.Name, category.Code, category.HasStock,
		category.MinStock, category.MaxStock, category.CurrentStock,
		category.ReorderPoint, category.IsLowStock, category.Unit, category.Notes,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) getBy(where string, arg any) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + where
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Code, &c.HasStock, &c.MinStock, &c.MaxStock,
		&c.CurrentStock, &c.ReorderPoint, &c.IsLowStock, &c.Unit, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	return r.getBy("id = $1", id)
}

// GetByCode obtiene una categoría por código.
func (r *CategoryRepo) GetByCode(code string) (*entity.Category, error) {
	return r.getBy("code = $1", code)
}

// GetByName obtiene una categoría por nombre.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	return r.getBy("name = $1", name)
}

// GetForUpdate obtiene la categoría y bloquea la fila (SELECT FOR UPDATE).
func (r *CategoryRepo) GetForUpdate(id int64) (*entity.Category, error) {
	return r.getBy("id = $1 FOR UPDATE", id)
}

// Update persiste los campos editables de la categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, code = $3, has_stock = $4, min_stock = $5, max_stock = $6,
		    current_stock = $7, reorder_point = $8, is_low_stock = $9, unit = $10,
		    notes = $11, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Code, category.HasStock,
		category.MinStock, category.MaxStock, category.CurrentStock,
		category.ReorderPoint, category.IsLowStock, category.Unit, category.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe el nivel de stock y el flag derivado. Única vía de
// escritura de current_stock/is_low_stock.
func (r *CategoryRepo) UpdateStock(id int64, currentStock int, isLowStock bool) error {
	query := `
		UPDATE categories
		SET current_stock = $2, is_low_stock = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, currentStock, isLowStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías ordenadas por nombre.
func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// ListWithStock lista categorías con stock habilitado; opcionalmente solo las
// que están en bajo stock.
func (r *CategoryRepo) ListWithStock(lowStockOnly bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE has_stock`
	if lowStockOnly {
		query += ` AND is_low_stock`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stocked categories: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// Delete elimina una categoría.
func (r *CategoryRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.HasStock, &c.MinStock,
			&c.MaxStock, &c.CurrentStock, &c.ReorderPoint, &c.IsLowStock,
			&c.Unit, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
