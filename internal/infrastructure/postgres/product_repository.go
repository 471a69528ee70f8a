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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `product_id, category_id, brand, model, serial_number, supplier_id, po_number, receipt_item_id, description, location, status, condition, quantity, purchase_date, purchase_price, last_maintenance_date, ticketing_id, is_linked_to_ticketing, notes, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un activo serializado.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (product_id, category_id, brand, model, serial_number, supplier_id, po_number, receipt_item_id, description, location, status, condition, quantity, purchase_date, purchase_price, last_maintenance_date, ticketing_id, is_linked_to_ticketing, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		product.ProductID, product.CategoryID, product.Brand, product.Model,
		product.SerialNumber, product.SupplierID, product.PONumber,
		product.ReceiptItemID, product.Description, product.Location,
		product.Status, product.Condition, product.Quantity,
		product.PurchaseDate, product.PurchasePrice, product.LastMaintenanceDate,
		product.TicketingID, product.IsLinkedToTicketing, product.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por su código.
func (r *ProductRepo) GetByID(productID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&p.ProductID, &p.CategoryID, &p.Brand, &p.Model, &p.SerialNumber,
		&p.SupplierID, &p.PONumber, &p.ReceiptItemID, &p.Description,
		&p.Location, &p.Status, &p.Condition, &p.Quantity,
		&p.PurchaseDate, &p.PurchasePrice, &p.LastMaintenanceDate,
		&p.TicketingID, &p.IsLinkedToTicketing, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Exists indica si un código de activo ya está tomado.
func (r *ProductRepo) Exists(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// Update persiste los campos mutables del activo.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET brand = $2, model = $3, serial_number = $4, supplier_id = $5,
		    po_number = $6, receipt_item_id = $7, description = $8, location = $9,
		    status = $10, condition = $11, quantity = $12, purchase_date = $13,
		    purchase_price = $14, last_maintenance_date = $15, ticketing_id = $16,
		    is_linked_to_ticketing = $17, notes = $18, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ProductID, product.Brand, product.Model, product.SerialNumber,
		product.SupplierID, product.PONumber, product.ReceiptItemID,
		product.Description, product.Location, product.Status, product.Condition,
		product.Quantity, product.PurchaseDate, product.PurchasePrice,
		product.LastMaintenanceDate, product.TicketingID,
		product.IsLinkedToTicketing, product.Notes,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCategory lista los activos de una categoría.
func (r *ProductRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ProductID, &p.CategoryID, &p.Brand, &p.Model,
			&p.SerialNumber, &p.SupplierID, &p.PONumber, &p.ReceiptItemID,
			&p.Description, &p.Location, &p.Status, &p.Condition, &p.Quantity,
			&p.PurchaseDate, &p.PurchasePrice, &p.LastMaintenanceDate,
			&p.TicketingID, &p.IsLinkedToTicketing, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) countWhere(where string, arg any) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE `+where, arg,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// CountByCategory cuenta los activos de una categoría.
func (r *ProductRepo) CountByCategory(categoryID int64) (int, error) {
	return r.countWhere("category_id = $1", categoryID)
}

// CountByReceiptItem cuenta los activos generados desde una línea de recibo.
func (r *ProductRepo) CountByReceiptItem(receiptItemID int64) (int, error) {
	return r.countWhere("receipt_item_id = $1", receiptItemID)
}

// CountByReceipt cuenta los activos generados desde cualquier línea de un recibo.
func (r *ProductRepo) CountByReceipt(receiptID int64) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*)
		FROM products p
		JOIN purchase_receipt_items i ON i.id = p.receipt_item_id
		WHERE i.receipt_id = $1`, receiptID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by receipt: %w", err)
	}
	return count, nil
}

// Delete elimina un activo.
func (r *ProductRepo) Delete(productID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.ProductSequenceRepository = (*ProductSequenceRepo)(nil)

// ProductSequenceRepo contador por categoría para el sufijo numérico de los
// códigos de activo. El UPSERT con RETURNING incrementa y lee en una sola
// sentencia atómica.
type ProductSequenceRepo struct {
	q Querier
}

// NewProductSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductSequenceRepository(q Querier) *ProductSequenceRepo {
	return &ProductSequenceRepo{q: q}
}

// Next incrementa y devuelve el siguiente consecutivo de la categoría.
func (r *ProductSequenceRepo) Next(categoryID int64) (int, error) {
	var next int
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO product_sequences (category_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (category_id)
		DO UPDATE SET last_value = product_sequences.last_value + 1
		RETURNING last_value`, categoryID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next product sequence: %w", err)
	}
	return next, nil
}
