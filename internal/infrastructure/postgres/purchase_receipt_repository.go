package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.PurchaseReceiptRepository = (*PurchaseReceiptRepo)(nil)

const receiptColumns = `id, receipt_number, po_number, supplier_id, receipt_date, total_amount, status, created_by, notes, created_at, updated_at`

// PurchaseReceiptRepo implementación de PurchaseReceiptRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseReceiptRepo struct {
	q Querier
}

// NewPurchaseReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseReceiptRepository(q Querier) *PurchaseReceiptRepo {
	return &PurchaseReceiptRepo{q: q}
}

// Create persiste un recibo y asigna el ID generado.
func (r *PurchaseReceiptRepo) Create(receipt *entity.PurchaseReceipt) error {
	query := `
		INSERT INTO purchase_receipts (receipt_number, po_number, supplier_id, receipt_date, total_amount, status, created_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		receipt.ReceiptNumber, receipt.PONumber, receipt.SupplierID,
		receipt.ReceiptDate, receipt.TotalAmount, receipt.Status,
		receipt.CreatedBy, receipt.Notes,
	).Scan(&receipt.ID, &receipt.CreatedAt, &receipt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

func (r *PurchaseReceiptRepo) getBy(where string, arg any) (*entity.PurchaseReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM purchase_receipts WHERE ` + where
	var p entity.PurchaseReceipt
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.ReceiptNumber, &p.PONumber, &p.SupplierID, &p.ReceiptDate,
		&p.TotalAmount, &p.Status, &p.CreatedBy, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un recibo por ID.
func (r *PurchaseReceiptRepo) GetByID(id int64) (*entity.PurchaseReceipt, error) {
	return r.getBy("id = $1", id)
}

// GetByNumber obtiene un recibo por su número único.
func (r *PurchaseReceiptRepo) GetByNumber(receiptNumber string) (*entity.PurchaseReceipt, error) {
	return r.getBy("receipt_number = $1", receiptNumber)
}

// GetForUpdate obtiene el recibo y bloquea la fila (SELECT FOR UPDATE).
func (r *PurchaseReceiptRepo) GetForUpdate(id int64) (*entity.PurchaseReceipt, error) {
	return r.getBy("id = $1 FOR UPDATE", id)
}

// Update persiste los campos editables del recibo.
func (r *PurchaseReceiptRepo) Update(receipt *entity.PurchaseReceipt) error {
	query := `
		UPDATE purchase_receipts
		SET po_number = $2, supplier_id = $3, receipt_date = $4, status = $5,
		    notes = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.PONumber, receipt.SupplierID, receipt.ReceiptDate,
		receipt.Status, receipt.Notes,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotalAmount escribe el total del recibo (suma de sus líneas).
func (r *PurchaseReceiptRepo) UpdateTotalAmount(id int64, total decimal.Decimal) error {
	query := `UPDATE purchase_receipts SET total_amount = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update receipt total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountCreatedSince cuenta recibos creados desde un instante (consecutivo diario).
func (r *PurchaseReceiptRepo) CountCreatedSince(since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM purchase_receipts WHERE created_at >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return count, nil
}

// List lista recibos más recientes primero.
func (r *PurchaseReceiptRepo) List(limit, offset int) ([]*entity.PurchaseReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM purchase_receipts ORDER BY receipt_date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseReceipt
	for rows.Next() {
		var p entity.PurchaseReceipt
		if err := rows.Scan(&p.ID, &p.ReceiptNumber, &p.PONumber, &p.SupplierID,
			&p.ReceiptDate, &p.TotalAmount, &p.Status, &p.CreatedBy, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un recibo.
func (r *PurchaseReceiptRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM purchase_receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.PurchaseReceiptItemRepository = (*PurchaseReceiptItemRepo)(nil)

const receiptItemColumns = `id, receipt_id, category_id, quantity, unit_price, total_price, serial_numbers, condition, notes`

// PurchaseReceiptItemRepo implementación de PurchaseReceiptItemRepository
// sobre PostgreSQL (usable con pool o tx).
type PurchaseReceiptItemRepo struct {
	q Querier
}

// NewPurchaseReceiptItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseReceiptItemRepository(q Querier) *PurchaseReceiptItemRepo {
	return &PurchaseReceiptItemRepo{q: q}
}

// Create persiste una línea de recibo y asigna el ID generado.
func (r *PurchaseReceiptItemRepo) Create(item *entity.PurchaseReceiptItem) error {
	query := `
		INSERT INTO purchase_receipt_items (receipt_id, category_id, quantity, unit_price, total_price, serial_numbers, condition, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.ReceiptID, item.CategoryID, item.Quantity, item.UnitPrice,
		item.TotalPrice, item.SerialNumbers, item.Condition, item.Notes,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create receipt item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *PurchaseReceiptItemRepo) GetByID(id int64) (*entity.PurchaseReceiptItem, error) {
	query := `SELECT ` + receiptItemColumns + ` FROM purchase_receipt_items WHERE id = $1`
	var it entity.PurchaseReceiptItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.ReceiptID, &it.CategoryID, &it.Quantity, &it.UnitPrice,
		&it.TotalPrice, &it.SerialNumbers, &it.Condition, &it.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt item: %w", err)
	}
	return &it, nil
}

// ListByReceipt lista las líneas de un recibo.
func (r *PurchaseReceiptItemRepo) ListByReceipt(receiptID int64) ([]*entity.PurchaseReceiptItem, error) {
	query := `SELECT ` + receiptItemColumns + ` FROM purchase_receipt_items WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list receipt items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseReceiptItem
	for rows.Next() {
		var it entity.PurchaseReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.CategoryID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.SerialNumbers, &it.Condition, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina una línea de recibo.
func (r *PurchaseReceiptItemRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM purchase_receipt_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
