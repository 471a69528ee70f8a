package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, transaction_type, reference_no, first_person, second_person, location, transaction_date, status, created_by, notes, created_at`

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción y asigna el ID generado.
func (r *TransactionRepo) Create(transaction *entity.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_type, reference_no, first_person, second_person, location, transaction_date, status, created_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		transaction.TransactionType, transaction.ReferenceNo,
		transaction.FirstPerson, transaction.SecondPerson, transaction.Location,
		transaction.TransactionDate, transaction.Status,
		transaction.CreatedBy, transaction.Notes,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(id int64) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	var t entity.Transaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.TransactionType, &t.ReferenceNo, &t.FirstPerson,
		&t.SecondPerson, &t.Location, &t.TransactionDate, &t.Status,
		&t.CreatedBy, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// Update persiste los campos editables de la transacción.
func (r *TransactionRepo) Update(transaction *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET first_person = $2, second_person = $3, location = $4,
		    transaction_date = $5, notes = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		transaction.ID, transaction.FirstPerson, transaction.SecondPerson,
		transaction.Location, transaction.TransactionDate, transaction.Notes,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado (open/closed).
func (r *TransactionRepo) UpdateStatus(id int64, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE transactions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByTypeSince cuenta transacciones de un tipo creadas desde un instante
// (consecutivo diario del número de referencia).
func (r *TransactionRepo) CountByTypeSince(transactionType entity.TransactionType, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM transactions WHERE transaction_type = $1 AND created_at >= $2`,
		transactionType, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// List lista transacciones más recientes primero.
func (r *TransactionRepo) List(limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY transaction_date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.TransactionType, &t.ReferenceNo,
			&t.FirstPerson, &t.SecondPerson, &t.Location, &t.TransactionDate,
			&t.Status, &t.CreatedBy, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina una transacción.
func (r *TransactionRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.TransactionItemRepository = (*TransactionItemRepo)(nil)

const transactionItemColumns = `id, transaction_id, product_id, condition_before, condition_after, quantity, notes, status`

// TransactionItemRepo implementación de TransactionItemRepository sobre
// PostgreSQL (usable con pool o tx).
type TransactionItemRepo struct {
	q Querier
}

// NewTransactionItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionItemRepository(q Querier) *TransactionItemRepo {
	return &TransactionItemRepo{q: q}
}

// Create persiste una línea de transacción y asigna el ID generado.
func (r *TransactionItemRepo) Create(item *entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (transaction_id, product_id, condition_before, condition_after, quantity, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.TransactionID, item.ProductID, item.ConditionBefore,
		item.ConditionAfter, item.Quantity, item.Notes, item.Status,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction item: %w", err)
	}
	return nil
}

func (r *TransactionItemRepo) getBy(where string, args ...any) (*entity.TransactionItem, error) {
	query := `SELECT ` + transactionItemColumns + ` FROM transaction_items WHERE ` + where
	var it entity.TransactionItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.TransactionID, &it.ProductID, &it.ConditionBefore,
		&it.ConditionAfter, &it.Quantity, &it.Notes, &it.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction item: %w", err)
	}
	return &it, nil
}

// GetByID obtiene una línea por ID.
func (r *TransactionItemRepo) GetByID(id int64) (*entity.TransactionItem, error) {
	return r.getBy("id = $1", id)
}

// GetByTransactionAndProduct obtiene la línea de un activo dentro de una
// transacción (para detectar duplicados).
func (r *TransactionItemRepo) GetByTransactionAndProduct(transactionID int64, productID string) (*entity.TransactionItem, error) {
	return r.getBy("transaction_id = $1 AND product_id = $2", transactionID, productID)
}

// ListByTransaction lista las líneas de una transacción.
func (r *TransactionItemRepo) ListByTransaction(transactionID int64) ([]*entity.TransactionItem, error) {
	query := `SELECT ` + transactionItemColumns + ` FROM transaction_items WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID,
			&it.ConditionBefore, &it.ConditionAfter, &it.Quantity,
			&it.Notes, &it.Status); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina una línea de transacción.
func (r *TransactionItemRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM transaction_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
