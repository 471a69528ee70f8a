package assets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TransactionUseCase administra transacciones de activos (check_out, check_in,
// repair, lost, transfer) y sus efectos sobre el estado de cada Product.
// Nunca toca el stock agregado de categorías: activos y stock fungible son
// ledgers deliberadamente separados.
type TransactionUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
	itemRepo repository.TransactionItemRepository
}

// NewTransactionUseCase construye el caso de uso. txRepo/itemRepo atados al
// pool se usan solo para lecturas fuera de transacción.
func NewTransactionUseCase(
	txRunner TxRunner,
	txRepo repository.TransactionRepository,
	itemRepo repository.TransactionItemRepository,
) *TransactionUseCase {
	return &TransactionUseCase{txRunner: txRunner, txRepo: txRepo, itemRepo: itemRepo}
}

// ItemInput activo a incluir en una transacción.
type ItemInput struct {
	ProductID       string
	ConditionBefore string
	ConditionAfter  string
	Quantity        int
	TicketingID     string // solo check_out: vínculo opcional a ticket externo
	Notes           string
}

// CreateTransactionInput datos para crear una transacción con sus líneas.
type CreateTransactionInput struct {
	Type            entity.TransactionType
	ReferenceNo     string // vacío = generar <PREFIX>-YYYYMMDD-NNN
	FirstPerson     string
	SecondPerson    string
	Location        string
	TransactionDate *time.Time
	Notes           string
	Items           []ItemInput
}

// TransactionResult transacción creada con sus líneas y los productos tal como
// quedaron tras los efectos.
type TransactionResult struct {
	Transaction *entity.Transaction
	Items       []*entity.TransactionItem
	Products    []*entity.Product
}

// Create valida el tipo, genera el número de referencia si hace falta y crea
// la transacción con sus líneas (efectos incluidos) en una sola transacción
// de BD.
func (uc *TransactionUseCase) Create(ctx context.Context, actorID string, in CreateTransactionInput) (*TransactionResult, error) {
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}

	referenceNo := in.ReferenceNo
	if referenceNo == "" {
		var err error
		referenceNo, err = uc.nextReferenceNo(in.Type)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	transactionDate := now
	if in.TransactionDate != nil {
		transactionDate = *in.TransactionDate
	}
	transaction := &entity.Transaction{
		TransactionType: in.Type,
		ReferenceNo:     referenceNo,
		FirstPerson:     in.FirstPerson,
		SecondPerson:    in.SecondPerson,
		Location:        in.Location,
		TransactionDate: transactionDate,
		Status:          entity.TransactionStatusOpen,
		CreatedBy:       actorID,
		Notes:           in.Notes,
	}

	result := &TransactionResult{Transaction: transaction}
	err := uc.txRunner.RunAssets(ctx, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := txRepo.Create(transaction); err != nil {
			return err
		}
		for _, itemIn := range in.Items {
			item, product, err := uc.addItemLocked(itemRepo, productRepo, transaction, itemIn)
			if err != nil {
				return err
			}
			result.Items = append(result.Items, item)
			result.Products = append(result.Products, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddItem agrega un activo a una transacción abierta y aplica el efecto de
// estado correspondiente al tipo.
func (uc *TransactionUseCase) AddItem(ctx context.Context, transactionID int64, in ItemInput) (*entity.TransactionItem, *entity.Product, error) {
	var item *entity.TransactionItem
	var product *entity.Product
	err := uc.txRunner.RunAssets(ctx, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		productRepo repository.ProductRepository,
	) error {
		transaction, err := txRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if transaction == nil {
			return domain.ErrNotFound
		}
		if transaction.Closed() {
			return domain.ErrTransactionClosed
		}
		item, product, err = uc.addItemLocked(itemRepo, productRepo, transaction, in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return item, product, nil
}

// RemoveItem retira un activo de una transacción abierta. Si la transacción es
// check_out, revierte el producto a Available y limpia el vínculo de ticket
// (rollback de estado puro: los activos no son stock fungible).
func (uc *TransactionUseCase) RemoveItem(ctx context.Context, transactionID, itemID int64) (*entity.Product, error) {
	var product *entity.Product
	err := uc.txRunner.RunAssets(ctx, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		productRepo repository.ProductRepository,
	) error {
		transaction, err := txRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if transaction == nil {
			return domain.ErrNotFound
		}
		if transaction.Closed() {
			return domain.ErrTransactionClosed
		}
		item, err := itemRepo.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.TransactionID != transactionID {
			return domain.ErrNotFound
		}
		product, err = uc.revertIfCheckOut(productRepo, transaction, item.ProductID)
		if err != nil {
			return err
		}
		return itemRepo.Delete(itemID)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina una transacción abierta, revirtiendo el estado de los
// productos de un check_out.
func (uc *TransactionUseCase) Delete(ctx context.Context, transactionID int64) error {
	return uc.txRunner.RunAssets(ctx, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		productRepo repository.ProductRepository,
	) error {
		transaction, err := txRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if transaction == nil {
			return domain.ErrNotFound
		}
		if transaction.Closed() {
			return domain.ErrTransactionClosed
		}
		items, err := itemRepo.ListByTransaction(transactionID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.revertIfCheckOut(productRepo, transaction, item.ProductID); err != nil {
				return err
			}
			if err := itemRepo.Delete(item.ID); err != nil {
				return err
			}
		}
		return txRepo.Delete(transactionID)
	})
}

// Close cierra una transacción. Requiere al menos una línea; cerrada es
// terminal para ediciones normales.
func (uc *TransactionUseCase) Close(ctx context.Context, transactionID int64) (*entity.Transaction, error) {
	transaction, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, domain.ErrNotFound
	}
	if transaction.Closed() {
		return nil, domain.ErrTransactionClosed
	}
	items, err := uc.itemRepo.ListByTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.txRepo.UpdateStatus(transactionID, entity.TransactionStatusClosed); err != nil {
		return nil, err
	}
	transaction.Status = entity.TransactionStatusClosed
	return transaction, nil
}

// Reopen reabre explícitamente una transacción cerrada.
func (uc *TransactionUseCase) Reopen(ctx context.Context, transactionID int64) (*entity.Transaction, error) {
	transaction, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, domain.ErrNotFound
	}
	if !transaction.Closed() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.txRepo.UpdateStatus(transactionID, entity.TransactionStatusOpen); err != nil {
		return nil, err
	}
	transaction.Status = entity.TransactionStatusOpen
	return transaction, nil
}

// Get devuelve una transacción con sus líneas.
func (uc *TransactionUseCase) Get(ctx context.Context, transactionID int64) (*entity.Transaction, []*entity.TransactionItem, error) {
	transaction, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, nil, err
	}
	if transaction == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByTransaction(transactionID)
	if err != nil {
		return nil, nil, err
	}
	return transaction, items, nil
}

// List lista transacciones paginadas.
func (uc *TransactionUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txRepo.List(limit, offset)
}

// addItemLocked crea la línea y aplica el efecto del tipo sobre el producto.
// La transacción ya fue verificada como abierta por el caller.
func (uc *TransactionUseCase) addItemLocked(
	itemRepo repository.TransactionItemRepository,
	productRepo repository.ProductRepository,
	transaction *entity.Transaction,
	in ItemInput,
) (*entity.TransactionItem, *entity.Product, error) {
	product, err := productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	existing, err := itemRepo.GetByTransactionAndProduct(transaction.ID, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrDuplicate
	}

	conditionBefore := in.ConditionBefore
	if conditionBefore == "" {
		conditionBefore = product.Condition
	}
	conditionAfter := in.ConditionAfter
	if conditionAfter == "" {
		conditionAfter = product.Condition
	}
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	item := &entity.TransactionItem{
		TransactionID:   transaction.ID,
		ProductID:       in.ProductID,
		ConditionBefore: conditionBefore,
		ConditionAfter:  conditionAfter,
		Quantity:        quantity,
		Notes:           in.Notes,
		Status:          "processed",
	}
	if err := itemRepo.Create(item); err != nil {
		return nil, nil, err
	}

	applyEffect(product, transaction, in.TicketingID, conditionAfter)
	if err := productRepo.Update(product); err != nil {
		return nil, nil, err
	}
	return item, product, nil
}

// applyEffect muta el producto según el tipo de transacción:
//
//	check_out -> In Use, ubicación de la transacción, ticket opcional
//	check_in  -> Available, condición = condition_after, ticket limpio
//	repair    -> Repair, last_maintenance_date = hoy
//	lost      -> Lost, last_maintenance_date = hoy
//	transfer  -> solo cambia la ubicación
func applyEffect(product *entity.Product, transaction *entity.Transaction, ticketingID, conditionAfter string) {
	now := time.Now()
	switch transaction.TransactionType {
	case entity.TransactionCheckOut:
		product.Status = entity.ProductStatusInUse
		product.Location = transaction.Location
		if ticketingID != "" {
			product.TicketingID = ticketingID
			product.IsLinkedToTicketing = true
		}
	case entity.TransactionCheckIn:
		product.Status = entity.ProductStatusAvailable
		product.Condition = conditionAfter
		product.ClearTicketLink()
	case entity.TransactionRepair:
		product.Status = entity.ProductStatusRepair
		product.LastMaintenanceDate = &now
	case entity.TransactionLost:
		product.Status = entity.ProductStatusLost
		product.LastMaintenanceDate = &now
	case entity.TransactionTransfer:
		product.Location = transaction.Location
	}
}

// revertIfCheckOut deshace el efecto de un check_out sobre un producto:
// vuelve a Available y limpia el vínculo de ticket. Otros tipos no revierten.
func (uc *TransactionUseCase) revertIfCheckOut(
	productRepo repository.ProductRepository,
	transaction *entity.Transaction,
	productID string,
) (*entity.Product, error) {
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if transaction.TransactionType != entity.TransactionCheckOut {
		return product, nil
	}
	product.Status = entity.ProductStatusAvailable
	product.ClearTicketLink()
	if err := productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// nextReferenceNo consecutivo diario por tipo: <PREFIX>-YYYYMMDD-NNN, con
// PREFIX = dos primeras letras del tipo en mayúsculas.
func (uc *TransactionUseCase) nextReferenceNo(t entity.TransactionType) (string, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := uc.txRepo.CountByTypeSince(t, startOfDay)
	if err != nil {
		return "", err
	}
	prefix := strings.ToUpper(string(t)[:2])
	return fmt.Sprintf("%s-%s-%03d", prefix, now.Format("20060102"), count+1), nil
}
