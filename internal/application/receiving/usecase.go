package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// ReceivingUseCase concilia recibos de compra con el ledger de stock: cada
// línea recibida genera una entrada "in" y su retiro genera la salida
// compensatoria. Opcionalmente materializa activos serializados por línea.
type ReceivingUseCase struct {
	txRunner     TxRunner
	ledger       *ledger.ApplyMovementUseCase
	supplierRepo repository.SupplierRepository
	receiptRepo  repository.PurchaseReceiptRepository
	itemRepo     repository.PurchaseReceiptItemRepository
}

// NewReceivingUseCase construye el caso de uso. receiptRepo/itemRepo atados al
// pool se usan solo para lecturas fuera de transacción.
func NewReceivingUseCase(
	txRunner TxRunner,
	ledgerUC *ledger.ApplyMovementUseCase,
	supplierRepo repository.SupplierRepository,
	receiptRepo repository.PurchaseReceiptRepository,
	itemRepo repository.PurchaseReceiptItemRepository,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner:     txRunner,
		ledger:       ledgerUC,
		supplierRepo: supplierRepo,
		receiptRepo:  receiptRepo,
		itemRepo:     itemRepo,
	}
}

// ItemInput línea a recibir. GenerateProducts materializa Quantity activos
// serializados con ids <CODE><NNN> del consecutivo de la categoría.
type ItemInput struct {
	CategoryID       int64
	Quantity         int
	UnitPrice        decimal.Decimal
	SerialNumbers    string
	Condition        string
	Notes            string
	GenerateProducts bool
}

// CreateReceiptInput datos para crear un recibo con sus líneas.
type CreateReceiptInput struct {
	ReceiptNumber string // vacío = generar RCP-YYYYMMDD-NNN
	PONumber      string
	SupplierID    int64
	ReceiptDate   *time.Time
	Status        string // vacío = completed
	Notes         string
	Items         []ItemInput
}

// ItemResult línea creada más el movimiento del ledger (nil si la categoría no
// maneja stock) y los activos generados.
type ItemResult struct {
	Item     *entity.PurchaseReceiptItem
	Movement *ledger.MovementResult
	Products []*entity.Product
}

// ReceiptResult recibo creado con sus líneas y movimientos, para responder sin
// re-consultar.
type ReceiptResult struct {
	Receipt *entity.PurchaseReceipt
	Items   []*ItemResult
}

// CreateReceipt valida proveedor y número, genera el consecutivo diario si
// hace falta y crea recibo + líneas + movimientos + activos en una sola
// transacción.
func (uc *ReceivingUseCase) CreateReceipt(ctx context.Context, actorID string, in CreateReceiptInput) (*ReceiptResult, error) {
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	receiptNumber := in.ReceiptNumber
	if receiptNumber != "" {
		existing, err := uc.receiptRepo.GetByNumber(receiptNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	} else {
		receiptNumber, err = uc.nextReceiptNumber()
		if err != nil {
			return nil, err
		}
	}

	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	receiptDate := now
	if in.ReceiptDate != nil {
		receiptDate = *in.ReceiptDate
	}
	status := in.Status
	if status == "" {
		status = entity.ReceiptStatusCompleted
	}

	receipt := &entity.PurchaseReceipt{
		ReceiptNumber: receiptNumber,
		PONumber:      in.PONumber,
		SupplierID:    in.SupplierID,
		ReceiptDate:   receiptDate,
		TotalAmount:   decimal.Zero,
		Status:        status,
		CreatedBy:     actorID,
		Notes:         in.Notes,
	}

	result := &ReceiptResult{}
	err = uc.txRunner.RunReceiving(ctx, func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
		receiptRepo repository.PurchaseReceiptRepository,
		itemRepo repository.PurchaseReceiptItemRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.ProductSequenceRepository,
	) error {
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}
		total := decimal.Zero
		for _, itemIn := range in.Items {
			itemRes, err := uc.addItemLocked(
				catRepo, movRepo, itemRepo, productRepo, seqRepo,
				receipt, actorID, itemIn,
				fmt.Sprintf("Recibo de compra: %s", receipt.ReceiptNumber),
			)
			if err != nil {
				return err
			}
			total = total.Add(itemRes.Item.TotalPrice)
			result.Items = append(result.Items, itemRes)
		}
		if err := receiptRepo.UpdateTotalAmount(receipt.ID, total); err != nil {
			return err
		}
		receipt.TotalAmount = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Receipt = receipt
	return result, nil
}

// AddItem agrega una línea a un recibo no completado, actualizando el total
// exactamente en el precio de la línea.
func (uc *ReceivingUseCase) AddItem(ctx context.Context, actorID string, receiptID int64, in ItemInput) (*ItemResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *ItemResult
	err := uc.txRunner.RunReceiving(ctx, func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
		receiptRepo repository.PurchaseReceiptRepository,
		itemRepo repository.PurchaseReceiptItemRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.ProductSequenceRepository,
	) error {
		receipt, err := receiptRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.Locked() {
			return domain.ErrReceiptLocked
		}
		itemRes, err := uc.addItemLocked(
			catRepo, movRepo, itemRepo, productRepo, seqRepo,
			receipt, actorID, in,
			fmt.Sprintf("Agregado al recibo: %s", receipt.ReceiptNumber),
		)
		if err != nil {
			return err
		}
		newTotal := receipt.TotalAmount.Add(itemRes.Item.TotalPrice)
		if err := receiptRepo.UpdateTotalAmount(receipt.ID, newTotal); err != nil {
			return err
		}
		receipt.TotalAmount = newTotal
		result = itemRes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem retira una línea de un recibo no completado: salida compensatoria
// en el ledger, total del recibo acotado en cero y borrado de la línea.
// Rechaza el retiro mientras existan activos generados desde la línea.
func (uc *ReceivingUseCase) RemoveItem(ctx context.Context, actorID string, receiptID, itemID int64) (*ledger.MovementResult, error) {
	var movement *ledger.MovementResult
	err := uc.txRunner.RunReceiving(ctx, func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
		receiptRepo repository.PurchaseReceiptRepository,
		itemRepo repository.PurchaseReceiptItemRepository,
		productRepo repository.ProductRepository,
		_ repository.ProductSequenceRepository,
	) error {
		receipt, err := receiptRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.Locked() {
			return domain.ErrReceiptLocked
		}
		item, err := itemRepo.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.ReceiptID != receiptID {
			return domain.ErrNotFound
		}
		linked, err := productRepo.CountByReceiptItem(itemID)
		if err != nil {
			return err
		}
		if linked > 0 {
			return domain.ErrLinkedProductsExist
		}

		movement, err = uc.reverseIfStocked(catRepo, movRepo, item.CategoryID, ledger.ReversalInput{
			CategoryID:    item.CategoryID,
			Quantity:      item.Quantity,
			ReferenceType: entity.ReferenceReceiptItemRemoval,
			ReferenceID:   &receipt.ID,
			ActorID:       actorID,
			Notes:         fmt.Sprintf("Retirado del recibo: %s", receipt.ReceiptNumber),
		})
		if err != nil {
			return err
		}

		newTotal := receipt.TotalAmount.Sub(item.TotalPrice)
		if newTotal.IsNegative() {
			newTotal = decimal.Zero
		}
		if err := receiptRepo.UpdateTotalAmount(receipt.ID, newTotal); err != nil {
			return err
		}
		return itemRepo.Delete(itemID)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// DeleteReceipt elimina un recibo no completado revirtiendo en el ledger el
// efecto de cada línea. Bloqueado mientras algún activo provenga del recibo.
func (uc *ReceivingUseCase) DeleteReceipt(ctx context.Context, actorID string, receiptID int64) ([]*ledger.MovementResult, error) {
	var movements []*ledger.MovementResult
	err := uc.txRunner.RunReceiving(ctx, func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
		receiptRepo repository.PurchaseReceiptRepository,
		itemRepo repository.PurchaseReceiptItemRepository,
		productRepo repository.ProductRepository,
		_ repository.ProductSequenceRepository,
	) error {
		receipt, err := receiptRepo.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.Locked() {
			return domain.ErrReceiptLocked
		}
		linked, err := productRepo.CountByReceipt(receiptID)
		if err != nil {
			return err
		}
		if linked > 0 {
			return domain.ErrLinkedProductsExist
		}

		items, err := itemRepo.ListByReceipt(receiptID)
		if err != nil {
			return err
		}
		for _, item := range items {
			movement, err := uc.reverseIfStocked(catRepo, movRepo, item.CategoryID, ledger.ReversalInput{
				CategoryID:    item.CategoryID,
				Quantity:      item.Quantity,
				ReferenceType: entity.ReferenceReceiptReversal,
				ReferenceID:   &receipt.ID,
				ActorID:       actorID,
				Notes:         fmt.Sprintf("Reversión del recibo: %s", receipt.ReceiptNumber),
			})
			if err != nil {
				return err
			}
			if movement != nil {
				movements = append(movements, movement)
			}
			if err := itemRepo.Delete(item.ID); err != nil {
				return err
			}
		}
		return receiptRepo.Delete(receiptID)
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// UpdateReceiptInput campos editables de un recibo. Punteros nil = sin cambio.
type UpdateReceiptInput struct {
	ReceiptNumber *string
	PONumber      *string
	SupplierID    *int64
	ReceiptDate   *time.Time
	Status        *string
	Notes         *string
}

// UpdateReceipt edita la cabecera. Un recibo completado solo admite la
// transición de estado a cancelled.
func (uc *ReceivingUseCase) UpdateReceipt(ctx context.Context, receiptID int64, in UpdateReceiptInput) (*entity.PurchaseReceipt, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if receipt.Locked() && (in.Status == nil || *in.Status != entity.ReceiptStatusCancelled) {
		return nil, domain.ErrReceiptLocked
	}

	if in.ReceiptNumber != nil && *in.ReceiptNumber != receipt.ReceiptNumber {
		existing, err := uc.receiptRepo.GetByNumber(*in.ReceiptNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		receipt.ReceiptNumber = *in.ReceiptNumber
	}
	if in.SupplierID != nil && *in.SupplierID != receipt.SupplierID {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		receipt.SupplierID = *in.SupplierID
	}
	if in.PONumber != nil {
		receipt.PONumber = *in.PONumber
	}
	if in.ReceiptDate != nil {
		receipt.ReceiptDate = *in.ReceiptDate
	}
	if in.Status != nil {
		receipt.Status = *in.Status
	}
	if in.Notes != nil {
		receipt.Notes = *in.Notes
	}

	if err := uc.receiptRepo.Update(receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetReceipt devuelve un recibo con sus líneas.
func (uc *ReceivingUseCase) GetReceipt(ctx context.Context, receiptID int64) (*entity.PurchaseReceipt, []*entity.PurchaseReceiptItem, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByReceipt(receiptID)
	if err != nil {
		return nil, nil, err
	}
	return receipt, items, nil
}

// ListReceipts lista recibos paginados.
func (uc *ReceivingUseCase) ListReceipts(ctx context.Context, limit, offset int) ([]*entity.PurchaseReceipt, error) {
	return uc.receiptRepo.List(limit, offset)
}

// addItemLocked crea la línea, registra la entrada en el ledger si la
// categoría maneja stock y genera los activos pedidos. El recibo ya viene
// bloqueado por el caller.
func (uc *ReceivingUseCase) addItemLocked(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.PurchaseReceiptItemRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.ProductSequenceRepository,
	receipt *entity.PurchaseReceipt,
	actorID string,
	in ItemInput,
	movementNotes string,
) (*ItemResult, error) {
	category, err := catRepo.GetForUpdate(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	condition := in.Condition
	if condition == "" {
		condition = entity.ProductConditionNew
	}
	item := &entity.PurchaseReceiptItem{
		ReceiptID:     receipt.ID,
		CategoryID:    in.CategoryID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TotalPrice:    in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		SerialNumbers: in.SerialNumbers,
		Condition:     condition,
		Notes:         in.Notes,
	}
	if err := itemRepo.Create(item); err != nil {
		return nil, err
	}

	result := &ItemResult{Item: item}
	if category.HasStock {
		movement, err := uc.ledger.ApplyInTx(catRepo, movRepo, ledger.MovementInput{
			CategoryID:    in.CategoryID,
			Type:          entity.MovementTypeIn,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferencePurchaseReceipt,
			ReferenceID:   &receipt.ID,
			ActorID:       actorID,
			Notes:         movementNotes,
		})
		if err != nil {
			return nil, err
		}
		result.Movement = movement
	}

	if in.GenerateProducts {
		products, err := uc.spawnProducts(productRepo, seqRepo, category, receipt, item)
		if err != nil {
			return nil, err
		}
		result.Products = products
	}
	return result, nil
}

// reverseIfStocked registra la salida compensatoria solo para categorías con
// stock; las demás no tienen nada que revertir en el ledger.
func (uc *ReceivingUseCase) reverseIfStocked(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
	categoryID int64,
	in ledger.ReversalInput,
) (*ledger.MovementResult, error) {
	category, err := catRepo.GetForUpdate(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.HasStock {
		return nil, nil
	}
	return uc.ledger.ReverseInTx(catRepo, movRepo, in)
}

// spawnProducts materializa Quantity activos con ids <CODE><NNN>. El
// consecutivo por categoría evita el barrido lineal de ids; si un sufijo ya
// está ocupado (alta manual) se salta al siguiente.
func (uc *ReceivingUseCase) spawnProducts(
	productRepo repository.ProductRepository,
	seqRepo repository.ProductSequenceRepository,
	category *entity.Category,
	receipt *entity.PurchaseReceipt,
	item *entity.PurchaseReceiptItem,
) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, item.Quantity)
	purchaseDate := receipt.ReceiptDate
	for i := 0; i < item.Quantity; i++ {
		productID, err := uc.nextProductID(productRepo, seqRepo, category)
		if err != nil {
			return nil, err
		}
		product := &entity.Product{
			ProductID:     productID,
			CategoryID:    category.ID,
			SerialNumber:  item.SerialNumbers,
			SupplierID:    &receipt.SupplierID,
			PONumber:      receipt.PONumber,
			ReceiptItemID: &item.ID,
			Status:        entity.ProductStatusAvailable,
			Condition:     item.Condition,
			Quantity:      1,
			PurchaseDate:  &purchaseDate,
			PurchasePrice: item.UnitPrice,
		}
		if err := productRepo.Create(product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// nextProductID pide consecutivos hasta encontrar un sufijo libre.
func (uc *ReceivingUseCase) nextProductID(
	productRepo repository.ProductRepository,
	seqRepo repository.ProductSequenceRepository,
	category *entity.Category,
) (string, error) {
	for {
		n, err := seqRepo.Next(category.ID)
		if err != nil {
			return "", err
		}
		productID := fmt.Sprintf("%s%03d", category.Code, n)
		exists, err := productRepo.Exists(productID)
		if err != nil {
			return "", err
		}
		if !exists {
			return productID, nil
		}
	}
}

// nextReceiptNumber consecutivo diario RCP-YYYYMMDD-NNN (NNN = recibos creados
// hoy + 1, con ceros a la izquierda).
func (uc *ReceivingUseCase) nextReceiptNumber() (string, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := uc.receiptRepo.CountCreatedSince(startOfDay)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RCP-%s-%03d", now.Format("20060102"), count+1), nil
}
