package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// ApplyMovementUseCase es el único componente que empareja la escritura de un
// StockMovement con la actualización de CurrentStock/IsLowStock de la
// categoría. Cada Apply produce exactamente un movimiento y una actualización
// del agregado, o nada (todo-o-nada vía transacción con fila bloqueada).
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Para in/out, Quantity es la magnitud (positiva). Para adjustment, Quantity
// es el nivel objetivo absoluto; el movimiento guarda |after - before|.
type MovementInput struct {
	CategoryID    int64
	Type          entity.MovementType
	Quantity      int
	ReferenceType entity.ReferenceType
	ReferenceID   *int64
	ActorID       string
	Notes         string
}

// MovementResult movimiento creado más el nuevo estado del agregado, para que
// las capas llamadoras respondan sin re-consultar.
type MovementResult struct {
	Movement     *entity.StockMovement
	CurrentStock int
	IsLowStock   bool
}

// Apply valida la entrada, abre una transacción, bloquea la fila de la
// categoría (SELECT FOR UPDATE) y aplica el movimiento. Las validaciones
// locales fallan antes de escribir nada; cualquier error dentro de la tx hace
// rollback de movimiento y agregado por igual.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		res, err := uc.ApplyInTx(catRepo, movRepo, input)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usan la recepción de compras y el ajuste
// masivo para encadenar el movimiento con sus propias escrituras.
func (uc *ApplyMovementUseCase) ApplyInTx(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
	input MovementInput,
) (*MovementResult, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	category, err := catRepo.GetForUpdate(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if !category.HasStock {
		return nil, domain.ErrNotStockTracked
	}
	return applyLocked(catRepo, movRepo, category, input)
}

// ReversalInput entrada para revertir el efecto de una línea de recibo.
type ReversalInput struct {
	CategoryID    int64
	Quantity      int
	ReferenceType entity.ReferenceType // purchase_receipt_reversal o purchase_receipt_item_removal
	ReferenceID   *int64
	ActorID       string
	Notes         string
}

// ReverseInTx registra la salida compensatoria de una reversión de recibo.
// A diferencia de una salida estricta, el stock se acota en cero por debajo:
// el movimiento guarda el delta realmente aplicado (min(Quantity, before))
// para que la invariante after = before - quantity se cumpla siempre.
func (uc *ApplyMovementUseCase) ReverseInTx(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
	input ReversalInput,
) (*MovementResult, error) {
	if input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.ReferenceType != entity.ReferenceReceiptReversal &&
		input.ReferenceType != entity.ReferenceReceiptItemRemoval {
		return nil, domain.ErrInvalidInput
	}
	category, err := catRepo.GetForUpdate(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if !category.HasStock {
		return nil, domain.ErrNotStockTracked
	}

	applied := input.Quantity
	if applied > category.CurrentStock {
		applied = category.CurrentStock
	}
	return applyLocked(catRepo, movRepo, category, MovementInput{
		CategoryID:    input.CategoryID,
		Type:          entity.MovementTypeOut,
		Quantity:      applied,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		ActorID:       input.ActorID,
		Notes:         input.Notes,
	})
}

// validateInput valida tipo y cantidad sin tocar la BD.
func validateInput(input *MovementInput) error {
	if !input.Type.Valid() {
		return domain.ErrInvalidMovementType
	}
	if input.ReferenceType == "" {
		input.ReferenceType = entity.ReferenceManual
	}
	if !input.ReferenceType.Valid() {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// applyLocked núcleo del ledger: la categoría ya viene bloqueada por la tx.
// Calcula after_stock según el tipo, recalcula is_low_stock y escribe
// movimiento + agregado. El caso "out" con cero permitido: quantity == before
// deja after en 0; quantity mayor falla sin registrar nada.
func applyLocked(
	catRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
	category *entity.Category,
	input MovementInput,
) (*MovementResult, error) {
	before := category.CurrentStock
	var after, quantity int

	switch input.Type {
	case entity.MovementTypeIn:
		after = before + input.Quantity
		quantity = input.Quantity
	case entity.MovementTypeOut:
		after = before - input.Quantity
		if after < 0 {
			return nil, domain.ErrInsufficientStock
		}
		quantity = input.Quantity
	case entity.MovementTypeAdjustment:
		// Ajuste a nivel objetivo: Quantity es el stock final deseado y el
		// movimiento guarda el delta absoluto realmente aplicado.
		after = input.Quantity
		quantity = after - before
		if quantity < 0 {
			quantity = -quantity
		}
	default:
		return nil, domain.ErrInvalidMovementType
	}

	isLowStock := category.ComputeLowStock(after)

	movement := &entity.StockMovement{
		CategoryID:    category.ID,
		MovementType:  input.Type,
		Quantity:      quantity,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		BeforeStock:   before,
		AfterStock:    after,
		MovementDate:  time.Now(),
		CreatedBy:     input.ActorID,
		Notes:         input.Notes,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	if err := catRepo.UpdateStock(category.ID, after, isLowStock); err != nil {
		return nil, err
	}

	category.CurrentStock = after
	category.IsLowStock = isLowStock
	return &MovementResult{
		Movement:     movement,
		CurrentStock: after,
		IsLowStock:   isLowStock,
	}, nil
}
