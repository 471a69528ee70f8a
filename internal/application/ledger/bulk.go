package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// BulkAdjustmentUseCase procesa lotes de ajustes independientes. Cada entrada
// corre en su propia transacción: el fallo de una no aborta ni revierte las
// demás. Es el único componente que convierte errores en datos del resultado
// en lugar de propagarlos.
type BulkAdjustmentUseCase struct {
	txRunner TxRunner
}

// NewBulkAdjustmentUseCase construye el caso de uso.
func NewBulkAdjustmentUseCase(txRunner TxRunner) *BulkAdjustmentUseCase {
	return &BulkAdjustmentUseCase{txRunner: txRunner}
}

// BulkEntry un ajuste del lote: delta con signo sobre el stock actual.
type BulkEntry struct {
	CategoryID int64
	Delta      int
	Notes      string
}

// BulkEntryResult resultado por entrada. El caller debe inspeccionar el
// arreglo: no hay un pasa/falla global. Los campos numéricos se serializan
// siempre: un stock en cero (entrada acotada) es un valor legítimo, no una
// ausencia.
type BulkEntryResult struct {
	CategoryID  int64  `json:"category_id"`
	Success     bool   `json:"success"`
	BeforeStock int    `json:"before_stock"`
	AfterStock  int    `json:"after_stock"`
	Change      int    `json:"change"`
	Error       string `json:"error,omitempty"`
}

// BulkResult resultados por entrada más el conteo agregado.
type BulkResult struct {
	Results    []BulkEntryResult `json:"results"`
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
}

// ApplyBulk aplica cada ajuste como "adjustment" al nivel objetivo
// max(0, stock_actual + delta): los deltas negativos que dejarían el stock
// bajo cero se acotan en cero en silencio, no se rechazan (a diferencia de
// una salida estricta). Las entradas se procesan secuencialmente.
func (uc *BulkAdjustmentUseCase) ApplyBulk(ctx context.Context, actorID string, entries []BulkEntry) (*BulkResult, error) {
	if len(entries) == 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &BulkResult{Results: make([]BulkEntryResult, 0, len(entries))}
	for _, e := range entries {
		entryResult := uc.applyOne(ctx, actorID, e)
		if entryResult.Success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, entryResult)
	}
	result.Total = len(result.Results)
	return result, nil
}

// applyOne transacción propia por entrada: bloquea la fila, acota el objetivo
// y delega en el núcleo del ledger.
func (uc *BulkAdjustmentUseCase) applyOne(ctx context.Context, actorID string, e BulkEntry) BulkEntryResult {
	var res *MovementResult
	var before int

	err := uc.txRunner.Run(ctx, func(
		catRepo repository.CategoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		category, err := catRepo.GetForUpdate(e.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		if !category.HasStock {
			return domain.ErrNotStockTracked
		}

		before = category.CurrentStock
		target := before + e.Delta
		if target < 0 {
			target = 0
		}
		notes := e.Notes
		if notes == "" {
			notes = fmt.Sprintf("Ajuste masivo: %+d", e.Delta)
		}
		res, err = applyLocked(catRepo, movRepo, category, MovementInput{
			CategoryID:    e.CategoryID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      target,
			ReferenceType: entity.ReferenceBulkAdjustment,
			ActorID:       actorID,
			Notes:         notes,
		})
		return err
	})
	if err != nil {
		return BulkEntryResult{CategoryID: e.CategoryID, Success: false, Error: err.Error()}
	}
	return BulkEntryResult{
		CategoryID:  e.CategoryID,
		Success:     true,
		BeforeStock: before,
		AfterStock:  res.CurrentStock,
		Change:      e.Delta,
	}
}
