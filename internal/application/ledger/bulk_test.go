package ledger_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

func newBulkFixture(t *testing.T) (*ledger.BulkAdjustmentUseCase, *memCategoryRepo, *memMovementRepo) {
	t.Helper()
	catRepo := newMemCategoryRepo()
	movRepo := &memMovementRepo{}
	uc := ledger.NewBulkAdjustmentUseCase(&memTxRunner{catRepo: catRepo, movRepo: movRepo})
	return uc, catRepo, movRepo
}

func seedCategory(t *testing.T, repo *memCategoryRepo, code string, stock, reorderPoint int) int64 {
	t.Helper()
	category := &entity.Category{
		Name:         "Categoría " + code,
		Code:         code,
		HasStock:     true,
		CurrentStock: stock,
		ReorderPoint: reorderPoint,
	}
	category.IsLowStock = category.ComputeLowStock(stock)
	require.NoError(t, repo.Create(category))
	return category.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyBulk — aislamiento por entrada y errores como datos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyBulk_UnFalloNoAbortaLasDemas(t *testing.T) {
	uc, catRepo, _ := newBulkFixture(t)
	okID := seedCategory(t, catRepo, "CAB", 10, 2)
	otherID := seedCategory(t, catRepo, "TON", 4, 2)

	result, err := uc.ApplyBulk(context.Background(), "admin-1", []ledger.BulkEntry{
		{CategoryID: okID, Delta: 5},
		{CategoryID: 999, Delta: 1}, // inexistente
		{CategoryID: otherID, Delta: -2},
	})
	require.NoError(t, err, "los fallos por entrada no se propagan como error global")

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)

	assert.True(t, result.Results[0].Success)
	assert.Equal(t, 10, result.Results[0].BeforeStock)
	assert.Equal(t, 15, result.Results[0].AfterStock)
	assert.Equal(t, 5, result.Results[0].Change)

	assert.False(t, result.Results[1].Success)
	assert.NotEmpty(t, result.Results[1].Error)

	assert.True(t, result.Results[2].Success)
	assert.Equal(t, 2, result.Results[2].AfterStock)

	// Las entradas exitosas quedaron aplicadas aunque la segunda falló
	stored, _ := catRepo.GetByID(okID)
	assert.Equal(t, 15, stored.CurrentStock)
}

func TestApplyBulk_DeltaNegativoSeAcotaEnCero(t *testing.T) {
	uc, catRepo, movRepo := newBulkFixture(t)
	catID := seedCategory(t, catRepo, "USB", 3, 1)

	result, err := uc.ApplyBulk(context.Background(), "", []ledger.BulkEntry{
		{CategoryID: catID, Delta: -10},
	})
	require.NoError(t, err)

	entry := result.Results[0]
	assert.True(t, entry.Success, "el delta que dejaría el stock bajo cero no se rechaza")
	assert.Equal(t, 3, entry.BeforeStock)
	assert.Equal(t, 0, entry.AfterStock, "el objetivo se acota en cero")

	// El movimiento subyacente es un ajuste con el delta absoluto aplicado
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movRepo.movements[0].MovementType)
	assert.Equal(t, entity.ReferenceBulkAdjustment, movRepo.movements[0].ReferenceType)
	assert.Equal(t, 3, movRepo.movements[0].Quantity)
}

// El after_stock en cero de una entrada acotada debe viajar en el JSON: el
// caller no puede distinguir "acotada a cero" de "no reportado" si el campo
// desaparece.
func TestApplyBulk_StockEnCeroSeSerializaSiempre(t *testing.T) {
	uc, catRepo, _ := newBulkFixture(t)
	catID := seedCategory(t, catRepo, "USB", 5, 1)

	result, err := uc.ApplyBulk(context.Background(), "", []ledger.BulkEntry{
		{CategoryID: catID, Delta: -1000},
	})
	require.NoError(t, err)
	require.True(t, result.Results[0].Success)
	require.Equal(t, 0, result.Results[0].AfterStock)

	raw, err := json.Marshal(result.Results[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"after_stock":0`)
	assert.Contains(t, string(raw), `"before_stock":5`)
	assert.Contains(t, string(raw), `"change":-1000`)

	// Un before en cero legítimo tampoco desaparece
	result, err = uc.ApplyBulk(context.Background(), "", []ledger.BulkEntry{
		{CategoryID: catID, Delta: 3},
	})
	require.NoError(t, err)
	raw, err = json.Marshal(result.Results[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"before_stock":0`)
}

func TestApplyBulk_CategoriaSinStockFallaSoloEsaEntrada(t *testing.T) {
	uc, catRepo, _ := newBulkFixture(t)
	noStock := &entity.Category{Name: "Mobiliario", Code: "FUR", HasStock: false}
	require.NoError(t, catRepo.Create(noStock))
	okID := seedCategory(t, catRepo, "CAB", 5, 1)

	result, err := uc.ApplyBulk(context.Background(), "", []ledger.BulkEntry{
		{CategoryID: noStock.ID, Delta: 1},
		{CategoryID: okID, Delta: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Successful)
	assert.False(t, result.Results[0].Success)
	assert.Contains(t, result.Results[0].Error, domain.ErrNotStockTracked.Error())
}

func TestApplyBulk_LoteVacio(t *testing.T) {
	uc, _, _ := newBulkFixture(t)

	_, err := uc.ApplyBulk(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyBulk_NotasPorDefecto(t *testing.T) {
	uc, catRepo, movRepo := newBulkFixture(t)
	catID := seedCategory(t, catRepo, "CAB", 5, 1)

	_, err := uc.ApplyBulk(context.Background(), "", []ledger.BulkEntry{
		{CategoryID: catID, Delta: 2},
	})
	require.NoError(t, err)
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, "Ajuste masivo: +2", movRepo.movements[0].Notes)
}
