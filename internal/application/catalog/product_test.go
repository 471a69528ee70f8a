package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/catalog"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// memProductSequenceRepo contador en memoria por categoría.
type memProductSequenceRepo struct {
	counters map[int64]int
}

func (r *memProductSequenceRepo) Next(categoryID int64) (int, error) {
	r.counters[categoryID]++
	return r.counters[categoryID], nil
}

type productFixture struct {
	uc          *catalog.ProductUseCase
	catRepo     *memCategoryRepo
	productRepo *memProductRepo
	category    *entity.Category
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	catRepo := newMemCategoryRepo()
	productRepo := newMemProductRepo()
	seqRepo := &memProductSequenceRepo{counters: make(map[int64]int)}

	category := &entity.Category{Name: "Equipos de red", Code: "NET"}
	require.NoError(t, catRepo.Create(category))

	return &productFixture{
		uc:          catalog.NewProductUseCase(productRepo, catRepo, seqRepo),
		catRepo:     catRepo,
		productRepo: productRepo,
		category:    category,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_GeneraCodigoConsecutivo(t *testing.T) {
	f := newProductFixture(t)

	first, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
		Brand:      "Cisco",
	})
	require.NoError(t, err)
	assert.Equal(t, "NET001", first.ProductID)

	second, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "NET002", second.ProductID)
}

func TestProductCreate_SaltaCodigosOcupados(t *testing.T) {
	f := newProductFixture(t)

	// Alta manual que ocupa el primer consecutivo de la categoría
	_, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		ProductID:  "NET001",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	generated, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "NET002", generated.ProductID, "el generador salta los códigos ya ocupados")
}

func TestProductCreate_CodigoExplicitoSeNormaliza(t *testing.T) {
	f := newProductFixture(t)

	product, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		ProductID:  " net009 ",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "NET009", product.ProductID)

	_, err = f.uc.Create(context.Background(), catalog.CreateProductInput{
		ProductID:  "NET009",
		CategoryID: f.category.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), catalog.CreateProductInput{CategoryID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_EstadoInvalido(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
		Status:     "Prestado",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_ValoresPorDefecto(t *testing.T) {
	f := newProductFixture(t)

	product, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusAvailable, product.Status)
	assert.Equal(t, entity.ProductConditionNew, product.Condition)
	assert.Equal(t, 1, product.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update / Delete / ListByCategory
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_SoloCambiaLosCamposEnviados(t *testing.T) {
	f := newProductFixture(t)
	product, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
		Brand:      "Cisco",
		Location:   "Bodega",
	})
	require.NoError(t, err)

	updated, err := f.uc.Update(context.Background(), product.ProductID, catalog.UpdateProductInput{
		Location: strPtr("Piso 3"),
		Status:   strPtr(entity.ProductStatusRepair),
	})
	require.NoError(t, err)
	assert.Equal(t, "Piso 3", updated.Location)
	assert.Equal(t, entity.ProductStatusRepair, updated.Status)
	assert.Equal(t, "Cisco", updated.Brand, "los campos no enviados no cambian")

	_, err = f.uc.Update(context.Background(), product.ProductID, catalog.UpdateProductInput{
		Status: strPtr("Prestado"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Update(context.Background(), product.ProductID, catalog.UpdateProductInput{
		Quantity: intPtr(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_VinculaYDesvinculaTicket(t *testing.T) {
	f := newProductFixture(t)
	product, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	updated, err := f.uc.Update(context.Background(), product.ProductID, catalog.UpdateProductInput{
		TicketingID: strPtr("GLPI-42"),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsLinkedToTicketing)
	assert.Equal(t, "GLPI-42", updated.TicketingID)

	// Cadena vacía = desvincular
	updated, err = f.uc.Update(context.Background(), product.ProductID, catalog.UpdateProductInput{
		TicketingID: strPtr(""),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsLinkedToTicketing)
	assert.Empty(t, updated.TicketingID)
}

func TestProductDelete_LiberaElBorradoDeLaCategoria(t *testing.T) {
	f := newProductFixture(t)
	categoryUC := catalog.NewCategoryUseCase(f.catRepo, f.productRepo)

	product, err := f.uc.Create(context.Background(), catalog.CreateProductInput{
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	err = categoryUC.Delete(context.Background(), f.category.ID)
	assert.ErrorIs(t, err, domain.ErrLinkedProductsExist)

	require.NoError(t, f.uc.Delete(context.Background(), product.ProductID))

	assert.NoError(t, categoryUC.Delete(context.Background(), f.category.ID),
		"dar de baja el activo desbloquea el borrado de la categoría")
}

func TestProductDelete_Inexistente(t *testing.T) {
	f := newProductFixture(t)

	err := f.uc.Delete(context.Background(), "NET404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListByCategory_CategoriaInexistente(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.ListByCategory(context.Background(), 999, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
