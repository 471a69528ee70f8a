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

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	categories map[int64]*entity.Category
	nextID     int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[int64]*entity.Category), nextID: 1}
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetByCode(code string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) GetForUpdate(id int64) (*entity.Category, error) {
	return r.GetByID(id)
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) UpdateStock(id int64, currentStock int, isLowStock bool) error {
	c, ok := r.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentStock = currentStock
	c.IsLowStock = isLowStock
	return nil
}

func (r *memCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) ListWithStock(lowStockOnly bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if !c.HasStock {
			continue
		}
		if lowStockOnly && !c.IsLowStock {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) Delete(id int64) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// memProductRepo fake en memoria. countByCategory permite simular activos
// vinculados sin darlos de alta uno a uno.
type memProductRepo struct {
	products        map[string]*entity.Product
	countByCategory map[int64]int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products:        make(map[string]*entity.Product),
		countByCategory: make(map[int64]int),
	}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	if _, ok := r.products[p.ProductID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.products[p.ProductID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(productID string) (*entity.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Exists(productID string) (bool, error) {
	_, ok := r.products[productID]
	return ok, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ProductID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ProductID] = &cp
	return nil
}

func (r *memProductRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) CountByCategory(categoryID int64) (int, error) {
	n := r.countByCategory[categoryID]
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) CountByReceiptItem(receiptItemID int64) (int, error) { return 0, nil }
func (r *memProductRepo) CountByReceipt(receiptID int64) (int, error)         { return 0, nil }

func (r *memProductRepo) Delete(productID string) error {
	if _, ok := r.products[productID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, productID)
	return nil
}

func newFixture(t *testing.T) (*catalog.CategoryUseCase, *memCategoryRepo, *memProductRepo) {
	t.Helper()
	catRepo := newMemCategoryRepo()
	productRepo := newMemProductRepo()
	return catalog.NewCategoryUseCase(catRepo, productRepo), catRepo, productRepo
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaElCodigo(t *testing.T) {
	uc, _, _ := newFixture(t)

	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name:         "Cables de red",
		Code:         " net ",
		HasStock:     true,
		MinStock:     5,
		MaxStock:     100,
		CurrentStock: 30,
		ReorderPoint: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "NET", category.Code)
	assert.False(t, category.IsLowStock, "30 > 10")
}

func TestCreate_CodigoInvalido(t *testing.T) {
	uc, _, _ := newFixture(t)

	for _, code := range []string{"", "N", "NETW"} {
		_, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
			Name: "Cables", Code: code,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "código %q debe rechazarse", code)
	}
}

func TestCreate_CodigoYNombreDuplicados(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Create(context.Background(), catalog.CreateCategoryInput{Name: "Cables", Code: "NET"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), catalog.CreateCategoryInput{Name: "Otros", Code: "net"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el código se compara normalizado")

	_, err = uc.Create(context.Background(), catalog.CreateCategoryInput{Name: "Cables", Code: "CAB"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_SinStockIgnoraCamposDeStock(t *testing.T) {
	uc, _, _ := newFixture(t)

	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name:         "Mobiliario",
		Code:         "FUR",
		HasStock:     false,
		CurrentStock: 50,
		ReorderPoint: 10,
	})
	require.NoError(t, err)
	assert.Zero(t, category.CurrentStock)
	assert.Zero(t, category.ReorderPoint)
	assert.False(t, category.IsLowStock)
}

func TestCreate_RangoDeStockInvalido(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name: "Cables", Code: "NET", HasStock: true, MinStock: 10, MaxStock: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name: "Cables", Code: "NET", HasStock: true, CurrentStock: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_EditarCurrentStockDirectoRechazado(t *testing.T) {
	uc, _, _ := newFixture(t)
	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name: "Cables", Code: "NET", HasStock: true, MaxStock: 100, CurrentStock: 30,
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), category.ID, catalog.UpdateCategoryInput{
		CurrentStock: intPtr(99),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el stock actual solo lo muta el ledger")

	// Mandar el valor vigente sin cambio es inofensivo
	_, err = uc.Update(context.Background(), category.ID, catalog.UpdateCategoryInput{
		CurrentStock: intPtr(30),
	})
	assert.NoError(t, err)
}

func TestUpdate_HabilitarStockAceptaValorInicial(t *testing.T) {
	uc, _, _ := newFixture(t)
	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name: "Tóner", Code: "TON", HasStock: false,
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), category.ID, catalog.UpdateCategoryInput{
		HasStock:     boolPtr(true),
		MaxStock:     intPtr(50),
		CurrentStock: intPtr(12),
		ReorderPoint: intPtr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.CurrentStock)
	assert.True(t, updated.IsLowStock, "12 <= 15")
}

func TestUpdate_DeshabilitarStockPoneLosCamposEnCero(t *testing.T) {
	uc, _, _ := newFixture(t)
	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name: "Cables", Code: "NET", HasStock: true,
		MinStock: 5, MaxStock: 100, CurrentStock: 30, ReorderPoint: 10, Unit: "m",
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), category.ID, catalog.UpdateCategoryInput{
		HasStock: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Zero(t, updated.MinStock)
	assert.Zero(t, updated.MaxStock)
	assert.Zero(t, updated.CurrentStock)
	assert.Zero(t, updated.ReorderPoint)
	assert.Empty(t, updated.Unit)
	assert.False(t, updated.IsLowStock)
}

func TestUpdate_CambiarPuntoDeReordenRecalculaElFlag(t *testing.T) {
	uc, catRepo, _ := newFixture(t)
	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{
		Name: "Cables", Code: "NET", HasStock: true, MaxStock: 100,
		CurrentStock: 30, ReorderPoint: 10,
	})
	require.NoError(t, err)
	assert.False(t, category.IsLowStock)

	updated, err := uc.Update(context.Background(), category.ID, catalog.UpdateCategoryInput{
		ReorderPoint: intPtr(40),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsLowStock, "30 <= 40 tras subir el punto de reorden")

	stored, _ := catRepo.GetByID(category.ID)
	assert.True(t, stored.IsLowStock)
}

func TestUpdate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, err := uc.Create(context.Background(), catalog.CreateCategoryInput{Name: "Cables", Code: "NET"})
	require.NoError(t, err)
	other, err := uc.Create(context.Background(), catalog.CreateCategoryInput{Name: "Tóner", Code: "TON"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), other.ID, catalog.UpdateCategoryInput{
		Code: strPtr("net"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete / Summary / Alerts
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_BloqueadaConProductosVinculados(t *testing.T) {
	uc, _, productRepo := newFixture(t)
	category, err := uc.Create(context.Background(), catalog.CreateCategoryInput{Name: "Cables", Code: "NET"})
	require.NoError(t, err)

	productRepo.countByCategory[category.ID] = 3
	err = uc.Delete(context.Background(), category.ID)
	assert.ErrorIs(t, err, domain.ErrLinkedProductsExist)

	productRepo.countByCategory[category.ID] = 0
	assert.NoError(t, uc.Delete(context.Background(), category.ID))

	_, err = uc.Get(context.Background(), category.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummary_CuentaBajoStockYAgotados(t *testing.T) {
	uc, catRepo, _ := newFixture(t)
	seed := func(code string, stock, reorder int) {
		c := &entity.Category{Name: "Cat " + code, Code: code, HasStock: true,
			CurrentStock: stock, ReorderPoint: reorder}
		c.IsLowStock = c.ComputeLowStock(stock)
		require.NoError(t, catRepo.Create(c))
	}
	seed("AAA", 0, 5)  // agotada y baja
	seed("BBB", 3, 5)  // baja
	seed("CCC", 50, 5) // normal
	require.NoError(t, catRepo.Create(&entity.Category{Name: "Sin stock", Code: "FUR"}))

	summary, err := uc.Summary(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCategories, "las categorías sin stock no cuentan")
	assert.Equal(t, 2, summary.LowStockCount)
	assert.Equal(t, 1, summary.OutOfStockCount)

	lowOnly, err := uc.Summary(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, lowOnly.TotalCategories)
}

func TestAlerts_UrgenciaYFaltante(t *testing.T) {
	uc, catRepo, _ := newFixture(t)
	seed := func(code string, stock, reorder, min int) {
		c := &entity.Category{Name: "Cat " + code, Code: code, HasStock: true,
			CurrentStock: stock, ReorderPoint: reorder, MinStock: min}
		c.IsLowStock = c.ComputeLowStock(stock)
		require.NoError(t, catRepo.Create(c))
	}
	seed("AAA", 0, 10, 5)  // critical, faltante 5
	seed("BBB", 4, 10, 2)  // high (4*2 <= 10), faltante 0
	seed("CCC", 8, 10, 20) // medium, faltante 12

	alerts, err := uc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	byCode := make(map[string]catalog.LowStockAlert)
	for _, a := range alerts {
		byCode[a.Category.Code] = a
	}
	assert.Equal(t, catalog.UrgencyCritical, byCode["AAA"].Urgency)
	assert.Equal(t, 5, byCode["AAA"].Shortage)
	assert.Equal(t, catalog.UrgencyHigh, byCode["BBB"].Urgency)
	assert.Zero(t, byCode["BBB"].Shortage)
	assert.Equal(t, catalog.UrgencyMedium, byCode["CCC"].Urgency)
	assert.Equal(t, 12, byCode["CCC"].Shortage)
}
