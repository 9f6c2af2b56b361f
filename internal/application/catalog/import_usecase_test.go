package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/domain"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/infrastructure/memory"
)

// ── Escenarios básicos ───────────────────────────────────────────────────────

func TestImport_CreaCategoriaYProducto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res := f.run(t, parseCSV(t,
		"product_code;category;price;stock;active",
		"ABC;Tools > Hammers;12,50;5;1",
	), catalog.ImportOptions{})

	assert.Equal(t, 1, res.CategoriesCreated)
	assert.Equal(t, 1, res.ProductsCreated)
	assert.Equal(t, 0, res.ProductsUpdated)

	cat, err := f.categories.GetByFullPath(ctx, "Tools > Hammers")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Hammers", cat.Name)
	assert.Equal(t, "Tools", cat.ParentPath)

	p, err := f.products.GetByCode(ctx, "ABC")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "12.50", p.Price.StringFixed(2))
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.Active)
	assert.Equal(t, cat.ID, p.CategoryID)
	assert.Equal(t, "", p.Currency)
}

func TestImport_ReimportarActualizaMismoID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.run(t, parseCSV(t, "product_code;category;price", "ABC;Tools > Hammers;12,50"), catalog.ImportOptions{})
	before, _ := f.products.GetByCode(ctx, "ABC")

	res := f.run(t, parseCSV(t, "product_code;category;price", "ABC;Tools > Hammers;15,00"), catalog.ImportOptions{})

	assert.Equal(t, 0, res.ProductsCreated)
	assert.Equal(t, 1, res.ProductsUpdated)
	assert.Equal(t, 0, res.CategoriesCreated)

	after, _ := f.products.GetByCode(ctx, "ABC")
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "15.00", after.Price.StringFixed(2))
}

func TestImport_FilaSinCodigoSeOmite(t *testing.T) {
	f := newFixture()

	res := f.run(t, parseCSV(t,
		"product_code;category;price",
		";Tools;1",
		"   ;Tools;2",
	), catalog.ImportOptions{})

	assert.Equal(t, 0, res.ProductsCreated)
	assert.Equal(t, 0, res.ProductsUpdated)
	assert.Equal(t, 2, res.RowsSkipped)
	list, _ := f.products.ListCategorized(context.Background())
	assert.Empty(t, list)
	// la categoría sí se materializa en la pasada 1
	assert.Equal(t, 1, res.CategoriesCreated)
}

func TestImport_SlugsColisionanPorOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.run(t, parseCSV(t,
		"product_code;category;price",
		"A1;Tools > Hammers;1",
		"A2;Tools / Hammers;1",
		"A3;Tools > Hammers;1",
	), catalog.ImportOptions{})

	first, _ := f.categories.GetByFullPath(ctx, "Tools > Hammers")
	second, _ := f.categories.GetByFullPath(ctx, "Tools / Hammers")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "tools-hammers", first.Slug)
	assert.Equal(t, "tools-hammers-1", second.Slug)

	// reimportar no cambia slugs ya asignados
	f.run(t, parseCSV(t, "product_code;category;price", "A2;Tools / Hammers;1"), catalog.ImportOptions{})
	again, _ := f.categories.GetByFullPath(ctx, "Tools / Hammers")
	assert.Equal(t, "tools-hammers-1", again.Slug)
}

func TestImport_ClearYArchivoVacioDejaCatalogoVacio(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.run(t, parseCSV(t,
		"product_code;category;price",
		"A;X > Y;1",
		"B;Z;2",
	), catalog.ImportOptions{})

	res := f.run(t, &catalog.CatalogFile{}, catalog.ImportOptions{Clear: true})

	assert.EqualValues(t, 2, res.ProductsDeleted)
	assert.EqualValues(t, 2, res.CategoriesDeleted)
	cats, _ := f.categories.List(ctx)
	assert.Empty(t, cats)
	p, _ := f.products.GetByCode(ctx, "A")
	assert.Nil(t, p)
}

// ── Invariantes ──────────────────────────────────────────────────────────────

func TestImport_CategoriaAntesQueProductoSinImportarOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res := f.run(t, parseCSV(t,
		"product_code;category;price",
		"P1;Garden;1",
		"P2;Tools > Saws;1",
		"P3;Tools;1",
		"P4;;1",
	), catalog.ImportOptions{})

	assert.Equal(t, 3, res.CategoriesCreated)
	assert.Equal(t, 4, res.ProductsCreated)

	for _, code := range []string{"P1", "P2", "P3"} {
		p, _ := f.products.GetByCode(ctx, code)
		require.NotNil(t, p, code)
		assert.NotEmpty(t, p.CategoryID, code)
	}
	p4, _ := f.products.GetByCode(ctx, "P4")
	require.NotNil(t, p4)
	assert.Empty(t, p4.CategoryID)
}

func TestImport_MismoArchivoDosVecesEsIdempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	file := parseCSV(t,
		testHeader,
		"A;Tools > Hammers;1,5;Martillo;3;1;0,4;http://img/a.jpg;http://img/a2.jpg",
		"B;Tools > Hammers;2;Mazo;0;0;;;",
		"C;Garden;3;Pala;1;1;;;",
	)

	f.run(t, file, catalog.ImportOptions{})
	cats1, _ := f.categories.List(ctx)
	prods1, _ := f.products.ListCategorized(ctx)

	res := f.run(t, file, catalog.ImportOptions{})
	cats2, _ := f.categories.List(ctx)
	prods2, _ := f.products.ListCategorized(ctx)

	assert.Equal(t, 0, res.CategoriesCreated)
	assert.Equal(t, 0, res.ProductsCreated)
	assert.Equal(t, 3, res.ProductsUpdated)
	require.Len(t, cats2, len(cats1))
	for i := range cats1 {
		assert.Equal(t, cats1[i].ID, cats2[i].ID)
		assert.Equal(t, cats1[i].Slug, cats2[i].Slug)
		assert.Equal(t, cats1[i].ImageURL, cats2[i].ImageURL)
	}
	require.Len(t, prods2, len(prods1))
	for i := range prods1 {
		assert.Equal(t, prods1[i].ID, prods2[i].ID)
		assert.True(t, prods1[i].Price.Equal(prods2[i].Price))
		assert.Equal(t, prods1[i].ImageURLs, prods2[i].ImageURLs)
	}
}

func TestImport_ReemplazoCompletoVaciaCamposAusentes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.run(t, parseCSV(t,
		"product_code;category;price;producer;weight;images 1",
		"A;Tools;1;ACME;2,5;http://img/a.jpg",
	), catalog.ImportOptions{})
	f.run(t, parseCSV(t,
		"product_code;category;price",
		"A;Tools;1",
	), catalog.ImportOptions{})

	p, _ := f.products.GetByCode(ctx, "A")
	require.NotNil(t, p)
	assert.Equal(t, "", p.Producer)
	assert.False(t, p.Weight.Valid)
	assert.Equal(t, "", p.ImageURL)
	assert.Empty(t, p.ImageURLs)
}

func TestImport_ImagenDeCategoriaDesdeProducto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.run(t, parseCSV(t,
		"product_code;category;price;images 1",
		"A;Tools;1;",
		"B;Tools;1;http://img/b.jpg",
		"C;Tools;1;http://img/c.jpg",
	), catalog.ImportOptions{})

	cat, _ := f.categories.GetByFullPath(ctx, "Tools")
	require.NotNil(t, cat)
	assert.Equal(t, "http://img/b.jpg", cat.ImageURL)
}

func TestImport_VariantesDeRutaCompartenCategoria(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res := f.run(t, parseCSV(t,
		"product_code;category;price;images 1",
		"A;Tools>Hammers;1;",
		"B;Tools > Hammers;1;http://img/b.jpg",
		"C;Tools > Hammers;1;http://img/c.jpg",
		"D; Tools >Hammers;1;http://img/d.jpg",
		"E;Tools>Hammers;1;http://img/e.jpg",
	), catalog.ImportOptions{})

	assert.Equal(t, 1, res.CategoriesCreated)
	assert.Equal(t, 1, res.CategoriesSeen)

	cat, _ := f.categories.GetByFullPath(ctx, "Tools > Hammers")
	require.NotNil(t, cat)
	assert.Equal(t, "http://img/b.jpg", cat.ImageURL, "gana la primera imagen vista para la ruta")
	for _, code := range []string{"A", "B", "C", "D", "E"} {
		p, _ := f.products.GetByCode(ctx, code)
		require.NotNil(t, p, code)
		assert.Equal(t, cat.ID, p.CategoryID, code)
	}
}

func TestImport_RutaNoCanonicaSeNormaliza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.run(t, parseCSV(t,
		"product_code;category;price",
		"A; Tools>Hammers ;1",
		"B;>>;1",
	), catalog.ImportOptions{})

	cat, _ := f.categories.GetByFullPath(ctx, "Tools > Hammers")
	require.NotNil(t, cat)
	a, _ := f.products.GetByCode(ctx, "A")
	assert.Equal(t, cat.ID, a.CategoryID)

	b, _ := f.products.GetByCode(ctx, "B")
	require.NotNil(t, b)
	assert.Empty(t, b.CategoryID, "una ruta solo de delimitadores equivale a sin categoría")
}

func TestImport_ValoresInvalidosNoAbortan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res := f.run(t, parseCSV(t,
		"product_code;category;price;weight;stock",
		"A;Tools;abc;x;y",
	), catalog.ImportOptions{})

	assert.Equal(t, 1, res.ProductsCreated)
	p, _ := f.products.GetByCode(ctx, "A")
	assert.True(t, p.Price.IsZero())
	assert.False(t, p.Weight.Valid)
	assert.Equal(t, 0, p.Stock)
}

// ── Errores ──────────────────────────────────────────────────────────────────

// failingProducts rechaza el upsert de ciertos códigos con el error indicado.
type failingProducts struct {
	*memory.ProductRepo
	fail map[string]error
}

func (r *failingProducts) Upsert(ctx context.Context, p *entity.Product) (bool, error) {
	if err, ok := r.fail[p.ProductCode]; ok {
		return false, err
	}
	return r.ProductRepo.Upsert(ctx, p)
}

func TestImport_ErrorDeFilaSeRegistraYSigue(t *testing.T) {
	store := memory.NewStore()
	products := &failingProducts{ProductRepo: store.Products(), fail: map[string]error{
		"B": domain.ErrRowRejected,
		"C": domain.ErrDuplicate,
	}}
	f := newFixtureWith(store, store.Categories(), products)

	res, err := f.uc.Import(context.Background(), parseCSV(t,
		"product_code;category;price",
		"A;Tools;1",
		"B;Tools;1",
		"C;Tools;1",
		"D;Tools;1",
	), catalog.ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.ProductsCreated)
	assert.Equal(t, 2, res.RowsFailed)
}

func TestImport_ErrorDeConexionAborta(t *testing.T) {
	store := memory.NewStore()
	connErr := errors.New("conexión cerrada")
	products := &failingProducts{ProductRepo: store.Products(), fail: map[string]error{"B": connErr}}
	f := newFixtureWith(store, store.Categories(), products)

	res, err := f.uc.Import(context.Background(), parseCSV(t,
		"product_code;category;price",
		"A;Tools;1",
		"B;Tools;1",
		"C;Tools;1",
	), catalog.ImportOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.ProductsCreated)
	c, _ := store.Products().GetByCode(context.Background(), "C")
	assert.Nil(t, c)
}

func TestImport_ContextoCancelado(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Import(ctx, parseCSV(t, "product_code;category;price", "A;;1"), catalog.ImportOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

// blockingProducts bloquea el primer upsert hasta que se cierre release.
type blockingProducts struct {
	*memory.ProductRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingProducts) Upsert(ctx context.Context, p *entity.Product) (bool, error) {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.ProductRepo.Upsert(ctx, p)
}

func TestImport_SoloUnaImportacionALaVez(t *testing.T) {
	store := memory.NewStore()
	products := &blockingProducts{
		ProductRepo: store.Products(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	f := newFixtureWith(store, store.Categories(), products)
	file := parseCSV(t, "product_code;category;price", "A;;1")

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Import(context.Background(), file, catalog.ImportOptions{})
		done <- err
	}()
	<-products.entered

	_, err := f.uc.Import(context.Background(), file, catalog.ImportOptions{})
	assert.ErrorIs(t, err, domain.ErrImportInProgress)

	close(products.release)
	require.NoError(t, <-done)

	_, err = f.uc.Import(context.Background(), file, catalog.ImportOptions{})
	assert.NoError(t, err)
}

// ── Archivo ──────────────────────────────────────────────────────────────────

func TestImportFile_NoExisteNoModifica(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.run(t, parseCSV(t, "product_code;category;price", "A;Tools;1"), catalog.ImportOptions{})

	_, err := f.uc.ImportFile(ctx, filepath.Join(t.TempDir(), "nope.csv"), catalog.ImportOptions{Clear: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, _ := f.products.GetByCode(ctx, "A")
	assert.NotNil(t, p, "no se vació el catálogo")
}

func TestImportFile_CabeceraInvalidaNoModifica(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.run(t, parseCSV(t, "product_code;category;price", "A;Tools;1"), catalog.ImportOptions{})

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("code;cat\nX;Y\n"), 0o600))

	_, err := f.uc.ImportFile(ctx, path, catalog.ImportOptions{Clear: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	p, _ := f.products.GetByCode(ctx, "A")
	assert.NotNil(t, p)
}

func TestImportFile_LeeYCarga(t *testing.T) {
	f := newFixture()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "product_code;category;price;name\nA;Tools > Hammers;9,99;Martillo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	res, err := f.uc.ImportFile(context.Background(), path, catalog.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ProductsCreated)
	assert.Equal(t, 1, res.CategoriesCreated)
}
