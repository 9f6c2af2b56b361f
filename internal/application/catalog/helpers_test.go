package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
	"github.com/jhoicas/catalog-store/internal/infrastructure/memory"
)

const testHeader = "product_code;category;price;name;stock;active;weight;images 1;images 2"

// parseCSV lee un catálogo desde líneas (la primera es la cabecera).
func parseCSV(t *testing.T, lines ...string) *catalog.CatalogFile {
	t.Helper()
	file, err := catalog.ReadCatalog(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return file
}

type fixture struct {
	store      *memory.Store
	categories repository.CategoryRepository
	products   repository.ProductRepository
	uc         *catalog.ImportUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return newFixtureWith(store, store.Categories(), store.Products())
}

func newFixtureWith(store *memory.Store, categories repository.CategoryRepository, products repository.ProductRepository) *fixture {
	return &fixture{
		store:      store,
		categories: categories,
		products:   products,
		uc:         catalog.NewImportUseCase(categories, products, store, zerolog.Nop()),
	}
}

func (f *fixture) run(t *testing.T, file *catalog.CatalogFile, opts catalog.ImportOptions) *catalog.ImportResult {
	t.Helper()
	res, err := f.uc.Import(context.Background(), file, opts)
	require.NoError(t, err)
	return res
}
