// Package memory implementa los puertos de persistencia en memoria. Sirve para
// STORAGE_DRIVER=memory (demo/desarrollo sin PostgreSQL) y como doble en los tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

var _ catalog.TxRunner = (*Store)(nil)

// Store catálogo en memoria compartido por CategoryRepo y ProductRepo.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	products   map[string]*entity.Product
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
	}
}

// Categories repositorio de categorías sobre este almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products repositorio de productos sobre este almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// RunCatalog ejecuta fn con los repositorios del almacén. Sin rollback: en memoria
// cada operación es atómica por separado.
func (s *Store) RunCatalog(_ context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(s.Categories(), s.Products())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
