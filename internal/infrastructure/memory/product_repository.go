package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	domaincatalog "github.com/jhoicas/catalog-store/internal/domain/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(_ context.Context, productCode string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.ProductCode == productCode {
			return r.withCategory(p), nil
		}
	}
	return nil, nil
}

// Upsert crea o reemplaza por ProductCode conservando ID y CreatedAt.
func (r *ProductRepo) Upsert(_ context.Context, product *entity.Product) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.products {
		if existing.ProductCode != product.ProductCode {
			continue
		}
		product.ID = id
		product.CreatedAt = existing.CreatedAt
		r.s.products[id] = cloneProduct(product)
		return false, nil
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.s.products[product.ID] = cloneProduct(product)
	return true, nil
}

// ListCategorized productos con categoría existente, ordenados por nombre.
func (r *ProductRepo) ListCategorized(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(p *entity.Product, c *entity.Category) bool { return c != nil }), nil
}

// ListByTopLevel productos bajo el primer nivel indicado, ordenados por nombre.
func (r *ProductRepo) ListByTopLevel(_ context.Context, topLevel string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(p *entity.Product, c *entity.Category) bool {
		return c != nil && domaincatalog.TopLevel(c.FullPath) == topLevel
	}), nil
}

// FirstWithImageInCategory primer producto (por nombre) de la categoría con imagen.
func (r *ProductRepo) FirstWithImageInCategory(_ context.Context, categoryID string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.filter(func(p *entity.Product, _ *entity.Category) bool {
		return p.CategoryID == categoryID && p.ImageURL != ""
	})
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteAll borra todos los productos.
func (r *ProductRepo) DeleteAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.products))
	r.s.products = make(map[string]*entity.Product)
	return n, nil
}

// filter aplica keep y ordena por nombre (y código para desempatar). Requiere el lock tomado.
func (r *ProductRepo) filter(keep func(p *entity.Product, c *entity.Category) bool) []*entity.Product {
	var list []*entity.Product
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		var c *entity.Category
		if p.CategoryID != "" {
			c = r.s.categories[p.CategoryID]
		}
		if keep(p, c) {
			list = append(list, r.withCategory(p))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ProductCode < list[j].ProductCode
	})
	return list
}

// withCategory copia el producto rellenando CategoryPath como haría el join SQL.
func (r *ProductRepo) withCategory(p *entity.Product) *entity.Product {
	cp := cloneProduct(p)
	cp.CategoryPath = ""
	if c, ok := r.s.categories[p.CategoryID]; ok && p.CategoryID != "" {
		cp.CategoryPath = c.FullPath
	} else {
		cp.CategoryID = ""
	}
	return cp
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.ImageURLs = append([]string(nil), p.ImageURLs...)
	return &cp
}
