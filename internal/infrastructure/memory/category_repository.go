package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/catalog-store/internal/domain"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s *Store
}

// Create persiste una categoría nueva; full_path o slug duplicado = ErrDuplicate.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, c := range r.s.categories {
		if c.FullPath == category.FullPath {
			return domain.ErrDuplicate
		}
	}
	if r.slugTaken(category) {
		return domain.ErrDuplicate
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

// Update reemplaza la categoría con el mismo ID. Un slug ya usado por otra = ErrDuplicate.
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return nil
	}
	if r.slugTaken(category) {
		return domain.ErrDuplicate
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

// slugTaken indica si otra categoría usa ya el slug no vacío. Requiere el lock tomado.
func (r *CategoryRepo) slugTaken(category *entity.Category) bool {
	if category.Slug == "" {
		return false
	}
	for id, c := range r.s.categories {
		if id != category.ID && c.Slug == category.Slug {
			return true
		}
	}
	return false
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetByFullPath obtiene una categoría por ruta exacta.
func (r *CategoryRepo) GetByFullPath(_ context.Context, fullPath string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.FullPath == fullPath {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// SlugTakenByOtherPath indica si otra ruta ya usa el slug.
func (r *CategoryRepo) SlugTakenByOtherPath(_ context.Context, slug, fullPath string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Slug == slug && c.FullPath != fullPath {
			return true, nil
		}
	}
	return false, nil
}

// List todas las categorías ordenadas por full_path.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FullPath < list[j].FullPath })
	return list, nil
}

// Fingerprint número de categorías y última modificación.
func (r *CategoryRepo) Fingerprint(_ context.Context) (entity.CategoryFingerprint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fp := entity.CategoryFingerprint{Count: len(r.s.categories)}
	for _, c := range r.s.categories {
		if c.UpdatedAt.After(fp.UpdatedAt) {
			fp.UpdatedAt = c.UpdatedAt
		}
	}
	return fp, nil
}

// DeleteAll borra todas las categorías y anula la referencia en los productos.
func (r *CategoryRepo) DeleteAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.categories))
	r.s.categories = make(map[string]*entity.Category)
	for _, p := range r.s.products {
		p.CategoryID = ""
		p.CategoryPath = ""
	}
	return n, nil
}
