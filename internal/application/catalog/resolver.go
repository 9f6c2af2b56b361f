package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domaincatalog "github.com/jhoicas/catalog-store/internal/domain/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// fallbackSlug se usa cuando ni la ruta ni la hoja producen caracteres válidos.
const fallbackSlug = "categoria"

// maxSlugProbes cota del sondeo de sufijos; superarla indica datos corruptos.
const maxSlugProbes = 10000

// CategoryResolver busca o crea categorías por ruta completa garantizando un slug único.
type CategoryResolver struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

// NewCategoryResolver construye el resolver.
func NewCategoryResolver(repo repository.CategoryRepository) *CategoryResolver {
	return &CategoryResolver{repo: repo, now: time.Now}
}

// Resolve devuelve la categoría con ruta exacta fullPath, creándola si no existe.
// Sobre una existente solo completa Slug (si estaba vacío) e ImageURL (si estaba vacía
// y llega una nueva). Idempotente para los mismos datos.
func (r *CategoryResolver) Resolve(ctx context.Context, fullPath, imageURL string) (*entity.Category, bool, error) {
	path := domaincatalog.ParsePath(fullPath)

	existing, err := r.repo.GetByFullPath(ctx, fullPath)
	if err != nil {
		return nil, false, fmt.Errorf("resolver categoría %q: %w", fullPath, err)
	}

	if existing != nil {
		changed := false
		if existing.Slug == "" {
			slug, err := r.uniqueSlug(ctx, fullPath, path.Leaf)
			if err != nil {
				return nil, false, err
			}
			existing.Slug = slug
			changed = true
		}
		if imageURL != "" && existing.ImageURL == "" {
			existing.ImageURL = imageURL
			changed = true
		}
		if changed {
			existing.UpdatedAt = r.now()
			if err := r.repo.Update(ctx, existing); err != nil {
				return nil, false, fmt.Errorf("actualizar categoría %q: %w", fullPath, err)
			}
		}
		return existing, false, nil
	}

	slug, err := r.uniqueSlug(ctx, fullPath, path.Leaf)
	if err != nil {
		return nil, false, err
	}
	now := r.now()
	category := &entity.Category{
		ID:         uuid.New().String(),
		Name:       path.Leaf,
		FullPath:   fullPath,
		ParentPath: path.ParentPath,
		Slug:       slug,
		ImageURL:   imageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.repo.Create(ctx, category); err != nil {
		return nil, false, fmt.Errorf("crear categoría %q: %w", fullPath, err)
	}
	return category, true, nil
}

// uniqueSlug slug de la ruta (o de la hoja) con sufijo -1, -2… mientras lo use otra ruta.
func (r *CategoryResolver) uniqueSlug(ctx context.Context, fullPath, leaf string) (string, error) {
	base := domaincatalog.Slugify(fullPath)
	if base == "" {
		base = domaincatalog.Slugify(leaf)
	}
	if base == "" {
		base = fallbackSlug
	}

	slug := base
	for n := 1; n <= maxSlugProbes; n++ {
		taken, err := r.repo.SlugTakenByOtherPath(ctx, slug, fullPath)
		if err != nil {
			return "", fmt.Errorf("sondear slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = domaincatalog.SuffixSlug(base, n)
	}
	return "", fmt.Errorf("slug %q: sin sufijo libre tras %d intentos", base, maxSlugProbes)
}
