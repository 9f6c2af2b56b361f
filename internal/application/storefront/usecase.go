// Package storefront expone la lectura del catálogo para la tienda: portada por
// categorías de primer nivel, listado por categoría y detalle de producto.
package storefront

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/domain"
	domaincatalog "github.com/jhoicas/catalog-store/internal/domain/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// UseCase casos de uso de lectura de la tienda.
type UseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	log          zerolog.Logger

	mu          sync.RWMutex
	index       *catalog.TopLevelIndex
	fingerprint entity.CategoryFingerprint
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{categoryRepo: categoryRepo, productRepo: productRepo, log: log}
}

// topLevelIndex devuelve el índice slug -> primer nivel, reconstruyéndolo cuando
// cambia la huella de la tabla de categorías (importación en otro proceso incluida).
func (uc *UseCase) topLevelIndex(ctx context.Context) (*catalog.TopLevelIndex, error) {
	fp, err := uc.categoryRepo.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("huella de categorías: %w", err)
	}

	uc.mu.RLock()
	idx := uc.index
	fresh := idx != nil && sameFingerprint(uc.fingerprint, fp)
	uc.mu.RUnlock()
	if fresh {
		return idx, nil
	}

	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	idx = catalog.NewTopLevelIndex(categories)

	uc.mu.Lock()
	uc.index, uc.fingerprint = idx, fp
	uc.mu.Unlock()
	uc.log.Debug().Int("categories", fp.Count).Msg("índice de primer nivel reconstruido")
	return idx, nil
}

func sameFingerprint(a, b entity.CategoryFingerprint) bool {
	return a.Count == b.Count && a.UpdatedAt.Equal(b.UpdatedAt)
}

// ListTopLevelCategories categorías de primer nivel con al menos un producto, en orden
// de ruta. La imagen es la del primer producto (por nombre) que tenga una.
func (uc *UseCase) ListTopLevelCategories(ctx context.Context) ([]dto.TopLevelCategoryResponse, error) {
	idx, err := uc.topLevelIndex(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListCategorized(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}

	type group struct {
		count int
		image string
	}
	groups := make(map[string]*group)
	for _, p := range products {
		top := domaincatalog.TopLevel(p.CategoryPath)
		g, ok := groups[top]
		if !ok {
			g = &group{}
			groups[top] = g
		}
		g.count++
		if g.image == "" {
			g.image = p.ImageURL
		}
	}

	out := make([]dto.TopLevelCategoryResponse, 0, len(groups))
	for _, top := range idx.TopLevels() {
		g, ok := groups[top]
		if !ok {
			continue
		}
		out = append(out, dto.TopLevelCategoryResponse{
			Name:     top,
			Slug:     domaincatalog.Slugify(top),
			Count:    g.count,
			ImageURL: g.image,
		})
	}
	return out, nil
}

// Menu nombre y slug de cada categoría de primer nivel con productos.
func (uc *UseCase) Menu(ctx context.Context) ([]dto.MenuItemResponse, error) {
	tops, err := uc.ListTopLevelCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(tops))
	for _, t := range tops {
		out = append(out, dto.MenuItemResponse{Name: t.Name, Slug: t.Slug})
	}
	return out, nil
}

// LookupTopLevelBySlug resuelve un slug (de primer nivel, de ruta o de nombre) al nombre
// del primer nivel. ErrNotFound si nada coincide.
func (uc *UseCase) LookupTopLevelBySlug(ctx context.Context, slug string) (string, error) {
	idx, err := uc.topLevelIndex(ctx)
	if err != nil {
		return "", err
	}
	top, ok := idx.Lookup(slug)
	if !ok {
		return "", domain.ErrNotFound
	}
	return top, nil
}

// ListProductsUnderTopLevel productos de todas las categorías bajo el primer nivel del slug.
func (uc *UseCase) ListProductsUnderTopLevel(ctx context.Context, slug string) (*dto.CategoryPageResponse, error) {
	top, err := uc.LookupTopLevelBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByTopLevel(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("productos de %q: %w", top, err)
	}
	resp := &dto.CategoryPageResponse{
		Category: top,
		Slug:     domaincatalog.Slugify(top),
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.NewProductResponse(p))
	}
	return resp, nil
}

// GetProduct detalle de producto: la categoría se resuelve solo por slug de primer nivel
// y el producto por el slug de su nombre (el primero por nombre si hay varios).
func (uc *UseCase) GetProduct(ctx context.Context, categorySlug, productSlug string) (*dto.ProductPageResponse, error) {
	p, top, err := uc.findProduct(ctx, categorySlug, productSlug)
	if err != nil {
		return nil, err
	}
	return &dto.ProductPageResponse{
		Category:     top,
		CategorySlug: domaincatalog.Slugify(top),
		Product:      dto.NewProductResponse(p),
	}, nil
}

// ProductCode código del producto de la página de detalle (para añadir al carrito).
func (uc *UseCase) ProductCode(ctx context.Context, categorySlug, productSlug string) (string, error) {
	p, _, err := uc.findProduct(ctx, categorySlug, productSlug)
	if err != nil {
		return "", err
	}
	return p.ProductCode, nil
}

func (uc *UseCase) findProduct(ctx context.Context, categorySlug, productSlug string) (*entity.Product, string, error) {
	idx, err := uc.topLevelIndex(ctx)
	if err != nil {
		return nil, "", err
	}
	top, ok := idx.LookupTopLevel(categorySlug)
	if !ok || productSlug == "" {
		return nil, "", domain.ErrNotFound
	}
	products, err := uc.productRepo.ListByTopLevel(ctx, top)
	if err != nil {
		return nil, "", fmt.Errorf("productos de %q: %w", top, err)
	}
	for _, p := range products {
		if domaincatalog.Slugify(p.Name) == productSlug {
			return p, top, nil
		}
	}
	return nil, "", domain.ErrNotFound
}
