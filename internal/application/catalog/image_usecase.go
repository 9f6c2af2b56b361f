package catalog

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// ImageResult contadores de la descarga de imágenes de categoría.
type ImageResult struct {
	Updated int `json:"categories_updated"`
	Skipped int `json:"categories_skipped"`
	Failed  int `json:"categories_failed"`
}

// ImageUseCase descarga la imagen de cada categoría a almacenamiento propio.
type ImageUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	fetcher      ImageFetcher
	store        ImageStore
	log          zerolog.Logger
	now          func() time.Time
}

// NewImageUseCase construye el caso de uso.
func NewImageUseCase(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	fetcher ImageFetcher,
	store ImageStore,
	log zerolog.Logger,
) *ImageUseCase {
	return &ImageUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		fetcher:      fetcher,
		store:        store,
		log:          log,
		now:          time.Now,
	}
}

// DownloadCategoryImages recorre todas las categorías. Sin force, las que ya tienen
// imagen local se omiten. Si la categoría no tiene ImageURL se toma (y persiste) la del
// primer producto con imagen. Un fallo en una categoría se cuenta y se sigue.
func (uc *ImageUseCase) DownloadCategoryImages(ctx context.Context, force bool) (*ImageResult, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}

	res := &ImageResult{}
	for _, c := range categories {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if c.Image != "" && !force {
			res.Skipped++
			continue
		}
		if err := uc.downloadOne(ctx, c); err != nil {
			res.Failed++
			uc.log.Warn().Err(err).Str("category", c.FullPath).Msg("imagen de categoría no descargada")
			continue
		}
		res.Updated++
		uc.log.Info().Str("category", c.FullPath).Str("image", c.Image).Msg("imagen de categoría descargada")
	}
	return res, nil
}

func (uc *ImageUseCase) downloadOne(ctx context.Context, c *entity.Category) error {
	if c.ImageURL == "" {
		p, err := uc.productRepo.FirstWithImageInCategory(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("buscar producto con imagen: %w", err)
		}
		if p == nil {
			return fmt.Errorf("sin URL de imagen")
		}
		c.ImageURL = p.ImageURL
		c.UpdatedAt = uc.now()
		if err := uc.categoryRepo.Update(ctx, c); err != nil {
			return fmt.Errorf("guardar URL de imagen: %w", err)
		}
	}

	data, contentType, err := uc.fetcher.Fetch(ctx, c.ImageURL)
	if err != nil {
		return fmt.Errorf("descargar %s: %w", c.ImageURL, err)
	}

	ref, err := uc.store.Put(ctx, imageKey(c), data, contentType)
	if err != nil {
		return fmt.Errorf("guardar imagen: %w", err)
	}
	c.Image = ref
	c.UpdatedAt = uc.now()
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("guardar imagen local: %w", err)
	}
	return nil
}

// imageKey categories/<slug|category>-<id><ext>; la extensión sale de la URL (.jpg por defecto).
func imageKey(c *entity.Category) string {
	ext := ""
	if u, err := url.Parse(c.ImageURL); err == nil {
		ext = path.Ext(u.Path)
	}
	if ext == "" {
		ext = ".jpg"
	}
	name := c.Slug
	if name == "" {
		name = "category"
	}
	return fmt.Sprintf("categories/%s-%s%s", name, c.ID, ext)
}
