package repository

import (
	"context"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByFullPath(ctx context.Context, fullPath string) (*entity.Category, error)
	// SlugTakenByOtherPath indica si slug ya lo usa una categoría con FullPath distinto.
	SlugTakenByOtherPath(ctx context.Context, slug, fullPath string) (bool, error)
	// List devuelve todas las categorías ordenadas por FullPath.
	List(ctx context.Context) ([]*entity.Category, error)
	Fingerprint(ctx context.Context) (entity.CategoryFingerprint, error)
	DeleteAll(ctx context.Context) (int64, error)
}
