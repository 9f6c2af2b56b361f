package repository

import (
	"context"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	GetByCode(ctx context.Context, productCode string) (*entity.Product, error)
	// Upsert crea o reemplaza (todos los campos mutables) el producto con ese ProductCode.
	// Conserva el ID existente y lo escribe de vuelta en product.ID.
	Upsert(ctx context.Context, product *entity.Product) (created bool, err error)
	// ListCategorized productos con categoría (CategoryPath relleno), ordenados por nombre.
	ListCategorized(ctx context.Context) ([]*entity.Product, error)
	// ListByTopLevel productos cuya categoría cuelga del primer nivel indicado, ordenados por nombre.
	ListByTopLevel(ctx context.Context, topLevel string) ([]*entity.Product, error)
	// FirstWithImageInCategory primer producto (por nombre) de la categoría con ImageURL.
	FirstWithImageInCategory(ctx context.Context, categoryID string) (*entity.Product, error)
	DeleteAll(ctx context.Context) (int64, error)
}
