package catalog

import (
	"context"

	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Se usa para el vaciado (--clear): productos y categorías se borran juntos o no se borra nada.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ImageFetcher descarga una imagen remota.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// ImageStore guarda una imagen descargada y devuelve la referencia a persistir en Category.Image.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
