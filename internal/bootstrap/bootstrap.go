// Package bootstrap arma los adaptadores compartidos por los binarios de cmd/:
// almacén del catálogo (PostgreSQL o memoria), sesiones y almacenamiento de imágenes.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
	"github.com/jhoicas/catalog-store/internal/infrastructure/httpfetch"
	"github.com/jhoicas/catalog-store/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-store/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-store/internal/infrastructure/redisstore"
	"github.com/jhoicas/catalog-store/internal/infrastructure/storage"
	"github.com/jhoicas/catalog-store/pkg/config"
)

// Catalog repositorios del catálogo y su ejecutor de transacciones.
type Catalog struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	TxRunner   catalog.TxRunner
	close      func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (c *Catalog) Close() {
	if c.close != nil {
		c.close()
	}
}

// OpenCatalog abre el almacén según STORAGE_DRIVER. Con postgres espera a que la DB
// responda y aplica las migraciones.
func OpenCatalog(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Catalog, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("catálogo en memoria: los datos se pierden al terminar el proceso")
		store := memory.NewStore()
		return &Catalog{Categories: store.Categories(), Products: store.Products(), TxRunner: store}, nil
	}

	pool, err := postgres.WaitForPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return &Catalog{
		Categories: postgres.NewCategoryRepository(pool),
		Products:   postgres.NewProductRepository(pool),
		TxRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

// OpenSessions usa Redis si REDIS_HOST está definido; si no, sesiones en memoria.
// La función devuelta cierra el cliente.
func OpenSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.SessionStore, func(), error) {
	if cfg.Redis.Host == "" {
		log.Warn().Msg("REDIS_HOST vacío: sesiones en memoria")
		return memory.NewSessionStore(), func() {}, nil
	}
	client, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return redisstore.NewSessionStore(client, cfg.Session.TTL), func() { _ = client.Close() }, nil
}

// NewImageUseCase construye la descarga de imágenes sobre MinIO. Devuelve nil si
// MINIO_ENDPOINT no está configurado.
func NewImageUseCase(ctx context.Context, cfg *config.Config, cat *Catalog, log zerolog.Logger) (*catalog.ImageUseCase, error) {
	if !cfg.MinIO.Enabled() {
		return nil, nil
	}
	store, err := storage.NewMinioImageStore(ctx, cfg.MinIO)
	if err != nil {
		return nil, err
	}
	return catalog.NewImageUseCase(
		cat.Categories, cat.Products,
		httpfetch.NewFiberFetcher(httpfetch.DefaultTimeout),
		store,
		log,
	), nil
}
