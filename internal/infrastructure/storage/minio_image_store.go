// Package storage guarda en MinIO (S3) las imágenes descargadas de las categorías.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/pkg/config"
)

var _ catalog.ImageStore = (*MinioImageStore)(nil)

// MinioImageStore implementa catalog.ImageStore sobre un bucket de MinIO.
type MinioImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioImageStore conecta con MinIO y crea el bucket si no existe.
func NewMinioImageStore(ctx context.Context, cfg config.MinIOConfig) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("cliente MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("comprobar bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("crear bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: PublicBaseURL(cfg),
	}, nil
}

// PublicBaseURL prefijo de las URLs públicas de los objetos.
func PublicBaseURL(cfg config.MinIOConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

// Put sube la imagen (sobrescribe si ya existe) y devuelve su URL pública.
func (s *MinioImageStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("subir %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
