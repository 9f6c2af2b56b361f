// jobs ejecuta los trabajos de fondo del catálogo: importación y descarga de imágenes
// de categoría. Pensado para el arranque del contenedor.
//
// Uso: go run ./cmd/jobs [--wait-for-db 5] [--load-catalog] [--download-images] [--all]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/bootstrap"
	"github.com/jhoicas/catalog-store/pkg/config"
	"github.com/jhoicas/catalog-store/pkg/logger"
)

func main() {
	fs := pflag.NewFlagSet("jobs", pflag.ExitOnError)
	loadCatalog := fs.Bool("load-catalog", false, "importar el catálogo")
	downloadImages := fs.Bool("download-images", false, "descargar imágenes de categoría")
	all := fs.Bool("all", false, "ejecutar todos los trabajos")
	waitForDB := fs.Int("wait-for-db", 0, "segundos de espera antes de empezar")
	force := fs.Bool("force", false, "volver a descargar imágenes ya guardadas")
	fs.String("file", "", "ruta del CSV de catálogo (por defecto CATALOG_FILE)")
	clearFirst := fs.Bool("clear", false, "borrar el catálogo antes de importar")
	encoding := fs.String("encoding", catalog.EncodingUTF8, "codificación del archivo de catálogo")
	_ = fs.Parse(os.Args[1:])

	v := viper.New()
	_ = v.BindPFlag("CATALOG_FILE", fs.Lookup("file"))
	cfg, err := config.LoadWith(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *all {
		*loadCatalog, *downloadImages = true, true
	}
	if !*loadCatalog && !*downloadImages {
		log.Warn().Msg("no se indicó ningún trabajo (--load-catalog, --download-images o --all)")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *waitForDB > 0 {
		log.Info().Int("seconds", *waitForDB).Msg("esperando a la base de datos")
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(*waitForDB) * time.Second):
		}
	}

	cat, err := bootstrap.OpenCatalog(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("abrir catálogo")
		os.Exit(1)
	}
	defer cat.Close()

	failed := false
	if *loadCatalog {
		uc := catalog.NewImportUseCase(cat.Categories, cat.Products, cat.TxRunner, log.Component("catalog_import"))
		res, err := uc.ImportFile(ctx, cfg.Catalog.File, catalog.ImportOptions{Clear: *clearFirst, Encoding: *encoding})
		if err != nil {
			log.Error().Err(err).Str("file", cfg.Catalog.File).Msg("importación de catálogo fallida")
			failed = true
		} else {
			log.Info().Interface("result", res).Msg("importación de catálogo completada")
		}
	}

	if *downloadImages {
		uc, err := bootstrap.NewImageUseCase(ctx, cfg, cat, log.Component("category_images"))
		switch {
		case err != nil:
			log.Error().Err(err).Msg("almacenamiento de imágenes")
			failed = true
		case uc == nil:
			log.Warn().Msg("MINIO_ENDPOINT vacío: se omite la descarga de imágenes")
		default:
			res, err := uc.DownloadCategoryImages(ctx, *force)
			if err != nil {
				log.Error().Err(err).Msg("descarga de imágenes fallida")
				failed = true
			} else {
				log.Info().Interface("result", res).Msg("descarga de imágenes completada")
			}
		}
	}

	if failed {
		cat.Close()
		os.Exit(1)
	}
	log.Info().Msg("trabajos completados")
}
