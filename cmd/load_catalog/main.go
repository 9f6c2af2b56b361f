// load_catalog importa el CSV de catálogo (separado por ;) en el almacén configurado.
//
// Uso: go run ./cmd/load_catalog [--file catalog-2025.csv] [--clear] [--encoding latin1]
// Las rutas relativas se resuelven contra el directorio actual. Si el archivo no existe
// termina con código 1 sin modificar nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/bootstrap"
	"github.com/jhoicas/catalog-store/internal/domain"
	"github.com/jhoicas/catalog-store/pkg/config"
	"github.com/jhoicas/catalog-store/pkg/logger"
)

func main() {
	fs := pflag.NewFlagSet("load_catalog", pflag.ExitOnError)
	fs.String("file", "", "ruta del CSV de catálogo (por defecto CATALOG_FILE)")
	clearFirst := fs.Bool("clear", false, "borrar productos y categorías antes de importar")
	encoding := fs.String("encoding", catalog.EncodingUTF8, "codificación del archivo: utf-8, latin1, windows-1252")
	_ = fs.Parse(os.Args[1:])

	v := viper.New()
	_ = v.BindPFlag("CATALOG_FILE", fs.Lookup("file"))
	cfg, err := config.LoadWith(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	path, err := filepath.Abs(cfg.Catalog.File)
	if err != nil {
		path = cfg.Catalog.File
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Archivo de catálogo no encontrado: %s\n", path)
		os.Exit(1)
	}

	log.Debug().Str("file", path).Str("encoding", *encoding).Bool("clear", *clearFirst).Msg("opciones de importación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := bootstrap.OpenCatalog(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("abrir catálogo")
		os.Exit(1)
	}
	defer cat.Close()

	uc := catalog.NewImportUseCase(cat.Categories, cat.Products, cat.TxRunner, log.Component("catalog_import"))
	res, err := uc.ImportFile(ctx, path, catalog.ImportOptions{Clear: *clearFirst, Encoding: *encoding})
	if res != nil {
		printSummary(res)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Archivo de catálogo no encontrado: %s\n", path)
		} else {
			log.Error().Err(err).Msg("importación abortada")
		}
		cat.Close()
		os.Exit(1)
	}
}

func printSummary(res *catalog.ImportResult) {
	if res.ProductsDeleted > 0 || res.CategoriesDeleted > 0 {
		fmt.Printf("Eliminados: %d productos, %d categorías\n", res.ProductsDeleted, res.CategoriesDeleted)
	}
	fmt.Printf("Categorías: %d vistas, %d creadas\n", res.CategoriesSeen, res.CategoriesCreated)
	fmt.Printf("Productos: %d creados, %d actualizados\n", res.ProductsCreated, res.ProductsUpdated)
	fmt.Printf("Filas: %d omitidas, %d con error, %d mal formadas\n", res.RowsSkipped, res.RowsFailed, res.RowsMalformed)
}
