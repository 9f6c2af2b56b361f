package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/domain"
	domaincatalog "github.com/jhoicas/catalog-store/internal/domain/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// errRowPanic fila que provocó un pánico durante su procesamiento.
var errRowPanic = errors.New("pánico procesando fila")

// ImportOptions opciones de una importación.
type ImportOptions struct {
	Clear    bool   // borra productos y categorías antes de cargar
	Encoding string // codificación del archivo (ImportFile); vacío = UTF-8
}

// ImportResult contadores de una importación.
type ImportResult struct {
	CategoriesCreated int   `json:"categories_created"`
	CategoriesSeen    int   `json:"categories_seen"`
	ProductsCreated   int   `json:"products_created"`
	ProductsUpdated   int   `json:"products_updated"`
	RowsSkipped       int   `json:"rows_skipped"`
	RowsFailed        int   `json:"rows_failed"`
	RowsMalformed     int   `json:"rows_malformed"`
	ProductsDeleted   int64 `json:"products_deleted"`
	CategoriesDeleted int64 `json:"categories_deleted"`
}

// ImportUseCase carga el catálogo en dos pasadas: primero materializa todas las
// categorías y después hace upsert de los productos que las referencian. Así la
// categoría existe antes que cualquier producto, sin importar el orden de las filas.
type ImportUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	txRunner     TxRunner
	resolver     *CategoryResolver
	log          zerolog.Logger
	now          func() time.Time

	running sync.Mutex
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
	log zerolog.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		txRunner:     txRunner,
		resolver:     NewCategoryResolver(categoryRepo),
		log:          log,
		now:          time.Now,
	}
}

// ImportFile abre y lee el archivo antes de tocar el almacenamiento: si no existe o no
// se puede leer, no se modifica nada.
func (uc *ImportUseCase) ImportFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: archivo no encontrado: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()

	r, err := DecodeReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}
	file, err := ReadCatalog(r)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo %s: %w", path, err)
	}
	uc.log.Info().Str("file", path).Int("rows", len(file.Rows)).Msg("cargando catálogo")
	return uc.Import(ctx, file, opts)
}

// Import ejecuta la importación sobre un catálogo ya leído. Solo una importación por
// proceso a la vez (ErrImportInProgress). Los errores de una fila se registran y la
// fila se omite; un fallo de conexión aborta y devuelve el resultado parcial.
func (uc *ImportUseCase) Import(ctx context.Context, file *CatalogFile, opts ImportOptions) (*ImportResult, error) {
	if !uc.running.TryLock() {
		return nil, domain.ErrImportInProgress
	}
	defer uc.running.Unlock()

	res := &ImportResult{RowsMalformed: file.Malformed}

	if opts.Clear {
		if err := uc.clear(ctx, res); err != nil {
			return res, err
		}
	}

	categories, err := uc.materializeCategories(ctx, file.Rows, res)
	if err != nil {
		return res, err
	}
	uc.log.Info().Int("categories", len(categories)).Int("created", res.CategoriesCreated).Msg("categorías resueltas")

	for i, row := range file.Rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := uc.importRow(ctx, row, categories, res)
		if err == nil {
			continue
		}
		if !isRowLevel(err) {
			return res, fmt.Errorf("fila %d: %w", i+2, err)
		}
		res.RowsFailed++
		uc.log.Warn().Err(err).Int("line", i+2).Str("product_code", row.Get(ColProductCode)).Msg("error procesando fila")
	}

	uc.log.Info().
		Int("categories_created", res.CategoriesCreated).
		Int("products_created", res.ProductsCreated).
		Int("products_updated", res.ProductsUpdated).
		Int("rows_skipped", res.RowsSkipped).
		Int("rows_failed", res.RowsFailed).
		Msg("catálogo cargado")
	return res, nil
}

// clear borra productos y luego categorías (los productos referencian categorías).
func (uc *ImportUseCase) clear(ctx context.Context, res *ImportResult) error {
	uc.log.Info().Msg("vaciando catálogo existente")
	return uc.txRunner.RunCatalog(ctx, func(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
		products, err := productRepo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("borrar productos: %w", err)
		}
		cats, err := categoryRepo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("borrar categorías: %w", err)
		}
		res.ProductsDeleted, res.CategoriesDeleted = products, cats
		return nil
	})
}

// materializeCategories pasada 1: resuelve cada ruta canónica la primera vez que aparece,
// con la primera imagen de esa fila como candidata. Las variantes de escritura de una
// misma ruta comparten la misma categoría.
func (uc *ImportUseCase) materializeCategories(ctx context.Context, rows []RawRow, res *ImportResult) (map[string]*entity.Category, error) {
	categories := make(map[string]*entity.Category)
	byPath := make(map[string]*entity.Category)
	for _, row := range rows {
		raw := row.Get(ColCategory)
		if raw == "" {
			continue
		}
		if _, seen := categories[raw]; seen {
			continue
		}
		fullPath := domaincatalog.Canonical(raw)
		if fullPath == "" {
			continue
		}
		if category, ok := byPath[fullPath]; ok {
			categories[raw] = category
			continue
		}
		category, created, err := uc.resolver.Resolve(ctx, fullPath, row.FirstImage())
		if err != nil {
			return categories, err
		}
		if created {
			res.CategoriesCreated++
		}
		byPath[fullPath] = category
		categories[raw] = category
	}
	res.CategoriesSeen = len(byPath)
	return categories, nil
}

// importRow pasada 2 para una fila. Un pánico se convierte en error de fila.
func (uc *ImportUseCase) importRow(ctx context.Context, row RawRow, categories map[string]*entity.Category, res *ImportResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errRowPanic, r)
		}
	}()

	n, ok := NormalizeRow(row)
	if !ok {
		res.RowsSkipped++
		return nil
	}

	var category *entity.Category
	if n.CategoryPath != "" {
		category = categories[n.CategoryPath]
	}

	product := uc.toProduct(n, category)
	created, err := uc.productRepo.Upsert(ctx, product)
	if err != nil {
		return fmt.Errorf("upsert producto %q: %w", n.ProductCode, err)
	}

	if category != nil && n.ImageURL != "" && category.ImageURL == "" {
		category.ImageURL = n.ImageURL
		category.UpdatedAt = uc.now()
		if err := uc.categoryRepo.Update(ctx, category); err != nil {
			return fmt.Errorf("imagen de categoría %q: %w", category.FullPath, err)
		}
	}

	if created {
		res.ProductsCreated++
	} else {
		res.ProductsUpdated++
	}
	return nil
}

// toProduct reemplazo completo: lo que no venga en la fila queda vacío/por defecto.
func (uc *ImportUseCase) toProduct(n NormalizedProduct, category *entity.Category) *entity.Product {
	now := uc.now()
	p := &entity.Product{
		ProductCode:      n.ProductCode,
		Active:           n.Active,
		Name:             n.Name,
		Price:            n.Price,
		Currency:         n.Currency,
		VAT:              n.VAT,
		Unit:             n.Unit,
		Barcode:          n.Barcode,
		Weight:           n.Weight,
		Producer:         n.Producer,
		Description:      n.Description,
		ShortDescription: n.ShortDescription,
		Stock:            n.Stock,
		Availability:     n.Availability,
		Delivery:         n.Delivery,
		SEOURL:           n.SEOURL,
		ImageURL:         n.ImageURL,
		ImageURLs:        n.ImageURLs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if category != nil {
		p.CategoryID = category.ID
		p.CategoryPath = category.FullPath
	}
	return p
}

// isRowLevel errores atribuibles a una fila concreta (no a la conexión).
func isRowLevel(err error) bool {
	return errors.Is(err, domain.ErrRowRejected) ||
		errors.Is(err, domain.ErrDuplicate) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, errRowPanic)
}
