package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSelect columnas de producto más la ruta de su categoría (LEFT JOIN).
const productSelect = `
	SELECT p.id, p.product_code, p.active, p.name, p.price, p.currency, p.vat, p.unit,
	       p.category_id, c.full_path, p.barcode, p.weight, p.producer, p.description,
	       p.short_description, p.stock, p.availability, p.delivery, p.seo_url,
	       p.image_url, p.image_urls, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByCode obtiene un producto por product_code.
func (r *ProductRepo) GetByCode(ctx context.Context, productCode string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.product_code = $1`, productCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Upsert INSERT … ON CONFLICT (product_code): reemplaza todos los campos mutables y
// conserva id y created_at. xmax = 0 solo en filas recién insertadas.
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) (bool, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	query := `
		INSERT INTO products (id, product_code, active, name, price, currency, vat, unit, category_id,
			barcode, weight, producer, description, short_description, stock, availability, delivery,
			seo_url, image_url, image_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (product_code) DO UPDATE SET
			active = EXCLUDED.active,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			vat = EXCLUDED.vat,
			unit = EXCLUDED.unit,
			category_id = EXCLUDED.category_id,
			barcode = EXCLUDED.barcode,
			weight = EXCLUDED.weight,
			producer = EXCLUDED.producer,
			description = EXCLUDED.description,
			short_description = EXCLUDED.short_description,
			stock = EXCLUDED.stock,
			availability = EXCLUDED.availability,
			delivery = EXCLUDED.delivery,
			seo_url = EXCLUDED.seo_url,
			image_url = EXCLUDED.image_url,
			image_urls = EXCLUDED.image_urls,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0)`
	var created bool
	err := r.q.QueryRow(ctx, query,
		p.ID, p.ProductCode, p.Active, p.Name, p.Price, p.Currency, p.VAT, p.Unit, nullIfEmpty(p.CategoryID),
		p.Barcode, p.Weight, p.Producer, p.Description, p.ShortDescription, p.Stock, p.Availability, p.Delivery,
		p.SEOURL, p.ImageURL, images, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt, &created)
	if err != nil {
		return false, wrapWriteErr("upsert product", err)
	}
	return created, nil
}

// ListCategorized productos con categoría, ordenados por nombre.
func (r *ProductRepo) ListCategorized(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE c.id IS NOT NULL ORDER BY p.name, p.product_code`)
}

// ListByTopLevel productos cuya categoría es el primer nivel o cuelga de él.
// Las rutas se guardan canónicas ("A > B"), así que basta comparar el prefijo "top > ".
func (r *ProductRepo) ListByTopLevel(ctx context.Context, topLevel string) ([]*entity.Product, error) {
	return r.list(ctx,
		productSelect+` WHERE c.full_path = $1 OR c.full_path LIKE $2 ORDER BY p.name, p.product_code`,
		topLevel, escapeLike(topLevel)+" > %",
	)
}

// FirstWithImageInCategory primer producto (por nombre) de la categoría con imagen.
func (r *ProductRepo) FirstWithImageInCategory(ctx context.Context, categoryID string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		productSelect+` WHERE p.category_id = $1 AND p.image_url <> '' ORDER BY p.name, p.product_code LIMIT 1`,
		categoryID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first product with image: %w", err)
	}
	return p, nil
}

// DeleteAll borra todos los productos.
func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p            entity.Product
		categoryID   *string
		categoryPath *string
	)
	err := row.Scan(
		&p.ID, &p.ProductCode, &p.Active, &p.Name, &p.Price, &p.Currency, &p.VAT, &p.Unit,
		&categoryID, &categoryPath, &p.Barcode, &p.Weight, &p.Producer, &p.Description,
		&p.ShortDescription, &p.Stock, &p.Availability, &p.Delivery, &p.SEOURL,
		&p.ImageURL, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil && categoryPath != nil {
		p.CategoryID, p.CategoryPath = *categoryID, *categoryPath
	}
	return &p, nil
}
