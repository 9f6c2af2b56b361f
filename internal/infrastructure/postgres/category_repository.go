package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, full_path, parent_path, slug, image_url, image, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva. full_path repetido => domain.ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.FullPath, c.ParentPath, c.Slug, c.ImageURL, c.Image, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert category", err)
	}
	return nil
}

// Update actualiza los campos mutables (la ruta identifica a la categoría y no cambia).
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, parent_path = $3, slug = $4, image_url = $5, image = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.ParentPath, c.Slug, c.ImageURL, c.Image, c.UpdatedAt)
	if err != nil {
		return wrapWriteErr("update category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByFullPath obtiene una categoría por ruta exacta.
func (r *CategoryRepo) GetByFullPath(ctx context.Context, fullPath string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE full_path = $1`, fullPath)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// SlugTakenByOtherPath indica si otra ruta ya usa el slug.
func (r *CategoryRepo) SlugTakenByOtherPath(ctx context.Context, slug, fullPath string) (bool, error) {
	var taken bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND full_path <> $2)`,
		slug, fullPath,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return taken, nil
}

// List todas las categorías ordenadas por full_path.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY full_path`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Fingerprint número de categorías y máximo updated_at.
func (r *CategoryRepo) Fingerprint(ctx context.Context) (entity.CategoryFingerprint, error) {
	var fp entity.CategoryFingerprint
	err := r.q.QueryRow(ctx,
		`SELECT count(*), coalesce(max(updated_at), to_timestamp(0)) FROM categories`,
	).Scan(&fp.Count, &fp.UpdatedAt)
	if err != nil {
		return fp, fmt.Errorf("category fingerprint: %w", err)
	}
	return fp, nil
}

// DeleteAll borra todas las categorías (los productos quedan con category_id NULL).
func (r *CategoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories`)
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.FullPath, &c.ParentPath, &c.Slug, &c.ImageURL, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
