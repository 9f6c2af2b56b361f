package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/infrastructure/memory"
)

func TestResolve_CreaCategoriaConPadreYHoja(t *testing.T) {
	store := memory.NewStore()
	r := catalog.NewCategoryResolver(store.Categories())

	c, created, err := r.Resolve(context.Background(), "Tools > Hammers", "http://img/h.jpg")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Hammers", c.Name)
	assert.Equal(t, "Tools", c.ParentPath)
	assert.Equal(t, "tools-hammers", c.Slug)
	assert.Equal(t, "http://img/h.jpg", c.ImageURL)
}

func TestResolve_Idempotente(t *testing.T) {
	store := memory.NewStore()
	r := catalog.NewCategoryResolver(store.Categories())
	ctx := context.Background()

	first, _, err := r.Resolve(ctx, "Tools > Hammers", "")
	require.NoError(t, err)
	second, created, err := r.Resolve(ctx, "Tools > Hammers", "")
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Slug, second.Slug)

	list, _ := store.Categories().List(ctx)
	assert.Len(t, list, 1)
}

func TestResolve_NoPisaImagenExistente(t *testing.T) {
	store := memory.NewStore()
	r := catalog.NewCategoryResolver(store.Categories())
	ctx := context.Background()

	_, _, err := r.Resolve(ctx, "A", "")
	require.NoError(t, err)
	c, _, err := r.Resolve(ctx, "A", "http://img/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://img/1.jpg", c.ImageURL, "se completa la vacía")

	c, _, err = r.Resolve(ctx, "A", "http://img/2.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://img/1.jpg", c.ImageURL, "no se sobrescribe")
}

func TestResolve_SlugColisionSufijoDeterminista(t *testing.T) {
	store := memory.NewStore()
	r := catalog.NewCategoryResolver(store.Categories())
	ctx := context.Background()

	a, _, err := r.Resolve(ctx, "Herramientas > Martillos", "")
	require.NoError(t, err)
	b, _, err := r.Resolve(ctx, "Herramientas > Martíllos", "")
	require.NoError(t, err)
	c, _, err := r.Resolve(ctx, "Herramientas - Martillós", "")
	require.NoError(t, err)

	assert.Equal(t, "herramientas-martillos", a.Slug)
	assert.Equal(t, "herramientas-martillos-1", b.Slug)
	assert.Equal(t, "herramientas-martillos-2", c.Slug)
}

func TestResolve_SlugRespaldo(t *testing.T) {
	store := memory.NewStore()
	r := catalog.NewCategoryResolver(store.Categories())
	ctx := context.Background()

	a, _, err := r.Resolve(ctx, "日本", "")
	require.NoError(t, err)
	b, _, err := r.Resolve(ctx, "中国", "")
	require.NoError(t, err)

	assert.Equal(t, "categoria", a.Slug)
	assert.Equal(t, "categoria-1", b.Slug)
}

func TestResolve_CompletaSlugVacio(t *testing.T) {
	store := memory.NewStore()
	repo := store.Categories()
	ctx := context.Background()
	r := catalog.NewCategoryResolver(repo)

	c, _, err := r.Resolve(ctx, "Jardín", "")
	require.NoError(t, err)
	c.Slug = ""
	require.NoError(t, repo.Update(ctx, c))

	again, created, err := r.Resolve(ctx, "Jardín", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "jardin", again.Slug)

	stored, _ := repo.GetByFullPath(ctx, "Jardín")
	assert.Equal(t, "jardin", stored.Slug)
}
