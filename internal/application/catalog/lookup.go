package catalog

import (
	domaincatalog "github.com/jhoicas/catalog-store/internal/domain/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// FindTopLevelBySlug resuelve un slug de URL al nombre de la categoría de primer nivel.
// Primero compara con el slug del primer nivel de cada categoría; si nada coincide,
// compara con el slug de la ruta completa o del nombre y devuelve el primer nivel de
// esa categoría. Recorrido lineal; para servir peticiones usar TopLevelIndex.
func FindTopLevelBySlug(slug string, categories []*entity.Category) (string, bool) {
	if slug == "" {
		return "", false
	}
	for _, c := range categories {
		top := domaincatalog.TopLevel(c.FullPath)
		if domaincatalog.Slugify(top) == slug {
			return top, true
		}
	}
	for _, c := range categories {
		if domaincatalog.Slugify(c.FullPath) == slug || domaincatalog.Slugify(c.Name) == slug {
			return domaincatalog.TopLevel(c.FullPath), true
		}
	}
	return "", false
}

// TopLevelIndex precalcula FindTopLevelBySlug: slug -> nombre de primer nivel.
// Inmutable una vez construido; se reemplaza entero cuando cambian las categorías.
type TopLevelIndex struct {
	topLevel map[string]string
	fallback map[string]string
	names    []string // primeros niveles en orden de full_path, sin repetir
}

// NewTopLevelIndex construye el índice respetando el orden recibido (gana el primero).
func NewTopLevelIndex(categories []*entity.Category) *TopLevelIndex {
	idx := &TopLevelIndex{
		topLevel: make(map[string]string),
		fallback: make(map[string]string),
	}
	for _, c := range categories {
		top := domaincatalog.TopLevel(c.FullPath)
		if top == "" {
			continue
		}
		if s := domaincatalog.Slugify(top); s != "" {
			if _, ok := idx.topLevel[s]; !ok {
				idx.topLevel[s] = top
				idx.names = append(idx.names, top)
			}
		}
		for _, s := range []string{domaincatalog.Slugify(c.FullPath), domaincatalog.Slugify(c.Name)} {
			if _, ok := idx.fallback[s]; s != "" && !ok {
				idx.fallback[s] = top
			}
		}
	}
	return idx
}

// Lookup igual que FindTopLevelBySlug (con fallback por ruta/nombre).
func (i *TopLevelIndex) Lookup(slug string) (string, bool) {
	if top, ok := i.LookupTopLevel(slug); ok {
		return top, true
	}
	top, ok := i.fallback[slug]
	return top, ok
}

// LookupTopLevel solo compara con el slug del primer nivel.
func (i *TopLevelIndex) LookupTopLevel(slug string) (string, bool) {
	top, ok := i.topLevel[slug]
	return top, ok
}

// TopLevels nombres de primer nivel en orden de ruta.
func (i *TopLevelIndex) TopLevels() []string {
	out := make([]string, len(i.names))
	copy(out, i.names)
	return out
}
