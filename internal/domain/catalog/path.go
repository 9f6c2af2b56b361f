// Package catalog contiene las reglas puras del catálogo: rutas jerárquicas de
// categoría ("A > B > C") y slugs. Lo usan tanto la importación como la tienda, de
// modo que ambos lados segmentan las rutas exactamente igual.
package catalog

import "strings"

const (
	// Delimiter separa segmentos en la ruta cruda.
	Delimiter = ">"
	// Separator une segmentos en la forma canónica.
	Separator = " > "
)

// Path ruta de categoría ya segmentada.
type Path struct {
	Segments   []string
	Leaf       string
	ParentPath string
}

// ParsePath divide raw por ">", recorta cada segmento y descarta fragmentos vacíos.
// Leaf es el último segmento y ParentPath el resto unido con " > ". Nunca falla:
// una cadena vacía produce Leaf y ParentPath vacíos.
func ParsePath(raw string) Path {
	parts := strings.Split(raw, Delimiter)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	if len(segments) == 0 {
		return Path{Segments: segments}
	}
	return Path{
		Segments:   segments,
		Leaf:       segments[len(segments)-1],
		ParentPath: JoinPath(segments[:len(segments)-1]),
	}
}

// TopLevel primer segmento de la ruta (categoría de primer nivel de la tienda).
func TopLevel(raw string) string {
	p := ParsePath(raw)
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0]
}

// JoinPath une segmentos en la forma canónica "A > B".
func JoinPath(segments []string) string {
	return strings.Join(segments, Separator)
}

// Canonical reescribe raw con segmentos recortados y separador canónico.
func Canonical(raw string) string {
	return JoinPath(ParsePath(raw).Segments)
}
