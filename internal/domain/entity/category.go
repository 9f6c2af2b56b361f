package entity

import "time"

// Category representa una categoría del catálogo identificada por su ruta completa
// ("A > B > C"). Name es el último segmento y ParentPath el resto.
type Category struct {
	ID         string
	Name       string
	FullPath   string // único; clave de identidad
	ParentPath string // vacío si es de primer nivel
	Slug       string // único entre rutas distintas
	ImageURL   string // imagen externa (del CSV)
	Image      string // imagen descargada al almacenamiento propio
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayImage devuelve la imagen local si existe, si no la URL original.
func (c *Category) DisplayImage() string {
	if c.Image != "" {
		return c.Image
	}
	return c.ImageURL
}

// CategoryFingerprint resume el estado de la tabla de categorías para invalidar índices en caché.
type CategoryFingerprint struct {
	Count     int
	UpdatedAt time.Time
}
