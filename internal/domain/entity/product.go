package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. ProductCode es la clave de negocio
// usada por la importación (upsert); CategoryID es una referencia débil (se anula si
// la categoría se elimina).
type Product struct {
	ID               string
	ProductCode      string
	Active           bool
	Name             string
	Price            decimal.Decimal // 2 decimales
	Currency         string
	VAT              string
	Unit             string
	CategoryID       string // vacío = sin categoría
	CategoryPath     string // solo lectura (join con categories)
	Barcode          string
	Weight           decimal.NullDecimal
	Producer         string
	Description      string
	ShortDescription string
	Stock            int
	Availability     string
	Delivery         string
	SEOURL           string
	ImageURL         string   // primera imagen (compatibilidad)
	ImageURLs        []string // images 1..15 en orden
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Images devuelve todas las imágenes; si la lista está vacía cae en ImageURL.
func (p *Product) Images() []string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs
	}
	if p.ImageURL != "" {
		return []string{p.ImageURL}
	}
	return []string{}
}
