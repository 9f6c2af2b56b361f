package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-store/internal/domain/catalog"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID               string           `json:"id"`
	ProductCode      string           `json:"product_code"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Active           bool             `json:"active"`
	Price            decimal.Decimal  `json:"price"`
	Currency         string           `json:"currency"`
	VAT              string           `json:"vat"`
	Unit             string           `json:"unit"`
	Barcode          string           `json:"barcode"`
	Weight           *decimal.Decimal `json:"weight"`
	Producer         string           `json:"producer"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Stock            int              `json:"stock"`
	Availability     string           `json:"availability"`
	Delivery         string           `json:"delivery"`
	SEOURL           string           `json:"seo_url"`
	CategoryPath     string           `json:"category_path"`
	ImageURL         string           `json:"image_url"`
	Images           []string         `json:"images"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NewProductResponse mapea la entidad; Slug es el que usa la URL de detalle.
func NewProductResponse(p *entity.Product) ProductResponse {
	var weight *decimal.Decimal
	if p.Weight.Valid {
		w := p.Weight.Decimal
		weight = &w
	}
	images := p.Images()
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:               p.ID,
		ProductCode:      p.ProductCode,
		Name:             p.Name,
		Slug:             catalog.Slugify(p.Name),
		Active:           p.Active,
		Price:            p.Price,
		Currency:         p.Currency,
		VAT:              p.VAT,
		Unit:             p.Unit,
		Barcode:          p.Barcode,
		Weight:           weight,
		Producer:         p.Producer,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Stock:            p.Stock,
		Availability:     p.Availability,
		Delivery:         p.Delivery,
		SEOURL:           p.SEOURL,
		CategoryPath:     p.CategoryPath,
		ImageURL:         p.ImageURL,
		Images:           images,
		UpdatedAt:        p.UpdatedAt,
	}
}

// TopLevelCategoryResponse tarjeta de categoría de primer nivel en la portada.
type TopLevelCategoryResponse struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Count    int    `json:"count"`
	ImageURL string `json:"image_url"`
}

// MenuItemResponse entrada del menú de navegación.
type MenuItemResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryPageResponse productos de una categoría de primer nivel.
type CategoryPageResponse struct {
	Category string            `json:"category"`
	Slug     string            `json:"slug"`
	Products []ProductResponse `json:"products"`
}

// ProductPageResponse detalle de producto dentro de su categoría.
type ProductPageResponse struct {
	Category     string          `json:"category"`
	CategorySlug string          `json:"category_slug"`
	Product      ProductResponse `json:"product"`
}
