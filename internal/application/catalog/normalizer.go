package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizedProduct fila de producto con sus campos ya tipados.
type NormalizedProduct struct {
	ProductCode      string
	CategoryPath     string // ruta tal como viene en la fila (clave del mapa de la pasada 1)
	Name             string
	Price            decimal.Decimal
	Currency         string
	VAT              string
	Unit             string
	Barcode          string
	Weight           decimal.NullDecimal
	Producer         string
	Description      string
	ShortDescription string
	Stock            int
	Availability     string
	Delivery         string
	SEOURL           string
	Active           bool
	ImageURL         string
	ImageURLs        []string
}

// NormalizeRow tipa una fila del catálogo. Devuelve ok=false (omitir) si product_code
// está vacío. Nunca falla: los numéricos inválidos caen en valores seguros
// (precio 0.00, peso ausente, stock 0).
func NormalizeRow(row RawRow) (NormalizedProduct, bool) {
	code := row.Get(ColProductCode)
	if code == "" {
		return NormalizedProduct{}, false
	}

	images := make([]string, 0, 1)
	for i := 1; i <= MaxImages; i++ {
		if v := row.Get(ImageColumn(i)); v != "" {
			images = append(images, v)
		}
	}
	first := ""
	if len(images) > 0 {
		first = images[0]
	}

	return NormalizedProduct{
		ProductCode:      code,
		CategoryPath:     row.Get(ColCategory),
		Name:             row.Get(ColName),
		Price:            parsePrice(row.Get(ColPrice)),
		Currency:         row.Get(ColCurrency),
		VAT:              row.Get(ColVAT),
		Unit:             row.Get(ColUnit),
		Barcode:          row.Get(ColBarcode),
		Weight:           parseWeight(row.Get(ColWeight)),
		Producer:         row.Get(ColProducer),
		Description:      row.Get(ColDescription),
		ShortDescription: row.Get(ColShortDescription),
		Stock:            parseStock(row.Get(ColStock)),
		Availability:     row.Get(ColAvailability),
		Delivery:         row.Get(ColDelivery),
		SEOURL:           row.Get(ColSEOURL),
		Active:           row.Get(ColActive) == "1",
		ImageURL:         first,
		ImageURLs:        images,
	}, true
}

// Límites de las columnas NUMERIC(10,2) y de la entrada textual.
const (
	maxDecimalInput = 32
	maxExponent     = 8
	minExponent     = -40
)

var maxStorable = decimal.New(1, 8)

// parseDecimal acepta coma decimal ("12,50"). Rechaza valores fuera de |x| < 1e8;
// los valores ínfimos se redondean a cero sin reescalar.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || len(s) > maxDecimalInput {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	exp := d.Exponent()
	if exp > maxExponent {
		return decimal.Zero, false
	}
	if exp < minExponent {
		return decimal.Zero, true
	}
	r := d.Round(2)
	if r.Abs().GreaterThanOrEqual(maxStorable) {
		return decimal.Zero, false
	}
	return r, true
}

func parsePrice(s string) decimal.Decimal {
	d, ok := parseDecimal(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

func parseWeight(s string) decimal.NullDecimal {
	d, ok := parseDecimal(s)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// parseStock limita el stock al rango de INTEGER.
func parseStock(s string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}
