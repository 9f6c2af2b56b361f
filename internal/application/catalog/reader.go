package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/catalog-store/internal/domain"
)

// Columnas del CSV de catálogo.
const (
	ColProductCode      = "product_code"
	ColCategory         = "category"
	ColPrice            = "price"
	ColName             = "name"
	ColVAT              = "vat"
	ColUnit             = "unit"
	ColBarcode          = "barcode"
	ColWeight           = "weight"
	ColProducer         = "producer"
	ColDescription      = "description"
	ColShortDescription = "short_description"
	ColStock            = "stock"
	ColAvailability     = "availability"
	ColDelivery         = "delivery"
	ColCurrency         = "currency"
	ColSEOURL           = "seo_url"
	ColActive           = "active"

	// MaxImages columnas "images 1" … "images 15".
	MaxImages = 15
)

// Delimiter separador de campos del archivo de catálogo.
const Delimiter = ';'

var requiredColumns = []string{ColProductCode, ColCategory, ColPrice}

// ImageColumn nombre de la columna de imagen n (1..MaxImages).
func ImageColumn(n int) string {
	return "images " + strconv.Itoa(n)
}

// RawRow registro crudo del CSV indexado por nombre de columna.
type RawRow map[string]string

// Get devuelve el valor recortado de la columna; ausente = "".
func (r RawRow) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// FirstImage primera columna "images N" no vacía, en orden.
func (r RawRow) FirstImage() string {
	for i := 1; i <= MaxImages; i++ {
		if v := r.Get(ImageColumn(i)); v != "" {
			return v
		}
	}
	return ""
}

// CatalogFile contenido ya leído del archivo. Se recorre dos veces durante la importación.
type CatalogFile struct {
	Header    []string
	Rows      []RawRow
	Malformed int // registros ilegibles descartados por el lector
}

// ReadCatalog lee un CSV UTF-8 delimitado por ";" con cabecera. Un archivo vacío
// produce un catálogo sin filas. Los registros mal formados se cuentan y se omiten;
// los errores de E/S abortan la lectura.
func ReadCatalog(r io.Reader) (*CatalogFile, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.Comma = Delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &CatalogFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: columnas requeridas ausentes: %s",
			domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	file := &CatalogFile{Header: header}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			file.Malformed++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("leer registro: %w", err)
		}
		row := make(RawRow, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		file.Rows = append(file.Rows, row)
	}
	return file, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
