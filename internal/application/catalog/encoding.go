package catalog

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/catalog-store/internal/domain"
)

// Codificaciones aceptadas para el archivo de catálogo. Por defecto UTF-8.
const (
	EncodingUTF8    = "utf-8"
	EncodingLatin1  = "iso-8859-1"
	EncodingWin1252 = "windows-1252"
)

// DecodeReader envuelve r para convertir a UTF-8 desde la codificación indicada.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWin1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: codificación no soportada: %q", domain.ErrInvalidInput, encoding)
	}
}
