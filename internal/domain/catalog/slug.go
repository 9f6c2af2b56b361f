package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify convierte s en un identificador apto para URL: descompone (NFKD), descarta
// todo lo que no sea ASCII, pasa a minúsculas, elimina lo que no sea [a-z0-9_],
// espacios o guiones, colapsa espacios/guiones en un único "-" y recorta "-" y "_"
// de los extremos. "Herramientas > Martíllos" => "herramientas-martillos".
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	var b strings.Builder
	b.Grow(len(ascii))
	pendingDash := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return strings.Trim(b.String(), "-_")
}

// SuffixSlug desambigua un slug: base-n.
func SuffixSlug(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}
