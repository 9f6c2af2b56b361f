package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/domain"
)

// "Jardín" en ISO-8859-1: í = 0xED.
var latin1CSV = []byte("product_code;category;price;name\nG1;Jard\xedn;5;Pala\n")

func TestDecodeReader_Latin1(t *testing.T) {
	r, err := catalog.DecodeReader(bytes.NewReader(latin1CSV), "latin1")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Jardín")
}

func TestDecodeReader_UTF8PorDefecto(t *testing.T) {
	in := []byte("a;b")
	r, err := catalog.DecodeReader(bytes.NewReader(in), "")
	require.NoError(t, err)
	out, _ := io.ReadAll(r)
	assert.Equal(t, in, out)
}

func TestDecodeReader_Desconocida(t *testing.T) {
	_, err := catalog.DecodeReader(bytes.NewReader(nil), "ebcdic")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestImportFile_Latin1(t *testing.T) {
	f := newFixture()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, latin1CSV, 0o600))

	_, err := f.uc.ImportFile(context.Background(), path, catalog.ImportOptions{Encoding: catalog.EncodingLatin1})
	require.NoError(t, err)

	c, err := f.categories.GetByFullPath(context.Background(), "Jardín")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "jardin", c.Slug)
}
