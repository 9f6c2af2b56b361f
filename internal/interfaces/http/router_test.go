package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalog-store/internal/application/auth"
	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/application/storefront"
	"github.com/jhoicas/catalog-store/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-store/internal/infrastructure/notify"
	"github.com/jhoicas/catalog-store/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/catalog-store/internal/interfaces/http"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

const (
	storeCSV = `product_code;category;price;name;images 1
H1;Herramientas > Martillos;12,50;Martillo de uña;http://img/h1.jpg
H2;Herramientas > Martillos;9;Mazo;
G1;Jardín;5;Pala;`
	adminPassword = "clave-del-operador"
	cookieName    = "sessionid"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T, seed bool) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	importUC := catalog.NewImportUseCase(store.Categories(), store.Products(), store, log)
	if seed {
		file, err := catalog.ReadCatalog(strings.NewReader(storeCSV))
		require.NoError(t, err)
		_, err = importUC.Import(context.Background(), file, catalog.ImportOptions{})
		require.NoError(t, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	sessions := memory.NewSessionStore()
	cartUC := checkout.NewCartUseCase(sessions, store.Products())
	checkoutUC := checkout.NewCheckoutUseCase(sessions, cartUC, notify.NewLogOrderNotifier(log),
		pdf.NewMarotoOrderPDFGenerator("Tienda de prueba"), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StorefrontUC: storefront.NewUseCase(store.Categories(), store.Products(), log),
		CartUC:       cartUC,
		CheckoutUC:   checkoutUC,
		AuthUC: auth.NewAuthUseCase(
			auth.Operator{Username: "admin", PasswordHash: string(hash)},
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		),
		ImportUC:    importUC,
		CatalogFile: "no-existe.csv",
		JWTSecret:   testJWTSecret,
		Session:     apphttp.SessionConfig{CookieName: cookieName},
		Logger:      log,
	})
	return &testServer{app: app, store: store}
}

// browser conserva la cookie de sesión entre peticiones.
type browser struct {
	t       *testing.T
	srv     *testServer
	session string
}

func (b *browser) do(method, path string, body interface{}) *http.Response {
	b.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.session != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: b.session})
	}
	resp, err := b.srv.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName {
			b.session = ck.Value
		}
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e
}

// ── Storefront ───────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStorefront_CategoriasYMenu(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, true)}

	resp := b.do(http.MethodGet, "/api/categorias", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tops []dto.TopLevelCategoryResponse
	decode(t, resp, &tops)
	require.Len(t, tops, 2)
	assert.Equal(t, "Herramientas", tops[0].Name)
	assert.Equal(t, 2, tops[0].Count)
	assert.Equal(t, "http://img/h1.jpg", tops[0].ImageURL)
	assert.Equal(t, "jardin", tops[1].Slug)
	assert.NotEmpty(t, b.session, "la tienda debe emitir cookie de sesión")

	resp = b.do(http.MethodGet, "/api/menu", nil)
	var menu []dto.MenuItemResponse
	decode(t, resp, &menu)
	assert.Len(t, menu, 2)
}

func TestStorefront_PaginaCategoria(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, true)}

	resp := b.do(http.MethodGet, "/api/categoria/herramientas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.CategoryPageResponse
	decode(t, resp, &page)
	assert.Equal(t, "Herramientas", page.Category)
	assert.Len(t, page.Products, 2)

	// slug de ruta completa resuelve al primer nivel
	resp = b.do(http.MethodGet, "/api/categoria/herramientas-martillos", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.do(http.MethodGet, "/api/categoria/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp).Code)
}

func TestStorefront_PaginaProducto(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, true)}

	resp := b.do(http.MethodGet, "/api/categoria/herramientas/mazo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.ProductPageResponse
	decode(t, resp, &page)
	assert.Equal(t, "H2", page.Product.ProductCode)
	assert.Equal(t, "herramientas", page.CategorySlug)

	resp = b.do(http.MethodGet, "/api/categoria/herramientas/pala", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStorefront_AgregarDesdeProducto(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, true)}

	resp := b.do(http.MethodPost, "/api/categoria/herramientas/mazo/carrito", map[string]string{"quantity": "abc"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, checkout.MsgInvalidNumber, errorCode(t, resp).Message)

	resp = b.do(http.MethodPost, "/api/categoria/herramientas/mazo/carrito", map[string]int{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, checkout.MsgQuantityPositive, errorCode(t, resp).Message)

	resp = b.do(http.MethodPost, "/api/categoria/herramientas/mazo/carrito", map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CartCountResponse
	decode(t, resp, &out)
	assert.Equal(t, 3, out.CartCount)
}

// ── Carrito ──────────────────────────────────────────────────────────────────

func TestCarrito_FlujoCompleto(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, true)}

	resp := b.do(http.MethodPost, "/api/carrito/agregar", map[string]interface{}{"product_code": "H1", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = b.do(http.MethodPost, "/api/carrito/agregar", map[string]interface{}{"product_code": "G1", "quantity": "1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var count dto.CartCountResponse
	decode(t, resp, &count)
	assert.Equal(t, 3, count.CartCount)

	resp = b.do(http.MethodPost, "/api/carrito/agregar", map[string]interface{}{"product_code": "NOPE", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = b.do(http.MethodGet, "/api/carrito", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart dto.CartResponse
	decode(t, resp, &cart)
	require.Len(t, cart.Items, 2)
	assert.True(t, decimal.RequireFromString("30").Equal(cart.GrandTotal), "2 x 12,50 + 5")

	resp = b.do(http.MethodPost, "/api/carrito/actualizar/H1", map[string]int{"quantity": 1})
	decode(t, resp, &count)
	assert.Equal(t, 2, count.CartCount)

	resp = b.do(http.MethodPost, "/api/carrito/actualizar/H1", map[string]string{"quantity": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = b.do(http.MethodDelete, "/api/carrito/eliminar/G1", nil)
	decode(t, resp, &count)
	assert.Equal(t, 1, count.CartCount)
}

func TestCarrito_SesionesAisladas(t *testing.T) {
	srv := newTestServer(t, true)
	a := &browser{t: t, srv: srv}
	b := &browser{t: t, srv: srv}

	a.do(http.MethodPost, "/api/carrito/agregar", map[string]interface{}{"product_code": "H1", "quantity": 4})
	resp := b.do(http.MethodGet, "/api/carrito", nil)
	var cart dto.CartResponse
	decode(t, resp, &cart)
	assert.Equal(t, 0, cart.CartCount)
	assert.NotEqual(t, a.session, b.session)
}

// ── Checkout ─────────────────────────────────────────────────────────────────

func TestCheckout_FlujoCompleto(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, true)}

	resp := b.do(http.MethodGet, "/api/checkout", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", errorCode(t, resp).Code)

	b.do(http.MethodPost, "/api/carrito/agregar", map[string]interface{}{"product_code": "H2", "quantity": 2})

	resp = b.do(http.MethodGet, "/api/resumen-pedido", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "MISSING_CONTACT", errorCode(t, resp).Code)

	resp = b.do(http.MethodPost, "/api/checkout", map[string]string{"first_name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, checkout.MsgIncompleteContact, errorCode(t, resp).Message)

	resp = b.do(http.MethodPost, "/api/checkout", map[string]string{
		"first_name": "Ana", "last_name": "Pérez", "email": "ana@example.com", "phone_number": "600000000",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.do(http.MethodGet, "/api/resumen-pedido", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var review dto.OrderReviewResponse
	decode(t, resp, &review)
	assert.Equal(t, "ana@example.com", review.Contact.Email)
	assert.True(t, decimal.NewFromInt(18).Equal(review.GrandTotal))

	resp = b.do(http.MethodGet, "/api/pedido-exitoso", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = b.do(http.MethodPost, "/api/resumen-pedido", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var submitted dto.OrderSubmittedResponse
	decode(t, resp, &submitted)
	require.Len(t, submitted.Order.Items, 1)
	assert.Equal(t, "Mazo", submitted.Order.Items[0].ProductName)

	// carrito y contacto vacíos tras el envío
	resp = b.do(http.MethodGet, "/api/carrito", nil)
	var cart dto.CartResponse
	decode(t, resp, &cart)
	assert.Equal(t, 0, cart.CartCount)

	resp = b.do(http.MethodGet, "/api/pedido-exitoso", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.do(http.MethodGet, "/api/pedido-exitoso/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ── Admin ────────────────────────────────────────────────────────────────────

func login(t *testing.T, srv *testServer, password string) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(dto.LoginRequest{Username: "admin", Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAdmin_LoginIncorrecto(t *testing.T) {
	srv := newTestServer(t, false)
	resp := login(t, srv, "mala")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_ImportarSinToken(t *testing.T) {
	srv := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog/import", nil)
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_ImportarArchivoSubido(t *testing.T) {
	srv := newTestServer(t, false)

	resp := login(t, srv, adminPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok dto.LoginResponse
	decode(t, resp, &tok)
	require.NotEmpty(t, tok.Token)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(storeCSV))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("clear", "true"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	resp, err = srv.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res catalog.ImportResult
	decode(t, resp, &res)
	assert.Equal(t, 3, res.ProductsCreated)
	assert.Equal(t, 2, res.CategoriesCreated)

	p, err := srv.store.Products().GetByCode(context.Background(), "H1")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestAdmin_ImportarArchivoConfiguradoInexistente(t *testing.T) {
	srv := newTestServer(t, false)
	resp := login(t, srv, adminPassword)
	var tok dto.LoginResponse
	decode(t, resp, &tok)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog/import", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdmin_ImagenesSinAlmacenamiento(t *testing.T) {
	srv := newTestServer(t, false)
	resp := login(t, srv, adminPassword)
	var tok dto.LoginResponse
	decode(t, resp, &tok)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog/images", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
