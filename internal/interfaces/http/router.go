package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/application/auth"
	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/application/storefront"
	"github.com/jhoicas/catalog-store/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StorefrontUC *storefront.UseCase
	CartUC       *checkout.CartUseCase
	CheckoutUC   *checkout.CheckoutUseCase
	AuthUC       *auth.AuthUseCase
	ImportUC     *catalog.ImportUseCase
	ImageUC      *catalog.ImageUseCase // nil sin almacenamiento de imágenes
	CatalogFile  string
	JWTSecret    string
	Session      SessionConfig
	Logger       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Admin: login público, trabajos del catálogo protegidos con JWT + rol
	adminHandler := NewAdminHandler(deps.AuthUC, deps.ImportUC, deps.ImageUC, deps.CatalogFile, deps.Logger)
	admin := api.Group("/admin")
	admin.Post("/login", adminHandler.Login)
	jobs := admin.Group("/catalog", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin))
	jobs.Post("/import", adminHandler.ImportCatalog)
	jobs.Post("/images", adminHandler.DownloadImages)

	// Tienda: todas las rutas públicas llevan cookie de sesión
	shop := api.Group("/", SessionMiddleware(deps.Session))

	storefrontHandler := NewStorefrontHandler(deps.StorefrontUC, deps.CartUC)
	shop.Get("/categorias", storefrontHandler.ListCategories)
	shop.Get("/menu", storefrontHandler.Menu)
	shop.Get("/categoria/:categorySlug", storefrontHandler.Category)
	shop.Get("/categoria/:categorySlug/:productSlug", storefrontHandler.Product)
	shop.Post("/categoria/:categorySlug/:productSlug/carrito", storefrontHandler.AddFromProductPage)

	cartHandler := NewCartHandler(deps.CartUC)
	cart := shop.Group("/carrito")
	cart.Get("/", cartHandler.View)
	cart.Post("/agregar", cartHandler.Add)
	cart.Post("/actualizar/:productCode", cartHandler.Update)
	cart.Post("/eliminar/:productCode", cartHandler.Remove)
	cart.Delete("/eliminar/:productCode", cartHandler.Remove)

	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	shop.Get("/checkout", checkoutHandler.Get)
	shop.Post("/checkout", checkoutHandler.SaveContact)
	shop.Get("/resumen-pedido", checkoutHandler.Review)
	shop.Post("/resumen-pedido", checkoutHandler.Submit)
	shop.Get("/pedido-exitoso", checkoutHandler.Success)
	shop.Get("/pedido-exitoso/pdf", checkoutHandler.SuccessPDF)
}
