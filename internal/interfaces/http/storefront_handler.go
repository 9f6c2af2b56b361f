package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/application/storefront"
)

// StorefrontHandler navegación pública del catálogo.
type StorefrontHandler struct {
	uc   *storefront.UseCase
	cart *checkout.CartUseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(uc *storefront.UseCase, cart *checkout.CartUseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc, cart: cart}
}

// ListCategories godoc
// @Summary      Categorías de primer nivel con productos
// @Tags         storefront
// @Produce      json
// @Success      200  {array}   dto.TopLevelCategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categorias [get]
func (h *StorefrontHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListTopLevelCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Menu godoc
// @Summary      Menú de navegación
// @Tags         storefront
// @Produce      json
// @Success      200  {array}   dto.MenuItemResponse
// @Router       /api/menu [get]
func (h *StorefrontHandler) Menu(c *fiber.Ctx) error {
	out, err := h.uc.Menu(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Category godoc
// @Summary      Productos de una categoría de primer nivel
// @Tags         storefront
// @Produce      json
// @Param        categorySlug  path  string  true  "Slug de la categoría"
// @Success      200  {object}  dto.CategoryPageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categoria/{categorySlug} [get]
func (h *StorefrontHandler) Category(c *fiber.Ctx) error {
	out, err := h.uc.ListProductsUnderTopLevel(c.UserContext(), c.Params("categorySlug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Product godoc
// @Summary      Detalle de producto
// @Tags         storefront
// @Produce      json
// @Param        categorySlug  path  string  true  "Slug de la categoría de primer nivel"
// @Param        productSlug   path  string  true  "Slug del nombre del producto"
// @Success      200  {object}  dto.ProductPageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categoria/{categorySlug}/{productSlug} [get]
func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.UserContext(), c.Params("categorySlug"), c.Params("productSlug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddFromProductPage godoc
// @Summary      Añadir al carrito desde la página de producto
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        categorySlug  path  string                 true  "Slug de la categoría"
// @Param        productSlug   path  string                 true  "Slug del producto"
// @Param        body          body  dto.UpdateCartRequest  false "Cantidad (por defecto 1)"
// @Success      200  {object}  dto.CartCountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categoria/{categorySlug}/{productSlug}/carrito [post]
func (h *StorefrontHandler) AddFromProductPage(c *fiber.Ctx) error {
	var in dto.UpdateCartRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	qty, err := checkout.ParseQuantity(string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	ctx := c.UserContext()
	code, err := h.uc.ProductCode(ctx, c.Params("categorySlug"), c.Params("productSlug"))
	if err != nil {
		return writeError(c, err)
	}
	count, err := h.cart.Add(ctx, GetSessionID(c), code, qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CartCountResponse{Message: msgAdded, CartCount: count})
}
