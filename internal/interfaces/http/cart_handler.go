package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/domain"
)

const (
	msgAdded   = "Producto agregado al carrito"
	msgUpdated = "Carrito actualizado"
	msgRemoved = "Producto eliminado del carrito"
)

// CartHandler carrito de la sesión actual.
type CartHandler struct {
	uc *checkout.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *checkout.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// View godoc
// @Summary      Ver carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carrito [get]
func (h *CartHandler) View(c *fiber.Ctx) error {
	out, err := h.uc.View(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Añadir producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "Código de producto y cantidad"
// @Success      200  {object}  dto.CartCountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/agregar [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	qty, err := checkout.ParseQuantity(string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	count, err := h.uc.Add(c.UserContext(), GetSessionID(c), in.ProductCode, qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CartCountResponse{Message: msgAdded, CartCount: count})
}

// Update godoc
// @Summary      Cambiar cantidad de una línea (<= 0 la elimina)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productCode  path  string                 true  "Código de producto"
// @Param        body         body  dto.UpdateCartRequest  true  "Nueva cantidad"
// @Success      200  {object}  dto.CartCountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/carrito/actualizar/{productCode} [post]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	qty, err := in.Quantity.Int()
	if err != nil {
		return writeError(c, domain.NewValidationError(checkout.MsgInvalidNumber))
	}
	count, err := h.uc.Update(c.UserContext(), GetSessionID(c), c.Params("productCode"), qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CartCountResponse{Message: msgUpdated, CartCount: count})
}

// Remove godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Produce      json
// @Param        productCode  path  string  true  "Código de producto"
// @Success      200  {object}  dto.CartCountResponse
// @Router       /api/carrito/eliminar/{productCode} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	count, err := h.uc.Remove(c.UserContext(), GetSessionID(c), c.Params("productCode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CartCountResponse{Message: msgRemoved, CartCount: count})
}
