package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/application/dto"
)

const msgOrderSubmitted = "Pedido enviado correctamente"

// CheckoutHandler datos de contacto, resumen y envío del pedido.
type CheckoutHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Get godoc
// @Summary      Estado del checkout
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout [get]
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Checkout(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveContact godoc
// @Summary      Guardar datos de contacto
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos de contacto"
// @Success      200  {object}  entity.ContactDetails
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) SaveContact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SaveContact(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Review godoc
// @Summary      Resumen del pedido antes de enviarlo
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  dto.OrderReviewResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/resumen-pedido [get]
func (h *CheckoutHandler) Review(c *fiber.Ctx) error {
	out, err := h.uc.Review(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar pedido
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  dto.OrderSubmittedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/resumen-pedido [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	order, err := h.uc.Submit(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderSubmittedResponse{Message: msgOrderSubmitted, Order: *order})
}

// Success godoc
// @Summary      Último pedido enviado
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  entity.OrderSummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedido-exitoso [get]
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	order, err := h.uc.LastOrder(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// SuccessPDF godoc
// @Summary      Comprobante PDF del último pedido
// @Tags         checkout
// @Produce      application/pdf
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedido-exitoso/pdf [get]
func (h *CheckoutHandler) SuccessPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.LastOrderPDF(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido.pdf"`)
	return c.Send(pdf)
}
