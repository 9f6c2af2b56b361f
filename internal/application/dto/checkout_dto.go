package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// ContactRequest datos de contacto del checkout.
type ContactRequest struct {
	FirstName    string `json:"first_name" form:"first_name"`
	LastName     string `json:"last_name" form:"last_name"`
	Email        string `json:"email" form:"email"`
	BusinessName string `json:"business_name" form:"business_name"`
	PhoneNumber  string `json:"phone_number" form:"phone_number"`
}

// CheckoutResponse contacto guardado (si hay) y carrito actual.
type CheckoutResponse struct {
	Contact *entity.ContactDetails `json:"contact"`
	Cart    CartResponse           `json:"cart"`
}

// OrderReviewResponse resumen previo al envío.
type OrderReviewResponse struct {
	Contact    entity.ContactDetails `json:"contact"`
	Items      []CartItemResponse    `json:"items"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
}

// OrderSubmittedResponse resultado del envío del pedido.
type OrderSubmittedResponse struct {
	Message string              `json:"message"`
	Order   entity.OrderSummary `json:"order"`
}
