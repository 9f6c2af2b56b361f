package dto

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity cantidad tal como llega del cliente: número JSON, cadena JSON o campo de formulario.
// Se valida en el caso de uso para poder distinguir "no es un número" de "no es positivo".
type Quantity string

// UnmarshalJSON acepta 3 y "3".
func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = ""
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	*q = Quantity(b)
	return nil
}

// Int interpreta la cantidad como entero.
func (q Quantity) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(q)))
}

// AddToCartRequest entrada para añadir un producto al carrito.
type AddToCartRequest struct {
	ProductCode string   `json:"product_code" form:"product_code"`
	Quantity    Quantity `json:"quantity" form:"quantity"`
}

// UpdateCartRequest entrada para cambiar la cantidad de una línea.
type UpdateCartRequest struct {
	Quantity Quantity `json:"quantity" form:"quantity"`
}

// CartItemResponse línea del carrito con precio actual del catálogo.
type CartItemResponse struct {
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

// CartResponse contenido del carrito.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
	CartCount  int                `json:"cart_count"`
}

// CartCountResponse respuesta de las operaciones que modifican el carrito.
type CartCountResponse struct {
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
}
