package entity

import "github.com/shopspring/decimal"

// CartLine cantidad de un producto en el carrito (clave: product code).
type CartLine struct {
	Quantity int `json:"quantity"`
}

// ContactDetails datos de contacto capturados en el checkout.
type ContactDetails struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	PhoneNumber  string `json:"phone_number"`
}

// OrderLine línea congelada de un pedido enviado.
type OrderLine struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ItemTotal   decimal.Decimal `json:"item_total"`
	Currency    string          `json:"currency"`
}

// OrderSummary pedido efímero: se muestra una vez y no se persiste en el catálogo.
type OrderSummary struct {
	Contact    ContactDetails  `json:"contact_details"`
	Items      []OrderLine     `json:"cart_items"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Session estado de una sesión de navegación. Vive en el almacén de sesiones, nunca en el catálogo.
type Session struct {
	Cart      map[string]CartLine `json:"cart"`
	Contact   *ContactDetails     `json:"checkout_contact,omitempty"`
	LastOrder *OrderSummary       `json:"last_order_data,omitempty"`
}

// NewSession sesión vacía con el carrito inicializado.
func NewSession() *Session {
	return &Session{Cart: make(map[string]CartLine)}
}

// CartCount suma de cantidades del carrito.
func (s *Session) CartCount() int {
	total := 0
	for _, line := range s.Cart {
		total += line.Quantity
	}
	return total
}
