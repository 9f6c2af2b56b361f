// Package notify entrega los pedidos enviados. Hoy solo se registran en el log;
// el envío de correo queda fuera de alcance.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

var _ checkout.OrderNotifier = (*LogOrderNotifier)(nil)

// LogOrderNotifier escribe el pedido completo en el log estructurado.
type LogOrderNotifier struct {
	log zerolog.Logger
}

// NewLogOrderNotifier construye el notificador.
func NewLogOrderNotifier(log zerolog.Logger) *LogOrderNotifier {
	return &LogOrderNotifier{log: log}
}

// NotifyOrder registra el pedido; nunca falla.
func (n *LogOrderNotifier) NotifyOrder(_ context.Context, order *entity.OrderSummary) error {
	items := zerolog.Arr()
	for _, it := range order.Items {
		items.Dict(zerolog.Dict().
			Str("product_code", it.ProductCode).
			Str("product_name", it.ProductName).
			Int("quantity", it.Quantity).
			Str("item_total", it.ItemTotal.StringFixed(2)))
	}
	n.log.Info().
		Str("first_name", order.Contact.FirstName).
		Str("last_name", order.Contact.LastName).
		Str("email", order.Contact.Email).
		Str("business_name", order.Contact.BusinessName).
		Str("phone_number", order.Contact.PhoneNumber).
		Array("items", items).
		Str("grand_total", order.GrandTotal.StringFixed(2)).
		Msg("nuevo pedido")
	return nil
}
