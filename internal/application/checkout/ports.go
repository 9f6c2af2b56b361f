package checkout

import (
	"context"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// OrderNotifier entrega un pedido enviado (correo, cola, log…).
type OrderNotifier interface {
	NotifyOrder(ctx context.Context, order *entity.OrderSummary) error
}

// OrderPDFGenerator genera el comprobante PDF de un pedido.
type OrderPDFGenerator interface {
	GenerateOrder(order *entity.OrderSummary) ([]byte, error)
}
