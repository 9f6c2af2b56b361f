package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/domain"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// MsgIncompleteContact faltan campos obligatorios del contacto.
const MsgIncompleteContact = "Por favor complete todos los campos requeridos"

// CheckoutUseCase captura el contacto, muestra el resumen y envía el pedido.
// El pedido no se persiste: se notifica y queda en la sesión como último pedido.
type CheckoutUseCase struct {
	sessions repository.SessionStore
	cart     *CartUseCase
	notifier OrderNotifier
	pdf      OrderPDFGenerator
	log      zerolog.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	sessions repository.SessionStore,
	cart *CartUseCase,
	notifier OrderNotifier,
	pdf OrderPDFGenerator,
	log zerolog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{sessions: sessions, cart: cart, notifier: notifier, pdf: pdf, log: log}
}

// Checkout contacto guardado y carrito. ErrEmptyCart si no hay nada que comprar.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	sess, cart, err := uc.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{Contact: sess.Contact, Cart: *cart}, nil
}

// SaveContact valida y guarda los datos de contacto en la sesión.
func (uc *CheckoutUseCase) SaveContact(ctx context.Context, sessionID string, in dto.ContactRequest) (*entity.ContactDetails, error) {
	sess, _, err := uc.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	contact := &entity.ContactDetails{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		BusinessName: strings.TrimSpace(in.BusinessName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
	}
	if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" || contact.PhoneNumber == "" {
		return nil, domain.NewValidationError(MsgIncompleteContact)
	}
	sess.Contact = contact
	if err := uc.sessions.Save(ctx, sessionID, sess); err != nil {
		return nil, err
	}
	return contact, nil
}

// Review resumen previo al envío: requiere carrito y contacto.
func (uc *CheckoutUseCase) Review(ctx context.Context, sessionID string) (*dto.OrderReviewResponse, error) {
	sess, cart, err := uc.loadReady(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderReviewResponse{
		Contact:    *sess.Contact,
		Items:      cart.Items,
		GrandTotal: cart.GrandTotal,
	}, nil
}

// Submit congela el carrito en un OrderSummary, lo notifica, lo guarda como último
// pedido y vacía carrito y contacto. Si la notificación falla la sesión no cambia.
func (uc *CheckoutUseCase) Submit(ctx context.Context, sessionID string) (*entity.OrderSummary, error) {
	sess, cart, err := uc.loadReady(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order := &entity.OrderSummary{
		Contact:    *sess.Contact,
		Items:      make([]entity.OrderLine, 0, len(cart.Items)),
		GrandTotal: cart.GrandTotal,
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, entity.OrderLine{
			ProductCode: it.Product.ProductCode,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			ItemTotal:   it.ItemTotal,
			Currency:    it.Product.Currency,
		})
	}

	if err := uc.notifier.NotifyOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("notificar pedido: %w", err)
	}

	sess.LastOrder = order
	sess.Cart = make(map[string]entity.CartLine)
	sess.Contact = nil
	if err := uc.sessions.Save(ctx, sessionID, sess); err != nil {
		return nil, err
	}
	uc.log.Info().Str("email", order.Contact.Email).Int("lines", len(order.Items)).
		Str("total", order.GrandTotal.StringFixed(2)).Msg("pedido enviado")
	return order, nil
}

// LastOrder último pedido enviado en la sesión; ErrNotFound si no hay.
func (uc *CheckoutUseCase) LastOrder(ctx context.Context, sessionID string) (*entity.OrderSummary, error) {
	sess, err := uc.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.LastOrder == nil {
		return nil, domain.ErrNotFound
	}
	return sess.LastOrder, nil
}

// LastOrderPDF comprobante PDF del último pedido.
func (uc *CheckoutUseCase) LastOrderPDF(ctx context.Context, sessionID string) ([]byte, error) {
	order, err := uc.LastOrder(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateOrder(order)
}

func (uc *CheckoutUseCase) loadCart(ctx context.Context, sessionID string) (*entity.Session, *dto.CartResponse, error) {
	sess, err := uc.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	cart, err := uc.cart.view(ctx, sess)
	if err != nil {
		return nil, nil, err
	}
	if len(cart.Items) == 0 {
		return nil, nil, domain.ErrEmptyCart
	}
	return sess, cart, nil
}

func (uc *CheckoutUseCase) loadReady(ctx context.Context, sessionID string) (*entity.Session, *dto.CartResponse, error) {
	sess, cart, err := uc.loadCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.Contact == nil {
		return nil, nil, domain.ErrMissingContact
	}
	return sess, cart, nil
}
