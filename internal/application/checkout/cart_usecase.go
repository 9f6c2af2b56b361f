package checkout

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-store/internal/application/dto"
	"github.com/jhoicas/catalog-store/internal/domain"
	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

// Mensajes de validación de cantidad.
const (
	MsgInvalidNumber     = "Por favor ingrese un número válido"
	MsgQuantityPositive  = "La cantidad debe ser mayor que 0"
	MsgMissingProductRef = "Falta el código de producto"
	MsgQuantityTooLarge  = "La cantidad máxima por producto es 9999"
)

// MaxQuantity unidades máximas de un producto en el carrito.
const MaxQuantity = 9999

// ParseQuantity interpreta la cantidad enviada por el cliente. Vacía = 1.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(MsgInvalidNumber)
	}
	return n, nil
}

// CartUseCase carrito por sesión. El estado vive en el SessionStore, nunca en el proceso.
type CartUseCase struct {
	sessions    repository.SessionStore
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(sessions repository.SessionStore, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{sessions: sessions, productRepo: productRepo}
}

// Add suma qty unidades del producto al carrito. Devuelve el total de unidades.
func (uc *CartUseCase) Add(ctx context.Context, sessionID, productCode string, qty int) (int, error) {
	productCode = strings.TrimSpace(productCode)
	if productCode == "" {
		return 0, domain.NewValidationError(MsgMissingProductRef)
	}
	if qty <= 0 {
		return 0, domain.NewValidationError(MsgQuantityPositive)
	}
	if qty > MaxQuantity {
		return 0, domain.NewValidationError(MsgQuantityTooLarge)
	}
	p, err := uc.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return 0, fmt.Errorf("buscar producto: %w", err)
	}
	if p == nil {
		return 0, domain.ErrNotFound
	}

	sess, err := uc.sessions.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	line := sess.Cart[productCode]
	if line.Quantity > MaxQuantity-qty {
		return 0, domain.NewValidationError(MsgQuantityTooLarge)
	}
	line.Quantity += qty
	sess.Cart[productCode] = line
	if err := uc.sessions.Save(ctx, sessionID, sess); err != nil {
		return 0, err
	}
	return sess.CartCount(), nil
}

// Update fija la cantidad de una línea; qty <= 0 la elimina. Código ausente del carrito: sin cambios.
func (uc *CartUseCase) Update(ctx context.Context, sessionID, productCode string, qty int) (int, error) {
	if qty > MaxQuantity {
		return 0, domain.NewValidationError(MsgQuantityTooLarge)
	}
	sess, err := uc.sessions.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if _, ok := sess.Cart[productCode]; !ok {
		return sess.CartCount(), nil
	}
	if qty > 0 {
		sess.Cart[productCode] = entity.CartLine{Quantity: qty}
	} else {
		delete(sess.Cart, productCode)
	}
	if err := uc.sessions.Save(ctx, sessionID, sess); err != nil {
		return 0, err
	}
	return sess.CartCount(), nil
}

// Remove quita la línea del carrito si existe.
func (uc *CartUseCase) Remove(ctx context.Context, sessionID, productCode string) (int, error) {
	return uc.Update(ctx, sessionID, productCode, 0)
}

// Count total de unidades en el carrito.
func (uc *CartUseCase) Count(ctx context.Context, sessionID string) (int, error) {
	sess, err := uc.sessions.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return sess.CartCount(), nil
}

// View contenido del carrito con precios actuales. Los productos que ya no están en el
// catálogo no se muestran (la línea sigue en la sesión).
func (uc *CartUseCase) View(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	sess, err := uc.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, sess)
}

func (uc *CartUseCase) view(ctx context.Context, sess *entity.Session) (*dto.CartResponse, error) {
	codes := make([]string, 0, len(sess.Cart))
	for code := range sess.Cart {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	resp := &dto.CartResponse{
		Items:      make([]dto.CartItemResponse, 0, len(codes)),
		GrandTotal: decimal.Zero,
		CartCount:  sess.CartCount(),
	}
	for _, code := range codes {
		p, err := uc.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("buscar producto %q: %w", code, err)
		}
		if p == nil {
			continue
		}
		qty := sess.Cart[code].Quantity
		total := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		resp.Items = append(resp.Items, dto.CartItemResponse{
			Product:   dto.NewProductResponse(p),
			Quantity:  qty,
			UnitPrice: p.Price,
			ItemTotal: total,
		})
		resp.GrandTotal = resp.GrandTotal.Add(total)
	}
	return resp, nil
}
