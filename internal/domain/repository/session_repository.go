package repository

import (
	"context"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
)

// SessionStore persiste el estado de sesión (carrito, contacto, último pedido) por ID de sesión.
// Load nunca devuelve nil sin error: una sesión inexistente se entrega vacía.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*entity.Session, error)
	Save(ctx context.Context, sessionID string, session *entity.Session) error
	Delete(ctx context.Context, sessionID string) error
}
