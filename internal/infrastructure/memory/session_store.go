package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore sesiones en memoria del proceso (sin Redis). Guarda el JSON serializado
// para que cada Load devuelva una copia independiente, igual que Redis.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewSessionStore crea el almacén.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]byte)}
}

// Load devuelve la sesión o una vacía si no existe.
func (s *SessionStore) Load(_ context.Context, sessionID string) (*entity.Session, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return entity.NewSession(), nil
	}
	sess := entity.NewSession()
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	if sess.Cart == nil {
		sess.Cart = make(map[string]entity.CartLine)
	}
	return sess, nil
}

// Save guarda la sesión.
func (s *SessionStore) Save(_ context.Context, sessionID string, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}
	s.mu.Lock()
	s.sessions[sessionID] = raw
	s.mu.Unlock()
	return nil
}

// Delete elimina la sesión.
func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
