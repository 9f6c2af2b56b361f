// Package redisstore guarda las sesiones de la tienda en Redis (JSON con TTL).
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalog-store/internal/domain/entity"
	"github.com/jhoicas/catalog-store/internal/domain/repository"
	"github.com/jhoicas/catalog-store/pkg/config"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis %s: %w", cfg.Host, err)
	}
	return client, nil
}

// SessionStore sesiones bajo la clave session:<id>. Cada Save renueva el TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore construye el almacén.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Key clave Redis de una sesión.
func Key(sessionID string) string {
	return "session:" + sessionID
}

// Load devuelve la sesión o una vacía si no existe o expiró.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*entity.Session, error) {
	raw, err := s.client.Get(ctx, Key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
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

// Save guarda la sesión con el TTL configurado.
func (s *SessionStore) Save(ctx context.Context, sessionID string, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}
	if err := s.client.Set(ctx, Key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Delete elimina la sesión.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
