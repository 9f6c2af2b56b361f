package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalSessionID key de c.Locals con el ID de sesión del visitante.
const LocalSessionID = "session_id"

// SessionConfig cookie que identifica la sesión del carrito.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware lee la cookie de sesión; si falta o no es un UUID crea una nueva.
// La cookie se renueva en cada petición para extender su vida.
func SessionMiddleware(cfg SessionConfig) fiber.Handler {
	name := cfg.CookieName
	if name == "" {
		name = "sessionid"
	}
	return func(c *fiber.Ctx) error {
		id := c.Cookies(name)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		cookie := &fiber.Cookie{
			Name:     name,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
		if cfg.TTL > 0 {
			cookie.Expires = time.Now().Add(cfg.TTL)
		}
		c.Cookie(cookie)
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// GetSessionID devuelve el ID de sesión (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}
