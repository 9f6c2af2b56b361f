// Package httpfetch descarga imágenes remotas con el cliente HTTP de Fiber.
package httpfetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-store/internal/application/catalog"
)

var _ catalog.ImageFetcher = (*FiberFetcher)(nil)

// DefaultTimeout límite de cada descarga.
const DefaultTimeout = 10 * time.Second

// FiberFetcher implementa catalog.ImageFetcher con fiber.Agent.
type FiberFetcher struct {
	timeout time.Duration
}

// NewFiberFetcher construye el fetcher; timeout <= 0 usa DefaultTimeout.
func NewFiberFetcher(timeout time.Duration) *FiberFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FiberFetcher{timeout: timeout}
}

// Fetch GET de url siguiendo redirecciones. Solo 2xx se considera éxito.
func (f *FiberFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	timeout := f.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	agent := fiber.Get(url)
	agent.SetResponse(resp)
	agent.Timeout(timeout)
	agent.MaxRedirectsCount(5)
	if err := agent.Parse(); err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", url, err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, "", fmt.Errorf("GET %s: %w", url, errs[0])
	}
	if code < 200 || code > 299 {
		return nil, "", fmt.Errorf("GET %s: estado %d", url, code)
	}
	data := make([]byte, len(body))
	copy(data, body)
	return data, string(resp.Header.ContentType()), nil
}
