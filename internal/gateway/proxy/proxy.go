package proxy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// hopHeaders are connection-scoped and never copied between hops.
var hopHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
}

// ============================================================
// Proxy
// ============================================================

// Proxy forwards gateway requests to the designer service.
type Proxy struct {
	client *resty.Client
	log    *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Proxy {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)
	return &Proxy{client: client, log: log}
}

// Handler forwards any request below prefix, with prefix stripped and the
// query string kept.
func (p *Proxy) Handler(prefix string) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := strings.TrimPrefix(c.Path(), prefix)
		if path == "" {
			path = "/"
		}
		if query := string(c.Request().URI().QueryString()); query != "" {
			path += "?" + query
		}
		return p.Forward(c, path)
	}
}

// Forward sends the request body and auth header as-is to path upstream and
// copies the answer back. Multipart bodies keep their boundary.
func (p *Proxy) Forward(c fiber.Ctx, path string) error {
	req := p.client.R().SetContext(c.Context())
	if contentType := c.Get("Content-Type"); contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}
	if auth := c.Get("Authorization"); auth != "" {
		req.SetHeader("Authorization", auth)
	}
	if body := c.Body(); len(body) > 0 {
		req.SetBody(append([]byte(nil), body...))
	}

	resp, err := req.Execute(c.Method(), path)
	if err != nil {
		p.log.Warn("upstream unreachable", zap.String("method", c.Method()), zap.String("path", path), zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}

	p.log.Debug("proxied",
		zap.String("method", c.Method()),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
	)

	for key, values := range resp.Header() {
		if hopHeaders[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, value := range values {
			c.Response().Header.Add(key, value)
		}
	}
	c.Status(resp.StatusCode())
	return c.Send(resp.Body())
}

// Ping checks that the designer service answers its readiness probe.
func (p *Proxy) Ping(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/health/ready")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("upstream not ready: %d", resp.StatusCode())
	}
	return nil
}
