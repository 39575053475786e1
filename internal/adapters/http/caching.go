package http

import "github.com/gofiber/fiber/v2"

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint. Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		var ttl string
		switch c.Path() {
		case "/health", "/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case "/graphql":
			ttl = "private, max-age=0"

		case "/api/results":
			ttl = "private, max-age=5" // History changes on every submit

		case "/api/stats":
			ttl = "public, max-age=60"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
