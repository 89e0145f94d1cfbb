// Package webapi exposes the wallet controller over HTTP. It is organized into
// sub-packages per screen group:
// - session: login, logout, navigation and the state read model
// - payment: send and receive flows
// - history: transaction listing and filtering
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/webapi/common"
	historyweb "github.com/amirasaad/compago/webapi/history"
	paymentweb "github.com/amirasaad/compago/webapi/payment"
	sessionweb "github.com/amirasaad/compago/webapi/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, then X-Real-IP, then the peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	// A retried POST carrying the same X-Idempotency-Key replays the first response
	// instead of confirming or cancelling twice.
	fiberApp.Use(idempotency.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("COMPAGO API is running! 🚀")
		},
	)

	sessionweb.Routes(fiberApp, a)
	paymentweb.Routes(fiberApp, a)
	historyweb.Routes(fiberApp, a)
	return fiberApp
}
