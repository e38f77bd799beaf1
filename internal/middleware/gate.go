package middleware

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// Prefixes and exact paths that never require a token.
var (
	publicPrefixes = []string{
		"/_next/",    // static assets
		"/api/auth/", // login
	}
	publicPaths = []string{
		"/",
		"/favicon.ico",
	}
)

const protectedPrefix = "/api/"

// RequestGate is the single authentication point. Protected API requests get
// their identity resolved once and stored in locals; handlers read it from
// there and never re-verify the token.
func RequestGate(resolver *identity.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if isPublic(path) || !strings.HasPrefix(path, protectedPrefix) {
			return c.Next()
		}

		id, err := resolver.Resolve(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			message := "Invalid or expired token"
			if errors.Is(err, identity.ErrMissingBearer) {
				message = "Authorization header missing or invalid"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: message})
		}

		c.Request().Header.Set(identity.HeaderUserID, id.ID)
		c.Request().Header.Set(identity.HeaderUserEmail, id.Email)
		identity.Set(c, id)
		return c.Next()
	}
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
