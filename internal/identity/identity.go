package identity

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	bearerPrefix = "Bearer "
	localsKey    = "identity"

	HeaderUserID    = "x-user-id"
	HeaderUserEmail = "x-user-email"
)

var (
	ErrMissingBearer = errors.New("authorization header missing or invalid")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// Identity is the authenticated principal carried inside a session token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verifier checks a raw token and returns the identity it encodes.
type Verifier interface {
	Verify(token string) (Identity, bool)
}

type Resolver struct {
	verifier Verifier
}

func NewResolver(verifier Verifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve extracts the identity from an Authorization header value.
func (r *Resolver) Resolve(header string) (Identity, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return Identity{}, ErrMissingBearer
	}

	id, ok := r.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}

// Set stores the resolved identity for downstream handlers.
func Set(c *fiber.Ctx, id Identity) {
	c.Locals(localsKey, id)
}

// FromCtx returns the identity stored by the request gate.
func FromCtx(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(localsKey).(Identity)
	if !ok || id.ID == "" {
		return Identity{}, false
	}
	return id, true
}
