package services

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTExpiry,
		now:    time.Now,
	}
}

func (s *TokenService) Issue(id identity.Identity) (string, error) {
	if id.ID == "" {
		return "", errors.New("identity id is required")
	}

	now := s.now()
	claims := sessionClaims{
		UserID: id.ID,
		Email:  id.Email,
		Name:   id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns the identity encoded in a token. Malformed, tampered and
// expired tokens all yield false.
func (s *TokenService) Verify(raw string) (identity.Identity, bool) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return identity.Identity{}, false
	}

	return identity.Identity{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, true
}
