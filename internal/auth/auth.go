// Package auth verifies seller JWTs on protected routes. Credential
// handling (passwords, login flows) lives outside this service.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwthelper "github.com/vendora/vendora-manager/internal/auth/jwt"
)

type Config struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`
}

type Auth struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
}

func New(cfg Config) *Auth {
	ttl := cfg.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{
		ja:  jwtauth.New("HS256", []byte(cfg.JWTSecret), nil),
		ttl: ttl,
	}
}

// Verifier extracts and validates the JWT from the request.
func (a *Auth) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(a.ja)
}

// Authenticator rejects requests whose token is missing or invalid.
func (a *Auth) Authenticator() func(http.Handler) http.Handler {
	return jwtauth.Authenticator
}

// MintSellerToken issues a token for the seller id.
func (a *Auth) MintSellerToken(sellerID string) (string, error) {
	return jwthelper.NewSellerToken(a.ja, a.ttl, sellerID)
}

// SellerID returns the authenticated seller id from the request context.
func SellerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token carries no seller id")
	}
	return sub, nil
}
