package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// VerifyToken checks the token signature and returns its subject claim.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Subject(), nil
}

// NewSellerToken creates a JWT carrying the seller id as subject.
func NewSellerToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, sellerID string) (string, error) {
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
		"jti": uuid.NewString(),
	}
	if sellerID != "" {
		claims["sub"] = sellerID
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}
