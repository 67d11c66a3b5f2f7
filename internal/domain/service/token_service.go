package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed
// identity tokens. Tokens are stateless: there is no server-side session
// record and no revocation list. A token stays valid for its full
// lifetime regardless of subsequent account state changes; every
// protected call re-checks status and role live against the store.
type TokenService interface {
	// Generate creates a new signed access token binding the given user id
	// and an issued-at/expiry window.
	Generate(userID string) (string, error)

	// Validate checks the signature, shape and expiry of a token string
	// and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
