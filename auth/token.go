// Package auth is the boundary to the external identity provider. The relay
// never parses credentials itself: it only validates tokens the provider
// signed and extracts the Identity they carry.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-relay/domain"
	"chat-relay/errors"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// TokenValidator checks signatures and expiry against the shared secret.
// The secret is loaded from the environment, never hardcoded.
type TokenValidator struct {
	secret []byte
	issuer string
}

func NewTokenValidator(secret, issuer string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret), issuer: issuer}
}

// Validate parses and validates a JWT string and returns the validated
// Identity, or ErrUnauthenticated. No relay state is created on failure.
func (v *TokenValidator) Validate(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return domain.Identity{}, errors.ErrUnauthenticated
	}
	return domain.Identity{ID: claims.UserID, DisplayName: claims.DisplayName}, nil
}

// GenerateToken creates a signed JWT for an identity. Used by tests and
// local development; production tokens come from the identity provider.
func (v *TokenValidator) GenerateToken(identity domain.Identity, duration time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID:      identity.ID,
		DisplayName: identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    v.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
