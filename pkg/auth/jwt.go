// Package auth issues and verifies the signed session tokens carried in the
// "token" cookie. Tokens are stateless: there is no revocation list, so a
// token stays valid until its natural expiry even after logout.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/plantnet/config"
)

// TokenTTL is the session token lifetime. The frontend re-issues a token on
// every login, so the long expiry only bounds abandoned sessions.
const TokenTTL = 365 * 24 * time.Hour

// Claims holds the typed JWT payload. The email is the only trusted claim;
// roles are always re-read from the users collection per request.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// Issue creates a signed session token for the given email.
func Issue(email string) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// Verify parses and validates a session token string.
func Verify(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Email == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
