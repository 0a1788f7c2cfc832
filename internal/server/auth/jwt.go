// Package auth implements the shared-password access gate and the session
// tokens handed out after a successful login. Sessions are stateless HS256
// tokens; there is nothing to store or revoke server-side.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zorgkaart/internal/common"
)

// Claims carries only the registered claims; with a single shared password
// there is no per-user identity to embed.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken mints a session token valid for validityDuration.
func GenerateToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateToken checks the signature and expiry of a session token.
// Expired tokens map to common.ErrTokenExpired, anything else invalid to
// common.ErrInvalidToken.
func ValidateToken(tokenString string, secretKey []byte) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}
	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}
