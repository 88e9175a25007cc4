// Package auth issues and verifies the access tokens that gate the vault
// API, and checks the configured master password. The server is a personal
// vault: there is a single principal, no user table.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/passkeep/passkeep/internal/common"
)

// Subject identifies the single vault principal in issued tokens.
const Subject = "vault-owner"

// GenerateToken signs an HS256 access token valid for validity.
func GenerateToken(secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   Subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// VerifyToken parses and validates tokenString. Expired tokens map to
// common.ErrTokenExpired, everything else invalid to common.ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) error {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject != Subject {
		return common.ErrInvalidToken
	}
	return nil
}
