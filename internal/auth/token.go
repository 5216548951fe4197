package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pliu/messagely/internal/apperr"
)

// TokenManager signs and verifies the bearer tokens used by the API.
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
}

// Claims is the JWT payload: the username plus the registered claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewTokenManager(secretKey string, ttl time.Duration) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey), ttl: ttl}
}

// Issue returns a signed HS256 token for the given username.
func (m *TokenManager) Issue(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Verify parses the token, checks the signature, and returns the username.
// Any failure (malformed, bad signature, expired) comes back as one
// INVALID_TOKEN error.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return "", apperr.New(apperr.ErrInvalidToken, "invalid token", err)
	}
	if !token.Valid || claims.Username == "" {
		return "", apperr.New(apperr.ErrInvalidToken, "invalid token", nil)
	}
	return claims.Username, nil
}
