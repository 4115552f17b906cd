// Package auth issues and verifies the signed tokens carrying identity
// and role, and gates HTTP routes on a minimum required role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dizzie/internal/api"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = time.Hour

var (
	// ErrMissingToken signals a request without any credentials.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken signals a token that failed verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Version  int    `json:"version"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	now    func() time.Time
}

// NewManager builds a Manager. The secret must be non-empty.
func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	return &Manager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for the given identity, expiring after TokenTTL.
func (m *Manager) Issue(username string, role Role) (string, error) {
	now := m.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		Version:  api.Version,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
func (m *Manager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
