// Package auth issues and validates the maintainer tokens that guard
// the cache-invalidation and index-reload endpoints. Tokens are HS256
// JWTs signed with a secret shared with the verb editor tooling.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

const scopeMaintainer = "maintainer"

// TokenManager generates and validates maintainer JWTs.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

type maintainerClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Generate creates a signed maintainer token with the given subject,
// typically the maintainer's name in the editor tooling.
func (m *TokenManager) Generate(subject string) (string, error) {
	now := time.Now()
	claims := maintainerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scopeMaintainer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a maintainer token and returns its subject.
// Any parse, signature, expiry, issuer, or scope problem maps to
// ErrUnauthorized.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("empty token: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &maintainerClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*maintainerClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}
	if claims.Issuer != m.issuer {
		return "", fmt.Errorf("invalid issuer %q: %w", claims.Issuer, domain.ErrUnauthorized)
	}
	if claims.Scope != scopeMaintainer {
		return "", fmt.Errorf("invalid scope %q: %w", claims.Scope, domain.ErrUnauthorized)
	}

	return claims.Subject, nil
}

// IsExpired reports whether a validation error was caused by token
// expiry, letting the transport hint clients to mint a fresh token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
