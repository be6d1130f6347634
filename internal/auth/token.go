// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/leaguehq/leaguehq/internal/model"
)

// TokenTTL is the lifetime of an issued access token.
const TokenTTL = 8 * time.Hour

// ErrInvalidToken is returned when a bearer token fails validation for any
// reason (bad signature, expired, malformed claims).
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a league access token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 access tokens.
type TokenIssuer struct {
	secret  []byte
	nowFunc func() time.Time
}

// IssuerOption configures a TokenIssuer.
type IssuerOption func(*TokenIssuer)

// WithNowFunc overrides the issuer clock (primarily for testing).
func WithNowFunc(now func() time.Time) IssuerOption {
	return func(ti *TokenIssuer) {
		ti.nowFunc = now
	}
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret.
func NewTokenIssuer(secret string, options ...IssuerOption) *TokenIssuer {
	ti := &TokenIssuer{
		secret:  []byte(secret),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(ti)
	}
	return ti
}

// Issue creates a signed access token for the user.
func (ti *TokenIssuer) Issue(user *model.User) (string, error) {
	now := ti.nowFunc()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate parses a signed token and returns its claims.
func (ti *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	}, jwt.WithTimeFunc(ti.nowFunc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DecodeIdentity extracts the user identity from a token without verifying
// its signature. The console falls back to this when a login response carries
// a token but no user object; the API remains the authority because every
// subsequent request revalidates the token server-side.
func DecodeIdentity(tokenString string) (*model.User, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var id int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &id); err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	role := claims.Role
	if role == "" {
		role = model.RoleUser
	}

	return &model.User{
		ID:    id,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  role,
	}, nil
}
