// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func testUser() *model.User {
	return &model.User{
		ID:    7,
		Name:  "Admin",
		Email: "admin@league.local",
		Role:  model.RoleAdmin,
	}
}

func TestIssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if claims.Subject != "7" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "7")
	}
	if claims.Email != "admin@league.local" {
		t.Errorf("Email = %q, want %q", claims.Email, "admin@league.local")
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, model.RoleAdmin)
	}
	if claims.ID == "" {
		t.Error("jti claim is empty")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer(testSecret).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	other := NewTokenIssuer("another-secret-key-32-bytes-long")
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testSecret, WithNowFunc(func() time.Time { return issued }))

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Same secret, clock moved past the TTL.
	later := NewTokenIssuer(testSecret, WithNowFunc(func() time.Time {
		return issued.Add(TokenTTL + time.Minute)
	}))
	if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	if _, err := issuer.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestDecodeIdentity(t *testing.T) {
	token, err := NewTokenIssuer(testSecret).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	user, err := DecodeIdentity(token)
	if err != nil {
		t.Fatalf("DecodeIdentity() error: %v", err)
	}

	if user.ID != 7 {
		t.Errorf("ID = %d, want 7", user.ID)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleAdmin)
	}
}

func TestDecodeIdentity_DefaultsRole(t *testing.T) {
	noRole := &model.User{ID: 3, Name: "Fan", Email: "fan@league.local"}
	token, err := NewTokenIssuer(testSecret).Issue(noRole)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	user, err := DecodeIdentity(token)
	if err != nil {
		t.Fatalf("DecodeIdentity() error: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("Role = %q, want default %q", user.Role, model.RoleUser)
	}
}
