// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/leaguehq/leaguehq/internal/model"
)

func TestCreateUserAndLogin(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	rec := env.request(t, http.MethodPost, "/api/users", token, UserRequest{
		Name: "New Admin", Email: "NEW@Example.com", Role: model.RoleAdmin, Password: "long-enough-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var user model.User
	decodeData(t, rec, &user)
	if user.Email != "new@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}

	// The fresh account can log in.
	login := env.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email: "new@example.com", Password: "long-enough-1",
	})
	if login.Code != http.StatusOK {
		t.Errorf("login status = %d", login.Code)
	}
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	tests := []struct {
		name string
		req  UserRequest
		want string
	}{
		{"missing password", UserRequest{Name: "X", Email: "x@example.com", Role: model.RoleUser}, "password"},
		{"short password", UserRequest{Name: "X", Email: "x@example.com", Role: model.RoleUser, Password: "short"}, "password"},
		{"bad role", UserRequest{Name: "X", Email: "x@example.com", Role: "owner", Password: "long-enough-1"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/users", token, tt.req)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
			if detail := decodeError(t, rec); detail.Details[tt.want] == "" {
				t.Errorf("details = %v, want %q error", detail.Details, tt.want)
			}
		})
	}
}

func TestDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	req := UserRequest{Name: "X", Email: "dup@example.com", Role: model.RoleUser, Password: "long-enough-1"}
	if rec := env.request(t, http.MethodPost, "/api/users", token, req); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}
	rec := env.request(t, http.MethodPost, "/api/users", token, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate create status = %d, want 422", rec.Code)
	}
}

func TestSelfDeleteRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin, "secret-pass-1")
	token := env.tokenFor(t, admin)

	rec := env.request(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for self-delete", rec.Code)
	}
}
