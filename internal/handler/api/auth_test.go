// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/leaguehq/leaguehq/internal/model"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin, "secret-pass-1")

	rec := env.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email: "admin@example.com", Password: "secret-pass-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Login responses are bare, not wrapped in the data envelope.
	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("token should not be empty")
	}
	if resp.User.Email != "admin@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}
	if resp.User.Role != model.RoleAdmin {
		t.Errorf("user role = %q", resp.User.Role)
	}

	// The password hash must never leak.
	var raw map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	if user, ok := raw["user"].(map[string]any); ok {
		if _, leaked := user["password_hash"]; leaked {
			t.Error("password_hash leaked in login response")
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin, "secret-pass-1")

	rec := env.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email: "admin@example.com", Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if detail := decodeError(t, rec); detail.Code != "unauthorized" {
		t.Errorf("error code = %q", detail.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email: "ghost@example.com", Password: "whatever1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/login", "", LoginRequest{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Viewer", "viewer@example.com", model.RoleUser, "secret-pass-1")
	token := env.tokenFor(t, user)

	rec := env.request(t, http.MethodGet, "/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// /auth/me returns the bare user object.
	var got model.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != user.ID || got.Role != model.RoleUser {
		t.Errorf("got user %+v, want id=%d role=%s", got, user.ID, model.RoleUser)
	}
}

func TestMeWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLoginRecordsAudit(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin, "secret-pass-1")

	rec := env.request(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email: "admin@example.com", Password: "secret-pass-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d", rec.Code)
	}

	admin := env.createUser(t, "A2", "a2@example.com", model.RoleAdmin, "secret-pass-1")
	token := env.tokenFor(t, admin)
	recEvents := env.request(t, http.MethodGet, "/api/events", token, nil)
	if recEvents.Code != http.StatusOK {
		t.Fatalf("events status = %d", recEvents.Code)
	}
	var events []model.Event
	decodeData(t, recEvents, &events)
	found := false
	for _, e := range events {
		if e.Category == model.EventCategoryAuth && e.Message == "user logged in" {
			found = true
		}
	}
	if !found {
		t.Error("expected an auth audit event after login")
	}
}
