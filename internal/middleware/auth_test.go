// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "league-mw-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, role string) model.User {
	t.Helper()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Name:         "Test " + role,
		Email:        role + "@example.com",
		Role:         role,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// okHandler echoes the context user's email so tests can verify propagation.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if user := GetUser(r); user != nil {
		w.Write([]byte(user.Email))
		return
	}
	w.Write([]byte("no user"))
})

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return apiErr.Error.Code
}

func TestBearerAuthMissingHeader(t *testing.T) {
	db := testDB(t)
	issuer := auth.NewTokenIssuer(testSecret)
	handler := BearerAuth(issuer, db)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "unauthorized" {
		t.Errorf("error code = %q, want unauthorized", code)
	}
}

func TestBearerAuthBadToken(t *testing.T) {
	db := testDB(t)
	issuer := auth.NewTokenIssuer(testSecret)
	handler := BearerAuth(issuer, db)(okHandler)

	for _, header := range []string{
		"Bearer not-a-jwt",
		"Basic dXNlcjpwYXNz",
		"Bearer",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestBearerAuthValidToken(t *testing.T) {
	db := testDB(t)
	issuer := auth.NewTokenIssuer(testSecret)
	user := createTestUser(t, db, model.RoleAdmin)
	token, err := issuer.Issue(&user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := BearerAuth(issuer, db)(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %q", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != user.Email {
		t.Errorf("body = %q, want context user email %q", rec.Body.String(), user.Email)
	}
}

func TestBearerAuthDeletedUser(t *testing.T) {
	db := testDB(t)
	issuer := auth.NewTokenIssuer(testSecret)
	user := createTestUser(t, db, model.RoleUser)
	token, err := issuer.Issue(&user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := store.New(db).DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	handler := BearerAuth(issuer, db)(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deleted account", rec.Code)
	}
}

func TestRequireRoleExactMatch(t *testing.T) {
	db := testDB(t)
	issuer := auth.NewTokenIssuer(testSecret)
	admin := createTestUser(t, db, model.RoleAdmin)
	regular := createTestUser(t, db, model.RoleUser)

	tests := []struct {
		name     string
		user     model.User
		required string
		want     int
	}{
		{"admin on admin route", admin, model.RoleAdmin, http.StatusOK},
		{"user on user route", regular, model.RoleUser, http.StatusOK},
		{"user on admin route", regular, model.RoleAdmin, http.StatusForbidden},
		// Roles are flat: admin is not a superset of user.
		{"admin on user route", admin, model.RoleUser, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.Issue(&tt.user)
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			handler := BearerAuth(issuer, db)(RequireRole(tt.required)(okHandler))
			req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	handler := RequireRole(model.RoleAdmin)(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 with no user in context", rec.Code)
	}
}
