// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

const testTokenSecret = "api-test-secret-0123456789abcdef01234"

// testEnv bundles everything handler tests need.
type testEnv struct {
	db     *sql.DB
	issuer *auth.TokenIssuer
	router http.Handler
}

// newTestEnv creates an in-memory database with migrations applied and a
// fully wired router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A pooled in-memory database would open a fresh empty DB per
	// connection, so pin the pool to one.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	issuer := auth.NewTokenIssuer(testTokenSecret)
	return &testEnv{
		db:     db,
		issuer: issuer,
		router: Router(db, issuer),
	}
}

// createUser inserts an account with a real password hash and returns it.
func (e *testEnv) createUser(t *testing.T, name, email, role, password string) model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := store.New(e.db).CreateUser(context.Background(), store.CreateUserParams{
		Name: name, Email: email, Role: role, PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// tokenFor issues a valid bearer token for the user.
func (e *testEnv) tokenFor(t *testing.T, user model.User) string {
	t.Helper()
	token, err := e.issuer.Issue(&user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

// request performs an HTTP request against the router and returns the recorder.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data envelope of a response into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope %q: %v", rec.Body.String(), err)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decoding data %q: %v", envelope.Data, err)
	}
}

// decodeError unmarshals an error response and returns its code.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error %q: %v", rec.Body.String(), err)
	}
	return envelope.Error
}
