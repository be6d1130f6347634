// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/client"
	"github.com/leaguehq/leaguehq/internal/model"
)

// AuthError reports a rejected login or an invalid session token.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Message, e.Err)
	}
	return "auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// Store is the single source of truth for "who is logged in". It holds the
// bearer token and resolved user, persisted through Storage so the session
// survives restarts.
type Store struct {
	baseURL string
	storage Storage
	http    *http.Client

	mu    sync.RWMutex
	token string
	user  *model.User
}

// New creates a Store talking to the league API at baseURL.
func New(baseURL string, storage Storage, httpClient *http.Client) *Store {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		storage: storage,
		http:    httpClient,
	}
}

// loginPayload tolerates both response shapes the API family produces: a
// bare {token, user} object or the same wrapped under data.
type loginPayload struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
	Data  *struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	} `json:"data"`
}

// Login authenticates against the API and persists the session. It returns
// the resolved user, an *AuthError when credentials are rejected or the
// response carries no token, or a *client.NetworkError when the API could
// not be reached at all.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &client.NetworkError{URL: s.baseURL + "/auth/login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Message: fmt.Sprintf("login rejected (status %d)", resp.StatusCode)}
	}

	var payload loginPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &AuthError{Message: "malformed login response", Err: err}
	}
	token, rawUser := payload.Token, payload.User
	if payload.Data != nil && token == "" {
		token, rawUser = payload.Data.Token, payload.Data.User
	}
	if token == "" {
		return nil, &AuthError{Message: "login response carried no token"}
	}

	user, err := resolveUser(token, rawUser)
	if err != nil {
		return nil, &AuthError{Message: "cannot resolve user from login response", Err: err}
	}

	if err := s.persist(token, user); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	s.mu.Lock()
	s.token, s.user = token, user
	s.mu.Unlock()
	return user, nil
}

// resolveUser prefers the server-supplied user object and falls back to
// decoding the identity claims embedded in the token.
func resolveUser(token string, rawUser json.RawMessage) (*model.User, error) {
	if len(rawUser) > 0 && string(rawUser) != "null" {
		var user model.User
		if err := json.Unmarshal(rawUser, &user); err == nil && user.ID != 0 {
			return &user, nil
		}
	}
	return auth.DecodeIdentity(token)
}

// Logout clears persisted and in-memory state unconditionally. It is
// idempotent and never fails the caller over a storage hiccup.
func (s *Store) Logout() {
	if err := s.storage.Delete(KeyToken); err != nil {
		slog.Warn("clearing persisted token failed", "error", err)
	}
	if err := s.storage.Delete(KeyUser); err != nil {
		slog.Warn("clearing persisted user failed", "error", err)
	}
	s.mu.Lock()
	s.token, s.user = "", nil
	s.mu.Unlock()
}

// Bootstrap restores a persisted session at startup. With both a token and a
// user persisted it restores directly; with only a token it asks the API who
// the token belongs to. Any failure downgrades to a clean logged-out state:
// an expired token during background validation is expected, not
// exceptional, so no error is returned for it.
func (s *Store) Bootstrap(ctx context.Context) error {
	token, ok := s.storage.Get(KeyToken)
	if !ok || token == "" {
		s.Logout()
		return nil
	}

	if rawUser, ok := s.storage.Get(KeyUser); ok && rawUser != "" {
		var user model.User
		if err := json.Unmarshal([]byte(rawUser), &user); err == nil && user.ID != 0 {
			s.mu.Lock()
			s.token, s.user = token, &user
			s.mu.Unlock()
			return nil
		}
	}

	user, err := s.whoAmI(ctx, token)
	if err != nil {
		s.Logout()
		return nil
	}
	if err := s.persist(token, user); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	s.mu.Lock()
	s.token, s.user = token, user
	s.mu.Unlock()
	return nil
}

// whoAmI resolves the user behind a token via GET /auth/me.
func (s *Store) whoAmI(ctx context.Context, token string) (*model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Message: fmt.Sprintf("token rejected (status %d)", resp.StatusCode)}
	}

	// Accept both the bare user and the enveloped variant.
	var payload struct {
		model.User
		Data *model.User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	user := payload.User
	if payload.Data != nil && user.ID == 0 {
		user = *payload.Data
	}
	if user.ID == 0 {
		return nil, &AuthError{Message: "empty identity response"}
	}
	return &user, nil
}

func (s *Store) persist(token string, user *model.User) error {
	if err := s.storage.Set(KeyToken, token); err != nil {
		return err
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.storage.Set(KeyUser, string(rawUser))
}

// Token returns the current bearer token, or "" when logged out. It always
// reads live state so a logout between calls is honored immediately.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether the session holds both a token and a user.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}
