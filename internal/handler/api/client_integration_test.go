// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leaguehq/leaguehq/internal/client"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/session"
)

// The client packages are normally exercised against fakes; this test runs
// the auth session and resource client against the real router end to end.
func TestClientStackAgainstRealRouter(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Admin", "admin@example.com", "admin", "admin-pass-123")

	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	storage := session.NewMemoryStorage()
	sess := session.New(srv.URL, storage, srv.Client())

	ctx := context.Background()
	user, err := sess.Login(ctx, "admin@example.com", "admin-pass-123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Role != "admin" {
		t.Fatalf("resolved role = %q, want admin", user.Role)
	}

	teams := client.NewResource[model.Team](srv.URL, "/api/teams", sess, srv.Client())

	created, err := teams.Create(ctx, map[string]any{"name": "Rovers", "city": "Leeds"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.Name != "Rovers" {
		t.Fatalf("created = %+v", created)
	}

	updated, err := teams.Update(ctx, created.ID, map[string]any{"name": "Rovers", "city": "Hull"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.City != "Hull" {
		t.Fatalf("updated = %+v", updated)
	}

	second, err := teams.Create(ctx, map[string]any{"name": "United"})
	if err != nil {
		t.Fatalf("Create second team: %v", err)
	}

	players := client.NewResource[model.Player](srv.URL, "/api/players", sess, srv.Client())
	teamID := created.ID
	player, err := players.Create(ctx, map[string]any{
		"name": "Dane Okafor", "role": "Forward", "base_price": 120000.0, "teamId": teamID,
	})
	if err != nil {
		t.Fatalf("Create player: %v", err)
	}

	moved, err := players.Do(ctx, http.MethodPost, fmt.Sprintf("/%d/transfer", player.ID), model.Transfer{
		ToTeamID: second.ID,
		Price:    150000,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if moved.TeamID == nil || *moved.TeamID != second.ID {
		t.Fatalf("transfer target = %+v", moved.TeamID)
	}
	if moved.CurrentPrice != 150000 {
		t.Fatalf("current price = %v, want 150000", moved.CurrentPrice)
	}
	if moved.BasePrice != 120000 {
		t.Fatalf("base price changed on transfer: %v", moved.BasePrice)
	}

	// A fresh session restores from storage without touching the network.
	restored := session.New(srv.URL, storage, srv.Client())
	if err := restored.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if !restored.IsAuthenticated() {
		t.Fatal("restored session not authenticated")
	}

	// Logout drops the token; subsequent calls come back unauthorized.
	sess.Logout()
	_, err = teams.List(ctx)
	if !client.IsUnauthorized(err) {
		t.Fatalf("List after logout: %v, want unauthorized", err)
	}
}

func TestValidationErrorsReachTheClient(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", "admin", "admin-pass-123")

	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	token := env.tokenFor(t, admin)
	teams := client.NewResource[model.Team](srv.URL, "/api/teams", client.TokenFunc(func() string { return token }), srv.Client())

	_, err := teams.Create(context.Background(), map[string]any{"city": "Leeds"})
	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", httpErr.StatusCode)
	}
	if httpErr.Message == "" {
		t.Fatal("expected a server-supplied message")
	}
}
