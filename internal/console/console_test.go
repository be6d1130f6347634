// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/config"
	"github.com/leaguehq/leaguehq/internal/handler/api"
	"github.com/leaguehq/leaguehq/internal/store"
)

const (
	testSecret    = "console-test-secret-0123456789abcdef"
	adminEmail    = "admin@league.test"
	adminPassword = "admin-pass-123"
	userEmail     = "viewer@league.test"
	userPassword  = "viewer-pass-123"
)

// consoleEnv runs the real API server and the console on top of it.
type consoleEnv struct {
	t       *testing.T
	db      *sql.DB
	console *httptest.Server
	client  *http.Client
}

func newConsoleEnv(t *testing.T) *consoleEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	// A pooled :memory: connection would open a second empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.SeedParams{
		AdminName:     "Admin",
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	if err := store.SeedDemo(ctx, db); err != nil {
		t.Fatalf("seeding demo data: %v", err)
	}
	createViewer(t, db)

	issuer := auth.NewTokenIssuer(testSecret)
	apiServer := httptest.NewServer(api.Router(db, issuer))
	t.Cleanup(apiServer.Close)

	sessions := scs.New()
	c, err := New(&config.Console{APIBaseURL: apiServer.URL, Env: "test"}, sessions)
	if err != nil {
		t.Fatalf("creating console: %v", err)
	}
	consoleServer := httptest.NewServer(c.Router())
	t.Cleanup(consoleServer.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}

	return &consoleEnv{
		t:       t,
		db:      db,
		console: consoleServer,
		client:  &http.Client{Jar: jar},
	}
}

func createViewer(t *testing.T, db *sql.DB) {
	t.Helper()
	hash, err := auth.HashPassword(userPassword)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	_, err = store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Name:         "Viewer",
		Email:        userEmail,
		Role:         "user",
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("creating viewer: %v", err)
	}
}

// get fetches a console page, following redirects, and returns the final
// URL path and body.
func (e *consoleEnv) get(path string) (string, string) {
	e.t.Helper()
	resp, err := e.client.Get(e.console.URL + path)
	if err != nil {
		e.t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e.t.Fatalf("reading body: %v", err)
	}
	return resp.Request.URL.Path, string(body)
}

func (e *consoleEnv) post(path string, form url.Values) (string, string) {
	e.t.Helper()
	resp, err := e.client.PostForm(e.console.URL+path, form)
	if err != nil {
		e.t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e.t.Fatalf("reading body: %v", err)
	}
	return resp.Request.URL.Path, string(body)
}

func (e *consoleEnv) login(email, password string) {
	e.t.Helper()
	path, body := e.post("/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if path != "/" {
		e.t.Fatalf("login landed on %s: %s", path, snippet(body))
	}
}

func snippet(body string) string {
	if len(body) > 200 {
		return body[:200]
	}
	return body
}

func TestLoginPage(t *testing.T) {
	env := newConsoleEnv(t)

	_, body := env.get("/login")
	if !strings.Contains(body, `action="/login"`) {
		t.Errorf("login page missing form: %s", snippet(body))
	}
}

func TestRedirectsToLoginWhenSignedOut(t *testing.T) {
	env := newConsoleEnv(t)

	path, _ := env.get("/teams")
	if path != "/login" {
		t.Errorf("signed-out request landed on %s, want /login", path)
	}
}

func TestLoginAndDashboard(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	path, body := env.get("/")
	if path != "/" {
		t.Fatalf("dashboard redirected to %s", path)
	}
	if !strings.Contains(body, "Admin (admin)") {
		t.Errorf("dashboard missing account info: %s", snippet(body))
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newConsoleEnv(t)

	path, _ := env.post("/login", url.Values{
		"email":    {adminEmail},
		"password": {"wrong-password"},
	})
	if path != "/login" {
		t.Errorf("failed login landed on %s, want /login", path)
	}
	// Still signed out.
	path, _ = env.get("/teams")
	if path != "/login" {
		t.Errorf("request after failed login landed on %s, want /login", path)
	}
}

func TestTeamsPageListsSeededTeams(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	_, body := env.get("/teams")
	if !strings.Contains(body, "Add new") {
		t.Errorf("teams page missing editor: %s", snippet(body))
	}
}

func TestCreateTeamRoundTrip(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	path, body := env.post("/teams/save", url.Values{
		"name": {"Harbour City FC"},
		"city": {"Harbour City"},
	})
	if path != "/teams" {
		t.Fatalf("save landed on %s", path)
	}
	if !strings.Contains(body, "Team saved.") {
		t.Errorf("missing success flash: %s", snippet(body))
	}
	if !strings.Contains(body, "Harbour City FC") {
		t.Errorf("new team not listed: %s", snippet(body))
	}
}

func TestInvalidDraftKeepsFormValues(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	// Name is required; the typed city must survive the round trip.
	_, body := env.post("/teams/save", url.Values{
		"name": {""},
		"city": {"Port Meadow"},
	})
	if !strings.Contains(body, `value="Port Meadow"`) {
		t.Errorf("draft lost after invalid save: %s", snippet(body))
	}
	if !strings.Contains(body, "required") {
		t.Errorf("missing validation flash: %s", snippet(body))
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	_, before := env.get("/investors")

	_, body := env.post("/investors/delete", url.Values{"id": {"1"}})
	if !strings.Contains(body, "Deletion needs confirmation.") {
		t.Errorf("missing confirmation flash: %s", snippet(body))
	}
	_, after := env.get("/investors")
	if strings.Count(after, "<tr>") != strings.Count(before, "<tr>") {
		t.Error("unconfirmed delete changed the list")
	}
}

func TestUserRoleCannotOpenAdminPages(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(userEmail, userPassword)

	path, _ := env.get("/teams")
	if path != "/unauthorized" {
		t.Errorf("viewer opened /teams via %s, want /unauthorized", path)
	}

	// Matches stay readable for the viewer role.
	path, body := env.get("/matches")
	if path != "/matches" {
		t.Fatalf("viewer match page landed on %s", path)
	}
	if strings.Contains(body, "Add new") {
		t.Errorf("viewer sees the match editor: %s", snippet(body))
	}
}

func TestUserRoleCannotSubmitMatchWrites(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(userEmail, userPassword)

	path, _ := env.post("/matches/save", url.Values{
		"match_date": {"2026-09-01"},
		"team_a_id":  {"1"},
		"team_b_id":  {"2"},
	})
	if path != "/unauthorized" {
		t.Errorf("viewer match save landed on %s, want /unauthorized", path)
	}

	path, _ = env.post("/matches/delete", url.Values{"id": {"1"}, "confirm": {"yes"}})
	if path != "/unauthorized" {
		t.Errorf("viewer match delete landed on %s, want /unauthorized", path)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	path, _ := env.post("/logout", url.Values{})
	if path != "/login" {
		t.Fatalf("logout landed on %s", path)
	}
	path, _ = env.get("/teams")
	if path != "/login" {
		t.Errorf("request after logout landed on %s, want /login", path)
	}
}

func TestPlayerTransferFromConsole(t *testing.T) {
	env := newConsoleEnv(t)
	env.login(adminEmail, adminPassword)

	// Demo data assigns player 1 to team 1; move them to team 2.
	path, body := env.post("/players/transfer", url.Values{
		"player_id":  {"1"},
		"to_team_id": {"2"},
		"price":      {"900000"},
	})
	if path != "/players" {
		t.Fatalf("transfer landed on %s", path)
	}
	if !strings.Contains(body, "transferred.") {
		t.Errorf("missing transfer flash: %s", snippet(body))
	}
}
