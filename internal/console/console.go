// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console implements the server-rendered league admin console. It
// holds no league data of its own: every page talks to the API server with
// the signed-in user's token, and the browser session only stores that
// token and the resolved user.
package console

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/leaguehq/leaguehq/internal/config"
	"github.com/leaguehq/leaguehq/internal/guard"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/render"
	"github.com/leaguehq/leaguehq/internal/session"
	"github.com/leaguehq/leaguehq/web"
)

type contextKey int

const sessionContextKey contextKey = iota

// Console is the admin console server.
type Console struct {
	cfg      *config.Console
	sessions *scs.SessionManager
	renderer *render.Renderer
	http     *http.Client
}

// New creates a console server talking to the API at cfg.APIBaseURL.
func New(cfg *config.Console, sessions *scs.SessionManager) (*Console, error) {
	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("templates subtree: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sessions,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return &Console{
		cfg:      cfg,
		sessions: sessions,
		renderer: renderer,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// sessionStore builds the per-request auth session backed by the browser
// session. The token is never written to the page; it lives server-side in
// the scs store.
func (c *Console) sessionStore(r *http.Request) *session.Store {
	storage := &scsStorage{manager: c.sessions, ctx: r.Context()}
	return session.New(c.cfg.APIBaseURL, storage, c.http)
}

// currentSession returns the session attached by requireRole.
func currentSession(r *http.Request) *session.Store {
	sess, _ := r.Context().Value(sessionContextKey).(*session.Store)
	return sess
}

// currentUser returns the signed-in user, or nil on auth pages.
func currentUser(r *http.Request) *model.User {
	if sess := currentSession(r); sess != nil {
		return sess.User()
	}
	return nil
}

// requireRole restores the auth session and gates the page on the role
// check. An empty role admits any signed-in user. Roles match exactly:
// an admin visiting a user-only page is turned away, not admitted.
func (c *Console) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := c.sessionStore(r)
			if err := sess.Bootstrap(r.Context()); err != nil {
				// Bootstrap failures end in a clean logged-out state.
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			switch guard.Check(sess.User(), role) {
			case guard.Allow:
				ctx := context.WithValue(r.Context(), sessionContextKey, sess)
				next.ServeHTTP(w, r.WithContext(ctx))
			case guard.RedirectLogin:
				c.renderer.SetFlash(r, "Please sign in to continue.", "info")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			case guard.RedirectUnauthorized:
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
			}
		})
	}
}

// Router builds the console's route tree.
func (c *Console) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(c.sessions.LoadAndSave)

	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	r.Get("/login", c.LoginForm)
	r.Post("/login", c.Login)
	r.Post("/logout", c.Logout)
	r.Get("/unauthorized", c.Unauthorized)

	// Match results are visible to both roles.
	r.Group(func(r chi.Router) {
		r.Use(c.requireRole(""))
		r.Get("/", c.Dashboard)
		registerResourceList(r, c, matchesDef())
	})

	// League administration. Match edits stay admin-only even though the
	// list page above is shared.
	r.Group(func(r chi.Router) {
		r.Use(c.requireRole(model.RoleAdmin))
		registerResourceWrites(r, c, matchesDef())
		registerResource(r, c, teamsDef())
		registerResource(r, c, playersDef())
		registerResource(r, c, trophiesDef())
		registerResource(r, c, revenuesDef())
		registerResource(r, c, investorsDef())
		registerResource(r, c, usersDef())
		r.Post("/players/transfer", c.TransferPlayer)
		r.Get("/events", c.Events)
	})

	return r
}
