// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/leaguehq/leaguehq/internal/render"
	"github.com/leaguehq/leaguehq/internal/session"
)

// flashError stores an error flash and redirects.
func (c *Console) flashError(w http.ResponseWriter, r *http.Request, target, message string) {
	c.renderer.SetFlash(r, message, "error")
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LoginForm renders the login page. Already-authenticated users go straight
// to the dashboard.
func (c *Console) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess := c.sessionStore(r)
	if err := sess.Bootstrap(r.Context()); err == nil && sess.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := c.renderer.Render(w, r, "auth/login", render.TemplateData{Title: "Sign in"}); err != nil {
		slog.Error("rendering login page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login handles the login form submission.
func (c *Console) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.flashError(w, r, "/login", "Invalid form data.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		c.flashError(w, r, "/login", "Email and password are required.")
		return
	}

	sess := c.sessionStore(r)
	if _, err := sess.Login(r.Context(), email, password); err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			c.flashError(w, r, "/login", "Invalid email or password.")
			return
		}
		slog.Error("login request failed", "error", err)
		c.flashError(w, r, "/login", "The league API is unreachable. Try again shortly.")
		return
	}

	// New privilege level, new session token.
	if err := c.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout signs the user out and destroys the browser session. Logout never
// fails: whatever state the session was in, it ends signed out.
func (c *Console) Logout(w http.ResponseWriter, r *http.Request) {
	sess := c.sessionStore(r)
	sess.Logout()

	if err := c.sessions.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Unauthorized renders the page shown when a signed-in user opens a page
// their role does not grant.
func (c *Console) Unauthorized(w http.ResponseWriter, r *http.Request) {
	if err := c.renderer.Render(w, r, "auth/unauthorized", render.TemplateData{Title: "Not allowed"}); err != nil {
		slog.Error("rendering unauthorized page", "error", err)
	}
}
