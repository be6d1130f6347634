// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/middleware"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the response body for a successful login. Unlike the
// entity endpoints it is not wrapped in the data envelope: callers read
// token and user at the top level.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates a user by email and password and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		})
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.recordFailedLogin(r, req.Email)
			WriteUnauthorized(w, "Invalid email or password")
			return
		}
		slog.Error("login lookup failed", "error", err)
		WriteInternalError(w, "Failed to authenticate")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.recordFailedLogin(r, req.Email)
		WriteUnauthorized(w, "Invalid email or password")
		return
	}

	token, err := h.issuer.Issue(&user)
	if err != nil {
		slog.Error("token issue failed", "error", err, "user_id", user.ID)
		WriteInternalError(w, "Failed to authenticate")
		return
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
		slog.Error("updating last login failed", "error", err, "user_id", user.ID)
	}
	_ = h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Level:    model.EventLevelInfo,
		Category: model.EventCategoryAuth,
		Message:  "user logged in",
		UserID:   &user.ID,
		IP:       clientIP(r),
		Path:     r.URL.Path,
	})

	WriteJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// Me returns the authenticated user. The response is the bare user object.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) recordFailedLogin(r *http.Request, email string) {
	slog.Warn("login failed", "category", model.EventCategoryAuth, "email", email, "ip", clientIP(r))
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
