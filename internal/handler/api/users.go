// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/middleware"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

const minPasswordLength = 8

// UserRequest is the request body for creating or updating a user.
// Password is required on create and optional on update.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

func (req *UserRequest) validate(requirePassword bool) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fieldErrors["email"] = "Email is required"
	}
	if !model.ValidRole(req.Role) {
		fieldErrors["role"] = "Role must be admin or user"
	}
	if requirePassword && req.Password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if req.Password != "" && len(req.Password) < minPasswordLength {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListUsers returns all accounts.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		slog.Error("listing users failed", "error", err)
		WriteInternalError(w, "Failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	WriteSuccess(w, users)
}

// GetUser returns a single account by ID.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "User", func(id int64) (model.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, user)
}

// CreateUser creates a new account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(true); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password failed", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Role:         req.Role,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// Unique email constraint is the only expected failure here.
		WriteValidationError(w, map[string]string{"email": "Email already in use"})
		return
	}
	WriteCreated(w, user)
}

// UpdateUser updates an account. When a password is supplied it is rotated
// in the same request.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "User", func(id int64) (model.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(false); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:    existing.ID,
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(strings.ToLower(req.Email)),
		Role:  req.Role,
	})
	if err != nil {
		slog.Error("updating user failed", "error", err, "user_id", existing.ID)
		WriteInternalError(w, "Failed to update user")
		return
	}

	if req.Password != "" {
		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			slog.Error("hashing password failed", "error", err)
			WriteInternalError(w, "Failed to update password")
			return
		}
		if err := h.queries.UpdateUserPassword(r.Context(), user.ID, passwordHash); err != nil {
			slog.Error("rotating password failed", "error", err, "user_id", user.ID)
			WriteInternalError(w, "Failed to update password")
			return
		}
	}
	WriteSuccess(w, user)
}

// DeleteUser removes an account. Self-deletion is rejected so an admin
// cannot lock themselves out.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "User", func(id int64) (model.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if current := middleware.GetUser(r); current != nil && current.ID == existing.ID {
		WriteBadRequest(w, "You cannot delete your own account", nil)
		return
	}

	if err := h.queries.DeleteUser(r.Context(), existing.ID); err != nil {
		slog.Error("deleting user failed", "error", err, "user_id", existing.ID)
		WriteInternalError(w, "Failed to delete user")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}

// ListEvents returns the most recent audit log entries.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListEvents(r.Context(), 200)
	if err != nil {
		slog.Error("listing events failed", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	WriteSuccess(w, events)
}
