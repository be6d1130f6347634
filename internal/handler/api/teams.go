// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

// TeamRequest is the request body for creating or updating a team.
type TeamRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	LogoURL string `json:"logo_url"`
}

func (req *TeamRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListTeams returns all teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.queries.ListTeams(r.Context())
	if err != nil {
		slog.Error("listing teams failed", "error", err)
		WriteInternalError(w, "Failed to list teams")
		return
	}
	if teams == nil {
		teams = []model.Team{}
	}
	WriteSuccess(w, teams)
}

// GetTeam returns a single team by ID.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, ok := requireEntityByID(w, r, "Team", func(id int64) (model.Team, error) {
		return h.queries.GetTeam(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, team)
}

// CreateTeam creates a new team.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	team, err := h.queries.CreateTeam(r.Context(), store.CreateTeamParams{
		Name:    strings.TrimSpace(req.Name),
		City:    strings.TrimSpace(req.City),
		LogoURL: strings.TrimSpace(req.LogoURL),
	})
	if err != nil {
		slog.Error("creating team failed", "error", err)
		WriteInternalError(w, "Failed to create team")
		return
	}
	WriteCreated(w, team)
}

// UpdateTeam updates an existing team.
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Team", func(id int64) (model.Team, error) {
		return h.queries.GetTeam(r.Context(), id)
	})
	if !ok {
		return
	}

	var req TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	team, err := h.queries.UpdateTeam(r.Context(), store.UpdateTeamParams{
		ID:      existing.ID,
		Name:    strings.TrimSpace(req.Name),
		City:    strings.TrimSpace(req.City),
		LogoURL: strings.TrimSpace(req.LogoURL),
	})
	if err != nil {
		slog.Error("updating team failed", "error", err, "team_id", existing.ID)
		WriteInternalError(w, "Failed to update team")
		return
	}
	WriteSuccess(w, team)
}

// DeleteTeam removes a team.
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Team", func(id int64) (model.Team, error) {
		return h.queries.GetTeam(r.Context(), id)
	})
	if !ok {
		return
	}
	if err := h.queries.DeleteTeam(r.Context(), existing.ID); err != nil {
		slog.Error("deleting team failed", "error", err, "team_id", existing.ID)
		WriteInternalError(w, "Failed to delete team")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}
