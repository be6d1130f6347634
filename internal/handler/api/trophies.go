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

// TrophyRequest is the request body for creating or updating a trophy.
type TrophyRequest struct {
	Title        string `json:"title"`
	Season       string `json:"season"`
	TimesWon     int64  `json:"times_won"`
	WinnerTeamID *int64 `json:"winner_team_id"`
}

func (req *TrophyRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.TimesWon < 0 {
		fieldErrors["times_won"] = "Times won must not be negative"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListTrophies returns all trophies.
func (h *Handler) ListTrophies(w http.ResponseWriter, r *http.Request) {
	trophies, err := h.queries.ListTrophies(r.Context())
	if err != nil {
		slog.Error("listing trophies failed", "error", err)
		WriteInternalError(w, "Failed to list trophies")
		return
	}
	if trophies == nil {
		trophies = []model.Trophy{}
	}
	WriteSuccess(w, trophies)
}

// GetTrophy returns a single trophy by ID.
func (h *Handler) GetTrophy(w http.ResponseWriter, r *http.Request) {
	trophy, ok := requireEntityByID(w, r, "Trophy", func(id int64) (model.Trophy, error) {
		return h.queries.GetTrophy(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, trophy)
}

// CreateTrophy creates a new trophy.
func (h *Handler) CreateTrophy(w http.ResponseWriter, r *http.Request) {
	var req TrophyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}
	if req.WinnerTeamID != nil && !h.teamExists(w, r, "winner_team_id", *req.WinnerTeamID) {
		return
	}

	trophy, err := h.queries.CreateTrophy(r.Context(), store.CreateTrophyParams{
		Title:        strings.TrimSpace(req.Title),
		Season:       strings.TrimSpace(req.Season),
		TimesWon:     req.TimesWon,
		WinnerTeamID: req.WinnerTeamID,
	})
	if err != nil {
		slog.Error("creating trophy failed", "error", err)
		WriteInternalError(w, "Failed to create trophy")
		return
	}
	WriteCreated(w, trophy)
}

// UpdateTrophy updates an existing trophy.
func (h *Handler) UpdateTrophy(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Trophy", func(id int64) (model.Trophy, error) {
		return h.queries.GetTrophy(r.Context(), id)
	})
	if !ok {
		return
	}

	var req TrophyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}
	if req.WinnerTeamID != nil && !h.teamExists(w, r, "winner_team_id", *req.WinnerTeamID) {
		return
	}

	trophy, err := h.queries.UpdateTrophy(r.Context(), store.UpdateTrophyParams{
		ID:           existing.ID,
		Title:        strings.TrimSpace(req.Title),
		Season:       strings.TrimSpace(req.Season),
		TimesWon:     req.TimesWon,
		WinnerTeamID: req.WinnerTeamID,
	})
	if err != nil {
		slog.Error("updating trophy failed", "error", err, "trophy_id", existing.ID)
		WriteInternalError(w, "Failed to update trophy")
		return
	}
	WriteSuccess(w, trophy)
}

// DeleteTrophy removes a trophy.
func (h *Handler) DeleteTrophy(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Trophy", func(id int64) (model.Trophy, error) {
		return h.queries.GetTrophy(r.Context(), id)
	})
	if !ok {
		return
	}
	if err := h.queries.DeleteTrophy(r.Context(), existing.ID); err != nil {
		slog.Error("deleting trophy failed", "error", err, "trophy_id", existing.ID)
		WriteInternalError(w, "Failed to delete trophy")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}
