// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

// MatchRequest is the request body for creating or updating a match.
// MatchDate accepts RFC 3339 timestamps.
type MatchRequest struct {
	MatchDate    string `json:"match_date"`
	Venue        string `json:"venue"`
	TeamAID      int64  `json:"team_a_id"`
	TeamBID      int64  `json:"team_b_id"`
	TeamAScore   *int64 `json:"team_a_score"`
	TeamBScore   *int64 `json:"team_b_score"`
	WinnerTeamID *int64 `json:"winner_team_id"`
}

func (req *MatchRequest) validate() (time.Time, map[string]string) {
	fieldErrors := make(map[string]string)

	matchDate, err := time.Parse(time.RFC3339, req.MatchDate)
	if err != nil {
		// Date-only input comes from the console's date picker.
		matchDate, err = time.Parse("2006-01-02", req.MatchDate)
	}
	if err != nil {
		fieldErrors["match_date"] = "Match date must be RFC 3339 or YYYY-MM-DD"
	}
	if req.TeamAID == 0 {
		fieldErrors["team_a_id"] = "Home team is required"
	}
	if req.TeamBID == 0 {
		fieldErrors["team_b_id"] = "Away team is required"
	}
	if req.TeamAID != 0 && req.TeamAID == req.TeamBID {
		fieldErrors["team_b_id"] = "A team cannot play itself"
	}
	if req.WinnerTeamID != nil && *req.WinnerTeamID != req.TeamAID && *req.WinnerTeamID != req.TeamBID {
		fieldErrors["winner_team_id"] = "Winner must be one of the playing teams"
	}
	if len(fieldErrors) > 0 {
		return time.Time{}, fieldErrors
	}
	return matchDate, nil
}

// ListMatches returns all matches.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.queries.ListMatches(r.Context())
	if err != nil {
		slog.Error("listing matches failed", "error", err)
		WriteInternalError(w, "Failed to list matches")
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	WriteSuccess(w, matches)
}

// GetMatch returns a single match by ID.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, ok := requireEntityByID(w, r, "Match", func(id int64) (model.Match, error) {
		return h.queries.GetMatch(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, match)
}

// CreateMatch schedules a new match.
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	matchDate, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}
	if !h.teamExists(w, r, "team_a_id", req.TeamAID) || !h.teamExists(w, r, "team_b_id", req.TeamBID) {
		return
	}

	match, err := h.queries.CreateMatch(r.Context(), store.CreateMatchParams{
		MatchDate:    matchDate,
		Venue:        req.Venue,
		TeamAID:      req.TeamAID,
		TeamBID:      req.TeamBID,
		TeamAScore:   req.TeamAScore,
		TeamBScore:   req.TeamBScore,
		WinnerTeamID: req.WinnerTeamID,
	})
	if err != nil {
		slog.Error("creating match failed", "error", err)
		WriteInternalError(w, "Failed to create match")
		return
	}
	WriteCreated(w, match)
}

// UpdateMatch updates an existing match, typically to record scores.
func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Match", func(id int64) (model.Match, error) {
		return h.queries.GetMatch(r.Context(), id)
	})
	if !ok {
		return
	}

	var req MatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	matchDate, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}
	if !h.teamExists(w, r, "team_a_id", req.TeamAID) || !h.teamExists(w, r, "team_b_id", req.TeamBID) {
		return
	}

	match, err := h.queries.UpdateMatch(r.Context(), store.UpdateMatchParams{
		ID:           existing.ID,
		MatchDate:    matchDate,
		Venue:        req.Venue,
		TeamAID:      req.TeamAID,
		TeamBID:      req.TeamBID,
		TeamAScore:   req.TeamAScore,
		TeamBScore:   req.TeamBScore,
		WinnerTeamID: req.WinnerTeamID,
	})
	if err != nil {
		slog.Error("updating match failed", "error", err, "match_id", existing.ID)
		WriteInternalError(w, "Failed to update match")
		return
	}
	WriteSuccess(w, match)
}

// DeleteMatch removes a match.
func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Match", func(id int64) (model.Match, error) {
		return h.queries.GetMatch(r.Context(), id)
	})
	if !ok {
		return
	}
	if err := h.queries.DeleteMatch(r.Context(), existing.ID); err != nil {
		slog.Error("deleting match failed", "error", err, "match_id", existing.ID)
		WriteInternalError(w, "Failed to delete match")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}
