// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

// PlayerRequest is the request body for creating or updating a player.
type PlayerRequest struct {
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	BasePrice float64 `json:"base_price"`
	TeamID    *int64  `json:"teamId"`
}

// TransferRequest is the request body for the player transfer action.
type TransferRequest struct {
	ToTeamID int64   `json:"to_team_id"`
	Price    float64 `json:"price"`
}

func (req *PlayerRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.BasePrice < 0 {
		fieldErrors["base_price"] = "Base price must not be negative"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// teamExists verifies a referenced team ID. On failure the response has
// already been written.
func (h *Handler) teamExists(w http.ResponseWriter, r *http.Request, field string, id int64) bool {
	_, err := h.queries.GetTeam(r.Context(), id)
	if err == nil {
		return true
	}
	if errors.Is(err, sql.ErrNoRows) {
		WriteValidationError(w, map[string]string{field: "Team does not exist"})
	} else {
		WriteInternalError(w, "Failed to verify team")
	}
	return false
}

// ListPlayers returns all players with their team summaries.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.queries.ListPlayers(r.Context())
	if err != nil {
		slog.Error("listing players failed", "error", err)
		WriteInternalError(w, "Failed to list players")
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	WriteSuccess(w, players)
}

// GetPlayer returns a single player by ID.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, ok := requireEntityByID(w, r, "Player", func(id int64) (model.Player, error) {
		return h.queries.GetPlayer(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, player)
}

// CreatePlayer creates a new player.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}
	if req.TeamID != nil && !h.teamExists(w, r, "teamId", *req.TeamID) {
		return
	}

	player, err := h.queries.CreatePlayer(r.Context(), store.CreatePlayerParams{
		Name:      strings.TrimSpace(req.Name),
		Role:      strings.TrimSpace(req.Role),
		BasePrice: req.BasePrice,
		TeamID:    req.TeamID,
	})
	if err != nil {
		slog.Error("creating player failed", "error", err)
		WriteInternalError(w, "Failed to create player")
		return
	}
	WriteCreated(w, player)
}

// UpdatePlayer updates an existing player.
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Player", func(id int64) (model.Player, error) {
		return h.queries.GetPlayer(r.Context(), id)
	})
	if !ok {
		return
	}

	var req PlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}
	if req.TeamID != nil && !h.teamExists(w, r, "teamId", *req.TeamID) {
		return
	}

	player, err := h.queries.UpdatePlayer(r.Context(), store.UpdatePlayerParams{
		ID:        existing.ID,
		Name:      strings.TrimSpace(req.Name),
		Role:      strings.TrimSpace(req.Role),
		BasePrice: req.BasePrice,
		TeamID:    req.TeamID,
	})
	if err != nil {
		slog.Error("updating player failed", "error", err, "player_id", existing.ID)
		WriteInternalError(w, "Failed to update player")
		return
	}
	WriteSuccess(w, player)
}

// TransferPlayer moves a player to another team at a negotiated price.
func (h *Handler) TransferPlayer(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Player", func(id int64) (model.Player, error) {
		return h.queries.GetPlayer(r.Context(), id)
	})
	if !ok {
		return
	}

	var req TransferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fieldErrors := make(map[string]string)
	if req.ToTeamID == 0 {
		fieldErrors["to_team_id"] = "Destination team is required"
	}
	if req.Price < 0 {
		fieldErrors["price"] = "Price must not be negative"
	}
	if existing.TeamID != nil && *existing.TeamID == req.ToTeamID {
		fieldErrors["to_team_id"] = "Player already belongs to this team"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}
	if !h.teamExists(w, r, "to_team_id", req.ToTeamID) {
		return
	}

	player, err := h.queries.TransferPlayer(r.Context(), existing.ID, req.ToTeamID, req.Price)
	if err != nil {
		slog.Error("player transfer failed", "error", err, "player_id", existing.ID)
		WriteInternalError(w, "Failed to transfer player")
		return
	}

	_ = h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Level:    model.EventLevelInfo,
		Category: model.EventCategoryLeague,
		Message:  "player transferred",
		IP:       clientIP(r),
		Path:     r.URL.Path,
	})
	WriteSuccess(w, player)
}

// DeletePlayer removes a player.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Player", func(id int64) (model.Player, error) {
		return h.queries.GetPlayer(r.Context(), id)
	})
	if !ok {
		return
	}
	if err := h.queries.DeletePlayer(r.Context(), existing.ID); err != nil {
		slog.Error("deleting player failed", "error", err, "player_id", existing.ID)
		WriteInternalError(w, "Failed to delete player")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}
