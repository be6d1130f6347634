// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/leaguehq/leaguehq/internal/client"
	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/render"
)

// dashboardView is the template data of the landing page.
type dashboardView struct {
	Matches []model.Match
	Teams   map[int64]string
}

// Dashboard shows the upcoming and recent fixtures. Both fetches are
// best-effort: a failing API leaves the page empty rather than broken.
func (c *Console) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	view := dashboardView{Teams: make(map[int64]string)}

	matches := client.NewResource[model.Match](c.cfg.APIBaseURL, "/api/matches", sess, c.http)
	list, err := matches.List(r.Context())
	if err != nil {
		slog.Warn("dashboard match fetch failed", "error", err)
	} else {
		if len(list) > 10 {
			list = list[:10]
		}
		view.Matches = list
	}

	teams := client.NewResource[model.Team](c.cfg.APIBaseURL, "/api/teams", sess, c.http)
	if teamList, err := teams.List(r.Context()); err == nil {
		for _, team := range teamList {
			view.Teams[team.ID] = team.Name
		}
	}

	err = c.renderer.Render(w, r, "console/dashboard", render.TemplateData{
		Title:  "Dashboard",
		Data:   view,
		User:   sess.User(),
		Active: "dashboard",
	})
	if err != nil {
		slog.Error("rendering dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Events shows the audit log, newest first.
func (c *Console) Events(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	events := client.NewResource[model.Event](c.cfg.APIBaseURL, "/api/events", sess, c.http)
	list, err := events.List(r.Context())
	if err != nil {
		slog.Warn("event log fetch failed", "error", err)
		c.renderer.SetFlash(r, "Could not load the event log.", "error")
	}

	err = c.renderer.Render(w, r, "console/events", render.TemplateData{
		Title:  "Events",
		Data:   list,
		User:   sess.User(),
		Active: "events",
	})
	if err != nil {
		slog.Error("rendering events page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// TransferPlayer moves a player to another team at a new price.
func (c *Console) TransferPlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.flashError(w, r, "/players", "Invalid form data.")
		return
	}

	playerID, err := strconv.ParseInt(r.FormValue("player_id"), 10, 64)
	if err != nil {
		c.flashError(w, r, "/players", "Invalid player ID.")
		return
	}
	toTeamID, err := strconv.ParseInt(r.FormValue("to_team_id"), 10, 64)
	if err != nil {
		c.flashError(w, r, "/players", "Pick a destination team.")
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		c.flashError(w, r, "/players", "Invalid transfer price.")
		return
	}

	sess := currentSession(r)
	players := client.NewResource[model.Player](c.cfg.APIBaseURL, "/api/players", sess, c.http)
	payload := model.Transfer{ToTeamID: toTeamID, Price: price}
	player, err := players.Do(r.Context(), http.MethodPost, fmt.Sprintf("/%d/transfer", playerID), payload)
	if err != nil {
		var httpErr *client.HTTPError
		message := "Transfer failed."
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			message = httpErr.Message
		}
		c.flashError(w, r, "/players", message)
		return
	}

	c.renderer.SetFlash(r, player.Name+" transferred.", "success")
	http.Redirect(w, r, "/players", http.StatusSeeOther)
}
