// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/leaguehq/leaguehq/internal/model"
)

func createTeam(t *testing.T, env *testEnv, token, name string) model.Team {
	t.Helper()
	rec := env.request(t, http.MethodPost, "/api/teams", token, TeamRequest{Name: name, City: name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating team %q: status %d body %s", name, rec.Code, rec.Body.String())
	}
	var team model.Team
	decodeData(t, rec, &team)
	return team
}

func TestCreatePlayerEmbedsTeam(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	team := createTeam(t, env, token, "Rovers")

	rec := env.request(t, http.MethodPost, "/api/players", token, PlayerRequest{
		Name: "Dane Okafor", Role: "Forward", BasePrice: 120000, TeamID: &team.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var player model.Player
	decodeData(t, rec, &player)
	if player.CurrentPrice != 120000 {
		t.Errorf("CurrentPrice = %v, want base price", player.CurrentPrice)
	}
	if player.Team == nil || player.Team.Name != "Rovers" {
		t.Errorf("Team = %+v, want embedded Rovers summary", player.Team)
	}
}

func TestCreatePlayerRejectsUnknownTeam(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)

	ghost := int64(999)
	rec := env.request(t, http.MethodPost, "/api/players", token, PlayerRequest{
		Name: "Nobody", Role: "Forward", BasePrice: 1, TeamID: &ghost,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if detail := decodeError(t, rec); detail.Details["teamId"] == "" {
		t.Errorf("details = %v, want teamId error", detail.Details)
	}
}

func TestTransferPlayer(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	from := createTeam(t, env, token, "From FC")
	to := createTeam(t, env, token, "To FC")

	rec := env.request(t, http.MethodPost, "/api/players", token, PlayerRequest{
		Name: "P", Role: "Midfielder", BasePrice: 100, TeamID: &from.ID,
	})
	var player model.Player
	decodeData(t, rec, &player)

	path := fmt.Sprintf("/api/players/%d/transfer", player.ID)
	rec = env.request(t, http.MethodPost, path, token, TransferRequest{ToTeamID: to.ID, Price: 250})
	if rec.Code != http.StatusOK {
		t.Fatalf("transfer status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeData(t, rec, &player)
	if player.TeamID == nil || *player.TeamID != to.ID {
		t.Errorf("TeamID = %v, want %d", player.TeamID, to.ID)
	}
	if player.CurrentPrice != 250 {
		t.Errorf("CurrentPrice = %v, want 250", player.CurrentPrice)
	}
	if player.BasePrice != 100 {
		t.Errorf("BasePrice = %v, want unchanged", player.BasePrice)
	}
}

func TestTransferToSameTeamRejected(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	team := createTeam(t, env, token, "Only FC")

	rec := env.request(t, http.MethodPost, "/api/players", token, PlayerRequest{
		Name: "P", Role: "Defender", BasePrice: 10, TeamID: &team.ID,
	})
	var player model.Player
	decodeData(t, rec, &player)

	path := fmt.Sprintf("/api/players/%d/transfer", player.ID)
	rec = env.request(t, http.MethodPost, path, token, TransferRequest{ToTeamID: team.ID, Price: 20})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for same-team transfer", rec.Code)
	}
}

func TestMatchValidation(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, env)
	a := createTeam(t, env, token, "A")
	b := createTeam(t, env, token, "B")

	// A team cannot play itself.
	rec := env.request(t, http.MethodPost, "/api/matches", token, MatchRequest{
		MatchDate: "2026-09-12", TeamAID: a.ID, TeamBID: a.ID,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("self-match status = %d, want 422", rec.Code)
	}

	// Winner must be a participant.
	winner := int64(99)
	rec = env.request(t, http.MethodPost, "/api/matches", token, MatchRequest{
		MatchDate: "2026-09-12", TeamAID: a.ID, TeamBID: b.ID, WinnerTeamID: &winner,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad-winner status = %d, want 422", rec.Code)
	}

	// Date-only form is accepted.
	rec = env.request(t, http.MethodPost, "/api/matches", token, MatchRequest{
		MatchDate: "2026-09-12", Venue: "Harbor Stadium", TeamAID: a.ID, TeamBID: b.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var match model.Match
	decodeData(t, rec, &match)
	if match.TeamAScore != nil || match.WinnerTeamID != nil {
		t.Errorf("unplayed match should have nil scores, got %+v", match)
	}
}
