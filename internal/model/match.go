// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Match represents a fixture between two teams. Scores and the winner are
// nil until the match has been played.
type Match struct {
	ID           int64     `json:"id"`
	MatchDate    time.Time `json:"match_date"`
	Venue        string    `json:"venue"`
	TeamAID      int64     `json:"team_a_id"`
	TeamBID      int64     `json:"team_b_id"`
	TeamAScore   *int64    `json:"team_a_score"`
	TeamBScore   *int64    `json:"team_b_score"`
	WinnerTeamID *int64    `json:"winner_team_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
