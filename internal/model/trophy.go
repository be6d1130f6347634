// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Trophy represents a title awarded at the end of a season.
type Trophy struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Season       string    `json:"season"`
	TimesWon     int64     `json:"times_won"`
	WinnerTeamID *int64    `json:"winner_team_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
