// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Player represents a squad member. TeamID is nil for unassigned players.
// Listings embed the owning team under the legacy "Team" key so existing
// console tables keep working.
type Player struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	BasePrice    float64      `json:"base_price"`
	CurrentPrice float64      `json:"current_price"`
	TeamID       *int64       `json:"teamId"`
	Team         *TeamSummary `json:"Team,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Transfer is the payload of the player transfer action.
type Transfer struct {
	ToTeamID int64   `json:"to_team_id"`
	Price    float64 `json:"price"`
}
