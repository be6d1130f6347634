// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Team represents a league franchise.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamSummary is the minimal team shape embedded in player listings.
type TeamSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}
