// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Revenue represents an income line item (sponsorships, tickets, media).
type Revenue struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
