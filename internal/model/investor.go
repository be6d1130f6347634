// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Investor represents a league stakeholder and their capital contribution.
type Investor struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Contribution float64   `json:"contribution"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
