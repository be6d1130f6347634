// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const teamColumns = "id, name, city, logo_url, created_at, updated_at"

func scanTeam(row interface{ Scan(...any) error }) (model.Team, error) {
	var t model.Team
	err := row.Scan(&t.ID, &t.Name, &t.City, &t.LogoURL, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTeams returns all teams ordered by name.
func (q *Queries) ListTeams(ctx context.Context) ([]model.Team, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam returns a team by primary key.
func (q *Queries) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	return scanTeam(row)
}

// CreateTeamParams are the fields required to create a team.
type CreateTeamParams struct {
	Name    string
	City    string
	LogoURL string
}

// CreateTeam inserts a new team and returns the stored row.
func (q *Queries) CreateTeam(ctx context.Context, p CreateTeamParams) (model.Team, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO teams (name, city, logo_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.City, p.LogoURL, now, now)
	if err != nil {
		return model.Team{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Team{}, err
	}
	return q.GetTeam(ctx, id)
}

// UpdateTeamParams are the editable fields of a team.
type UpdateTeamParams struct {
	ID      int64
	Name    string
	City    string
	LogoURL string
}

// UpdateTeam updates a team and returns the stored row.
func (q *Queries) UpdateTeam(ctx context.Context, p UpdateTeamParams) (model.Team, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, city = ?, logo_url = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.City, p.LogoURL, time.Now().UTC(), p.ID)
	if err != nil {
		return model.Team{}, err
	}
	return q.GetTeam(ctx, p.ID)
}

// DeleteTeam removes a team. Players pointing at it become unassigned via
// the ON DELETE SET NULL constraint.
func (q *Queries) DeleteTeam(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	return err
}
