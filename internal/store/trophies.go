// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const trophyColumns = "id, title, season, times_won, winner_team_id, created_at, updated_at"

func scanTrophy(row interface{ Scan(...any) error }) (model.Trophy, error) {
	var (
		t      model.Trophy
		winner sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Title, &t.Season, &t.TimesWon, &winner, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Trophy{}, err
	}
	t.WinnerTeamID = nullInt64(winner)
	return t, nil
}

// ListTrophies returns all trophies ordered by title.
func (q *Queries) ListTrophies(ctx context.Context) ([]model.Trophy, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+trophyColumns+` FROM trophies ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trophies []model.Trophy
	for rows.Next() {
		t, err := scanTrophy(rows)
		if err != nil {
			return nil, err
		}
		trophies = append(trophies, t)
	}
	return trophies, rows.Err()
}

// GetTrophy returns a trophy by primary key.
func (q *Queries) GetTrophy(ctx context.Context, id int64) (model.Trophy, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+trophyColumns+` FROM trophies WHERE id = ?`, id)
	return scanTrophy(row)
}

// CreateTrophyParams are the fields required to create a trophy.
type CreateTrophyParams struct {
	Title        string
	Season       string
	TimesWon     int64
	WinnerTeamID *int64
}

// CreateTrophy inserts a new trophy and returns the stored row.
func (q *Queries) CreateTrophy(ctx context.Context, p CreateTrophyParams) (model.Trophy, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO trophies (title, season, times_won, winner_team_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Season, p.TimesWon, int64Null(p.WinnerTeamID), now, now)
	if err != nil {
		return model.Trophy{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Trophy{}, err
	}
	return q.GetTrophy(ctx, id)
}

// UpdateTrophyParams are the editable fields of a trophy.
type UpdateTrophyParams struct {
	ID           int64
	Title        string
	Season       string
	TimesWon     int64
	WinnerTeamID *int64
}

// UpdateTrophy updates a trophy and returns the stored row.
func (q *Queries) UpdateTrophy(ctx context.Context, p UpdateTrophyParams) (model.Trophy, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE trophies SET title = ?, season = ?, times_won = ?, winner_team_id = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Season, p.TimesWon, int64Null(p.WinnerTeamID), time.Now().UTC(), p.ID)
	if err != nil {
		return model.Trophy{}, err
	}
	return q.GetTrophy(ctx, p.ID)
}

// DeleteTrophy removes a trophy.
func (q *Queries) DeleteTrophy(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM trophies WHERE id = ?`, id)
	return err
}
