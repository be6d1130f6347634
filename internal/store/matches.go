// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const matchColumns = `id, match_date, venue, team_a_id, team_b_id,
	team_a_score, team_b_score, winner_team_id, created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }) (model.Match, error) {
	var (
		m      model.Match
		scoreA sql.NullInt64
		scoreB sql.NullInt64
		winner sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.MatchDate, &m.Venue, &m.TeamAID, &m.TeamBID,
		&scoreA, &scoreB, &winner, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Match{}, err
	}
	m.TeamAScore = nullInt64(scoreA)
	m.TeamBScore = nullInt64(scoreB)
	m.WinnerTeamID = nullInt64(winner)
	return m, nil
}

// ListMatches returns all matches, most recent fixture first.
func (q *Queries) ListMatches(ctx context.Context) ([]model.Match, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches ORDER BY match_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// GetMatch returns a match by primary key.
func (q *Queries) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	return scanMatch(row)
}

// CreateMatchParams are the fields required to schedule a match.
type CreateMatchParams struct {
	MatchDate    time.Time
	Venue        string
	TeamAID      int64
	TeamBID      int64
	TeamAScore   *int64
	TeamBScore   *int64
	WinnerTeamID *int64
}

// CreateMatch inserts a new match and returns the stored row.
func (q *Queries) CreateMatch(ctx context.Context, p CreateMatchParams) (model.Match, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO matches (match_date, venue, team_a_id, team_b_id, team_a_score,
		 team_b_score, winner_team_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.MatchDate, p.Venue, p.TeamAID, p.TeamBID, int64Null(p.TeamAScore),
		int64Null(p.TeamBScore), int64Null(p.WinnerTeamID), now, now)
	if err != nil {
		return model.Match{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Match{}, err
	}
	return q.GetMatch(ctx, id)
}

// UpdateMatchParams are the editable fields of a match.
type UpdateMatchParams struct {
	ID           int64
	MatchDate    time.Time
	Venue        string
	TeamAID      int64
	TeamBID      int64
	TeamAScore   *int64
	TeamBScore   *int64
	WinnerTeamID *int64
}

// UpdateMatch updates a match and returns the stored row.
func (q *Queries) UpdateMatch(ctx context.Context, p UpdateMatchParams) (model.Match, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE matches SET match_date = ?, venue = ?, team_a_id = ?, team_b_id = ?,
		 team_a_score = ?, team_b_score = ?, winner_team_id = ?, updated_at = ? WHERE id = ?`,
		p.MatchDate, p.Venue, p.TeamAID, p.TeamBID, int64Null(p.TeamAScore),
		int64Null(p.TeamBScore), int64Null(p.WinnerTeamID), time.Now().UTC(), p.ID)
	if err != nil {
		return model.Match{}, err
	}
	return q.GetMatch(ctx, p.ID)
}

// DeleteMatch removes a match.
func (q *Queries) DeleteMatch(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	return err
}
