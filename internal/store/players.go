// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const playerColumns = `p.id, p.name, p.role, p.base_price, p.current_price, p.team_id,
	p.created_at, p.updated_at, t.id, t.name, t.city`

func scanPlayer(row interface{ Scan(...any) error }) (model.Player, error) {
	var (
		p        model.Player
		teamID   sql.NullInt64
		tID      sql.NullInt64
		tName    sql.NullString
		tCity    sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Role, &p.BasePrice, &p.CurrentPrice, &teamID,
		&p.CreatedAt, &p.UpdatedAt, &tID, &tName, &tCity)
	if err != nil {
		return model.Player{}, err
	}
	p.TeamID = nullInt64(teamID)
	if tID.Valid {
		p.Team = &model.TeamSummary{ID: tID.Int64, Name: tName.String, City: tCity.String}
	}
	return p, nil
}

const playerSelect = `SELECT ` + playerColumns + `
	FROM players p LEFT JOIN teams t ON t.id = p.team_id`

// ListPlayers returns all players with their team summary, ordered by name.
func (q *Queries) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := q.db.QueryContext(ctx, playerSelect+` ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayer returns a player by primary key.
func (q *Queries) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	row := q.db.QueryRowContext(ctx, playerSelect+` WHERE p.id = ?`, id)
	return scanPlayer(row)
}

// CreatePlayerParams are the fields required to create a player.
type CreatePlayerParams struct {
	Name      string
	Role      string
	BasePrice float64
	TeamID    *int64
}

// CreatePlayer inserts a new player. The current price starts at the base
// price and only changes through transfers.
func (q *Queries) CreatePlayer(ctx context.Context, p CreatePlayerParams) (model.Player, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO players (name, role, base_price, current_price, team_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Role, p.BasePrice, p.BasePrice, int64Null(p.TeamID), now, now)
	if err != nil {
		return model.Player{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Player{}, err
	}
	return q.GetPlayer(ctx, id)
}

// UpdatePlayerParams are the editable fields of a player.
type UpdatePlayerParams struct {
	ID        int64
	Name      string
	Role      string
	BasePrice float64
	TeamID    *int64
}

// UpdatePlayer updates a player and returns the stored row.
func (q *Queries) UpdatePlayer(ctx context.Context, p UpdatePlayerParams) (model.Player, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE players SET name = ?, role = ?, base_price = ?, team_id = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Role, p.BasePrice, int64Null(p.TeamID), time.Now().UTC(), p.ID)
	if err != nil {
		return model.Player{}, err
	}
	return q.GetPlayer(ctx, p.ID)
}

// TransferPlayer moves a player to a new team at the given price. The price
// becomes the player's current price.
func (q *Queries) TransferPlayer(ctx context.Context, id, toTeamID int64, price float64) (model.Player, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE players SET team_id = ?, current_price = ?, updated_at = ? WHERE id = ?`,
		toTeamID, price, time.Now().UTC(), id)
	if err != nil {
		return model.Player{}, err
	}
	return q.GetPlayer(ctx, id)
}

// DeletePlayer removes a player.
func (q *Queries) DeletePlayer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	return err
}
