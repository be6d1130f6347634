// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const eventColumns = "id, level, category, message, user_id, ip, path, metadata, created_at"

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e      model.Event
		userID sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &userID,
		&e.IP, &e.Path, &e.Metadata, &e.CreatedAt)
	if err != nil {
		return model.Event{}, err
	}
	e.UserID = nullInt64(userID)
	return e, nil
}

// CreateEventParams are the fields of an audit log entry.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	UserID   *int64
	IP       string
	Path     string
	Metadata string
}

// CreateEvent appends an entry to the audit log.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) error {
	if p.Metadata == "" {
		p.Metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, user_id, ip, path, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Level, p.Category, p.Message, int64Null(p.UserID), p.IP, p.Path, p.Metadata,
		time.Now().UTC())
	return err
}

// ListEvents returns the most recent audit log entries, up to limit.
func (q *Queries) ListEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
