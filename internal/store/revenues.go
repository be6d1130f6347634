// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const revenueColumns = "id, source, amount, created_at, updated_at"

func scanRevenue(row interface{ Scan(...any) error }) (model.Revenue, error) {
	var r model.Revenue
	err := row.Scan(&r.ID, &r.Source, &r.Amount, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// ListRevenues returns all revenue entries, newest first.
func (q *Queries) ListRevenues(ctx context.Context) ([]model.Revenue, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+revenueColumns+` FROM revenues ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenues []model.Revenue
	for rows.Next() {
		r, err := scanRevenue(rows)
		if err != nil {
			return nil, err
		}
		revenues = append(revenues, r)
	}
	return revenues, rows.Err()
}

// GetRevenue returns a revenue entry by primary key.
func (q *Queries) GetRevenue(ctx context.Context, id int64) (model.Revenue, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+revenueColumns+` FROM revenues WHERE id = ?`, id)
	return scanRevenue(row)
}

// CreateRevenueParams are the fields required to record a revenue entry.
type CreateRevenueParams struct {
	Source string
	Amount float64
}

// CreateRevenue inserts a new revenue entry and returns the stored row.
func (q *Queries) CreateRevenue(ctx context.Context, p CreateRevenueParams) (model.Revenue, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO revenues (source, amount, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.Source, p.Amount, now, now)
	if err != nil {
		return model.Revenue{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Revenue{}, err
	}
	return q.GetRevenue(ctx, id)
}

// UpdateRevenueParams are the editable fields of a revenue entry.
type UpdateRevenueParams struct {
	ID     int64
	Source string
	Amount float64
}

// UpdateRevenue updates a revenue entry and returns the stored row.
func (q *Queries) UpdateRevenue(ctx context.Context, p UpdateRevenueParams) (model.Revenue, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE revenues SET source = ?, amount = ?, updated_at = ? WHERE id = ?`,
		p.Source, p.Amount, time.Now().UTC(), p.ID)
	if err != nil {
		return model.Revenue{}, err
	}
	return q.GetRevenue(ctx, p.ID)
}

// DeleteRevenue removes a revenue entry.
func (q *Queries) DeleteRevenue(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM revenues WHERE id = ?`, id)
	return err
}
