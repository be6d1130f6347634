// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/leaguehq/leaguehq/internal/model"
)

const investorColumns = "id, name, contribution, created_at, updated_at"

func scanInvestor(row interface{ Scan(...any) error }) (model.Investor, error) {
	var i model.Investor
	err := row.Scan(&i.ID, &i.Name, &i.Contribution, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// ListInvestors returns all investors ordered by name.
func (q *Queries) ListInvestors(ctx context.Context) ([]model.Investor, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+investorColumns+` FROM investors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investors []model.Investor
	for rows.Next() {
		i, err := scanInvestor(rows)
		if err != nil {
			return nil, err
		}
		investors = append(investors, i)
	}
	return investors, rows.Err()
}

// GetInvestor returns an investor by primary key.
func (q *Queries) GetInvestor(ctx context.Context, id int64) (model.Investor, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+investorColumns+` FROM investors WHERE id = ?`, id)
	return scanInvestor(row)
}

// CreateInvestorParams are the fields required to create an investor.
type CreateInvestorParams struct {
	Name         string
	Contribution float64
}

// CreateInvestor inserts a new investor and returns the stored row.
func (q *Queries) CreateInvestor(ctx context.Context, p CreateInvestorParams) (model.Investor, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO investors (name, contribution, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.Name, p.Contribution, now, now)
	if err != nil {
		return model.Investor{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Investor{}, err
	}
	return q.GetInvestor(ctx, id)
}

// UpdateInvestorParams are the editable fields of an investor.
type UpdateInvestorParams struct {
	ID           int64
	Name         string
	Contribution float64
}

// UpdateInvestor updates an investor and returns the stored row.
func (q *Queries) UpdateInvestor(ctx context.Context, p UpdateInvestorParams) (model.Investor, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE investors SET name = ?, contribution = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Contribution, time.Now().UTC(), p.ID)
	if err != nil {
		return model.Investor{}, err
	}
	return q.GetInvestor(ctx, p.ID)
}

// DeleteInvestor removes an investor.
func (q *Queries) DeleteInvestor(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM investors WHERE id = ?`, id)
	return err
}
