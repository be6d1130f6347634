// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/model"
)

// SeedParams carry the bootstrap admin credentials from config.
type SeedParams struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Seed creates the initial admin account if it does not exist yet.
func Seed(ctx context.Context, db *sql.DB, p SeedParams) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, p.AdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(p.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Name:         p.AdminName,
		Email:        p.AdminEmail,
		Role:         model.RoleAdmin,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user", "id", user.ID, "email", user.Email)
	return nil
}

// SeedDemo populates an empty database with a small league so the console has
// something to show on first run. It is a no-op when teams already exist.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	teams, err := queries.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("listing teams: %w", err)
	}
	if len(teams) > 0 {
		return nil
	}

	slog.Info("seeding demo league data")

	demoTeams := []CreateTeamParams{
		{Name: "Harbor City FC", City: "Harbor City"},
		{Name: "Northgate United", City: "Northgate"},
		{Name: "Riverton Rovers", City: "Riverton"},
	}
	ids := make([]int64, 0, len(demoTeams))
	for _, dt := range demoTeams {
		team, err := queries.CreateTeam(ctx, dt)
		if err != nil {
			return fmt.Errorf("seeding team %q: %w", dt.Name, err)
		}
		ids = append(ids, team.ID)
	}

	demoPlayers := []CreatePlayerParams{
		{Name: "Dane Okafor", Role: "Forward", BasePrice: 120000, TeamID: &ids[0]},
		{Name: "Luca Moretti", Role: "Midfielder", BasePrice: 95000, TeamID: &ids[0]},
		{Name: "Sam Vikander", Role: "Goalkeeper", BasePrice: 80000, TeamID: &ids[1]},
		{Name: "Ravi Chandran", Role: "Defender", BasePrice: 70000, TeamID: &ids[2]},
		{Name: "Free agent", Role: "Forward", BasePrice: 50000},
	}
	for _, dp := range demoPlayers {
		if _, err := queries.CreatePlayer(ctx, dp); err != nil {
			return fmt.Errorf("seeding player %q: %w", dp.Name, err)
		}
	}

	if _, err := queries.CreateInvestor(ctx, CreateInvestorParams{
		Name: "Meridian Holdings", Contribution: 2500000,
	}); err != nil {
		return fmt.Errorf("seeding investor: %w", err)
	}
	if _, err := queries.CreateRevenue(ctx, CreateRevenueParams{
		Source: "Season tickets", Amount: 480000,
	}); err != nil {
		return fmt.Errorf("seeding revenue: %w", err)
	}

	return nil
}
