// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// MinTokenSecretLength is the minimum required length for the token signing
// secret. HS256 keys shorter than 32 bytes are trivially brute-forced.
const MinTokenSecretLength = 32

// API holds the configuration of the league API server.
type API struct {
	DBPath      string `env:"LEAGUE_DB_PATH" envDefault:"./data/league.db"`
	TokenSecret string `env:"LEAGUE_TOKEN_SECRET,required"`
	ServerHost  string `env:"LEAGUE_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"LEAGUE_SERVER_PORT" envDefault:"5000"`
	Env         string `env:"LEAGUE_ENV" envDefault:"development"`
	LogLevel    string `env:"LEAGUE_LOG_LEVEL" envDefault:"info"`

	// Seeding configuration. The admin password is only consulted when the
	// users table is empty.
	DoSeed        bool   `env:"LEAGUE_DO_SEED" envDefault:"true"`
	AdminEmail    string `env:"LEAGUE_ADMIN_EMAIL" envDefault:"admin@league.local"`
	AdminPassword string `env:"LEAGUE_ADMIN_PASSWORD" envDefault:"admin1234"`
}

// Console holds the configuration of the admin console server.
type Console struct {
	APIBaseURL    string `env:"LEAGUE_API_URL" envDefault:"http://localhost:5000"`
	SessionDBPath string `env:"LEAGUE_CONSOLE_SESSION_DB" envDefault:"./data/console.db"`
	ServerHost    string `env:"LEAGUE_CONSOLE_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"LEAGUE_CONSOLE_PORT" envDefault:"8080"`
	Env           string `env:"LEAGUE_ENV" envDefault:"development"`
	LogLevel      string `env:"LEAGUE_LOG_LEVEL" envDefault:"info"`
}

// IsDevelopment returns true if the API server runs in development mode.
func (c API) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c API) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// IsDevelopment returns true if the console runs in development mode.
func (c Console) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full console address in host:port format.
func (c Console) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// LoadAPI parses environment variables into an API config.
func LoadAPI() (*API, error) {
	cfg := &API{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("LEAGUE_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	return cfg, nil
}

// LoadConsole parses environment variables into a Console config.
func LoadConsole() (*Console, error) {
	cfg := &Console{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
