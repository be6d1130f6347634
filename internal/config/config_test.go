// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoadAPI_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "LEAGUE_TOKEN_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := LoadAPI()
	if err != nil {
		t.Fatalf("LoadAPI() error: %v", err)
	}

	if cfg.DBPath != "./data/league.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/league.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 5000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 5000)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
}

func TestLoadAPI_RequiredTokenSecret(t *testing.T) {
	os.Clearenv()

	_, err := LoadAPI()
	if err == nil {
		t.Fatal("LoadAPI() should fail when LEAGUE_TOKEN_SECRET is not set")
	}
}

func TestLoadAPI_TokenSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "LEAGUE_TOKEN_SECRET", tt.secret)

			_, err := LoadAPI()
			if err == nil {
				t.Fatalf("LoadAPI() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoadConsole_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConsole()
	if err != nil {
		t.Fatalf("LoadConsole() error: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://localhost:5000")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
}

func TestLoadConsole_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "LEAGUE_API_URL", "https://api.example.com")
	setEnv(t, "LEAGUE_CONSOLE_PORT", "3000")

	cfg, err := LoadConsole()
	if err != nil {
		t.Fatalf("LoadConsole() error: %v", err)
	}

	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "https://api.example.com")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
}

func TestAPI_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 5000, "localhost:5000"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := API{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPI_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := API{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}
