// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "league-logging-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func lastEvent(t *testing.T, db *sql.DB) model.Event {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	return events[0]
}

func TestEventLogHandlerErrorLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Error("database connection lost", "attempts", "3")

	e := lastEvent(t, db)
	if e.Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", e.Level, model.EventLevelError)
	}
	if e.Message != "database connection lost" {
		t.Errorf("Message = %q", e.Message)
	}
	if e.Metadata != `{"attempts":"3"}` {
		t.Errorf("Metadata = %q", e.Metadata)
	}
}

func TestEventLogHandlerInfoNotStored(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Info("routine startup message")

	events, err := store.New(db).ListEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("len(events) = %d, INFO should not be stored", len(events))
	}
}

func TestEventLogHandlerExplicitCategory(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("suspicious request rejected", "category", model.EventCategoryAuth)

	e := lastEvent(t, db)
	if e.Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryAuth)
	}
}

func TestEventLogHandlerInferredCategory(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	tests := []struct {
		message string
		want    string
	}{
		{"login failed for user", model.EventCategoryAuth},
		{"player transfer rejected", model.EventCategoryLeague},
		{"disk almost full", model.EventCategorySystem},
	}
	for _, tt := range tests {
		logger.Warn(tt.message)
		if e := lastEvent(t, db); e.Category != tt.want {
			t.Errorf("category for %q = %q, want %q", tt.message, e.Category, tt.want)
		}
	}
}
