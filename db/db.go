/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/IAmSurajBobade/openHealth/logging"

	// Register the pure-Go sqlite driver with database/sql.
	_ "modernc.org/sqlite"
)

var (
	database *sql.DB
	logger   = logging.Logger(logging.SourceDB)
)

// execer is satisfied by *sql.DB and *sql.Tx, so entity upserts can run
// standalone or inside a composite transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Init opens the on-device database file, creating it if absent.
func Init(ctx context.Context, path string) error {
	if path == "" {
		return ErrDatabasePathNotSet
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: one active writer at a time, matching the
	// single-user usage model.
	handle.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := handle.ExecContext(ctx, pragma); err != nil {
			_ = handle.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	database = handle

	return nil
}

// DB returns the database handle.
func DB() *sql.DB {
	return database
}

// Close closes the database handle.
func Close() {
	if database == nil {
		return
	}

	if err := database.Close(); err != nil {
		logger.Warn("Failed to close database", "error", err)
	}

	database = nil
}

// Timestamps are stored as ISO-8601 text so the on-disk format matches the
// snapshot interchange format.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}

	return t, nil
}
