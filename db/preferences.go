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
)

// The preferences collection holds one singleton record under a fixed key.
const preferencesKey = "user"

const savePreferencesQuery = `
	INSERT INTO preferences (key, sort_members_by, filter_members_query, sort_tests_by, filter_tests_query)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET
		sort_members_by = excluded.sort_members_by,
		filter_members_query = excluded.filter_members_query,
		sort_tests_by = excluded.sort_tests_by,
		filter_tests_query = excluded.filter_tests_query,
		updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
`

const selectPreferencesQuery = `
	SELECT sort_members_by, filter_members_query, sort_tests_by, filter_tests_query
	FROM preferences
	WHERE key = ?
`

// GetPreferences returns the singleton preferences record, or the zero
// value when none has ever been saved. Absence is not an error.
func GetPreferences(ctx context.Context) (UserPreferences, error) {
	var prefs UserPreferences

	if database == nil {
		return prefs, ErrDatabaseNotInitialized
	}

	err := database.QueryRowContext(ctx, selectPreferencesQuery, preferencesKey).Scan(
		&prefs.SortMembersBy, &prefs.FilterMembersQuery,
		&prefs.SortTestsBy, &prefs.FilterTestsQuery,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserPreferences{}, nil
		}

		return prefs, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// SavePreferences merges the given fields into the stored singleton:
// read-then-merge-then-write, so unspecified (nil) fields survive.
func SavePreferences(ctx context.Context, input UserPreferences) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var merged UserPreferences

	err = tx.QueryRowContext(ctx, selectPreferencesQuery, preferencesKey).Scan(
		&merged.SortMembersBy, &merged.FilterMembersQuery,
		&merged.SortTestsBy, &merged.FilterTestsQuery,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	if input.SortMembersBy != nil {
		merged.SortMembersBy = input.SortMembersBy
	}

	if input.FilterMembersQuery != nil {
		merged.FilterMembersQuery = input.FilterMembersQuery
	}

	if input.SortTestsBy != nil {
		merged.SortTestsBy = input.SortTestsBy
	}

	if input.FilterTestsQuery != nil {
		merged.FilterTestsQuery = input.FilterTestsQuery
	}

	if err := replacePreferences(ctx, tx, merged); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}

	return nil
}

// replacePreferences overwrites the whole singleton. Used by SavePreferences
// after merging, and by full-profile import where the payload is
// authoritative.
func replacePreferences(ctx context.Context, e execer, prefs UserPreferences) error {
	_, err := e.ExecContext(ctx, savePreferencesQuery,
		preferencesKey,
		prefs.SortMembersBy, prefs.FilterMembersQuery,
		prefs.SortTestsBy, prefs.FilterTestsQuery,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}
