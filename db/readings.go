/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"time"
)

const upsertReadingQuery = `
	INSERT INTO readings (id, member_id, test_name, reading_date, value, unit, ideal_min, ideal_max, reason, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		member_id = excluded.member_id,
		test_name = excluded.test_name,
		reading_date = excluded.reading_date,
		value = excluded.value,
		unit = excluded.unit,
		ideal_min = excluded.ideal_min,
		ideal_max = excluded.ideal_max,
		reason = excluded.reason,
		notes = excluded.notes,
		updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
`

const selectReadingColumns = `id, member_id, test_name, reading_date, value, unit, ideal_min, ideal_max, reason, notes`

// UpdateReadingInput represents a partial reading update. Only value, date,
// notes and reason are mutable post-creation; identity and ownership are not.
type UpdateReadingInput struct {
	Value  *float64
	Date   *time.Time
	Notes  *string
	Reason *string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(scanner rowScanner) (TestReading, error) {
	var (
		reading TestReading
		date    string
	)

	err := scanner.Scan(
		&reading.ID, &reading.MemberID, &reading.TestName, &date,
		&reading.Value, &reading.Unit, &reading.IdealMin, &reading.IdealMax,
		&reading.Reason, &reading.Notes,
	)
	if err != nil {
		return reading, err
	}

	reading.Date, err = parseTime(date)
	if err != nil {
		return reading, err
	}

	return reading, nil
}

func validateReading(reading TestReading) error {
	switch {
	case reading.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidReading)
	case reading.MemberID == "":
		return fmt.Errorf("%w: missing member id", ErrInvalidReading)
	case reading.TestName == "":
		return fmt.Errorf("%w: missing test name", ErrInvalidReading)
	case reading.Date.IsZero():
		return fmt.Errorf("%w: missing date", ErrInvalidReading)
	}

	return nil
}

// ListReadingsByMember returns every reading owned by the member, unordered.
// Callers sort as needed.
func ListReadingsByMember(ctx context.Context, memberID string) ([]TestReading, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	query := `
		SELECT ` + selectReadingColumns + `
		FROM readings
		WHERE member_id = ?
	`

	rows, err := database.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var readings []TestReading

	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}

		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}

	return readings, nil
}

func listAllReadings(ctx context.Context) ([]TestReading, error) {
	query := `
		SELECT ` + selectReadingColumns + `
		FROM readings
	`

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var readings []TestReading

	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}

		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}

	return readings, nil
}

func upsertReading(ctx context.Context, e execer, reading TestReading) error {
	_, err := e.ExecContext(ctx, upsertReadingQuery,
		reading.ID, reading.MemberID, reading.TestName, formatTime(reading.Date),
		reading.Value, reading.Unit, reading.IdealMin, reading.IdealMax,
		reading.Reason, reading.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reading: %w", err)
	}

	return nil
}

// SaveReading inserts or replaces one reading by id. When no test reference
// exists for the reading's test name, one is derived from the reading as a
// side effect; the reading's persistence is the primary success criterion,
// so a derivation failure is logged and never fails the save.
func SaveReading(ctx context.Context, reading TestReading) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	if err := validateReading(reading); err != nil {
		return err
	}

	if err := upsertReading(ctx, database, reading); err != nil {
		return err
	}

	if err := ensureTestReference(ctx, reading); err != nil {
		logger.Warn("Failed to derive test reference", "test", reading.TestName, "error", err)
	}

	return nil
}

// SaveReadings saves a batch of readings in one transaction: either every
// reading in the batch is persisted or none is. Reference derivation runs
// after commit, once per distinct test name, on the same best-effort basis
// as SaveReading.
func SaveReadings(ctx context.Context, readings []TestReading) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	if len(readings) == 0 {
		return nil
	}

	for _, reading := range readings {
		if err := validateReading(reading); err != nil {
			return err
		}
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, reading := range readings {
		if err := upsertReading(ctx, tx, reading); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit readings batch: %w", err)
	}

	derived := make(map[string]struct{}, len(readings))

	for _, reading := range readings {
		key := normalizeTestName(reading.TestName)
		if _, ok := derived[key]; ok {
			continue
		}

		derived[key] = struct{}{}

		if err := ensureTestReference(ctx, reading); err != nil {
			logger.Warn("Failed to derive test reference", "test", reading.TestName, "error", err)
		}
	}

	return nil
}

// UpdateReading merges the given fields onto the existing reading by id.
// Updating a missing id is a silent no-op.
func UpdateReading(ctx context.Context, id string, input UpdateReadingInput) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	query := `
		UPDATE readings
		SET value = COALESCE(?, value),
		    reading_date = COALESCE(?, reading_date),
		    notes = COALESCE(?, notes),
		    reason = COALESCE(?, reason),
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`

	var date *string
	if input.Date != nil {
		formatted := formatTime(*input.Date)
		date = &formatted
	}

	if _, err := database.ExecContext(ctx, query, input.Value, date, input.Notes, input.Reason, id); err != nil {
		return fmt.Errorf("failed to update reading: %w", err)
	}

	return nil
}

// DeleteReading removes one reading by id. Deleting a missing id is a
// silent no-op.
func DeleteReading(ctx context.Context, id string) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	if _, err := database.ExecContext(ctx, `DELETE FROM readings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
	}

	return nil
}

// DeleteReadings removes every reading in the id set within one transaction.
func DeleteReadings(ctx context.Context, ids []string) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	if len(ids) == 0 {
		return nil
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM readings WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete reading: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit readings deletion: %w", err)
	}

	return nil
}

// DeleteReadingsByTest removes every reading of the given test for one
// member. The test name match is exact string equality.
func DeleteReadingsByTest(ctx context.Context, memberID, testName string) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	query := `
		DELETE FROM readings
		WHERE member_id = ? AND test_name = ?
	`

	if _, err := database.ExecContext(ctx, query, memberID, testName); err != nil {
		return fmt.Errorf("failed to delete readings by test: %w", err)
	}

	return nil
}
