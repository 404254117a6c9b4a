/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"strings"
)

const upsertTestReferenceQuery = `
	INSERT INTO test_references (id, test_name, category, unit, ideal_min, ideal_max)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		test_name = excluded.test_name,
		category = excluded.category,
		unit = excluded.unit,
		ideal_min = excluded.ideal_min,
		ideal_max = excluded.ideal_max,
		updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
`

// normalizeTestName lower-cases the name and collapses whitespace runs, so
// "Hemoglobin" and " hemoglobin " compare equal at every lookup site.
func normalizeTestName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// DeriveTestReferenceID returns the deterministic id used for a reference
// derived from a test name: lower-cased, whitespace collapsed to hyphens.
func DeriveTestReferenceID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ptr is a helper to create pointers to literals in the default catalog.
func ptr[T any](v T) *T {
	return &v
}

// DefaultTestReferences returns the fixed default catalog used to seed an
// empty store. Ideal bounds follow common adult reference ranges.
func DefaultTestReferences() []TestReference {
	defs := []TestReference{
		// ===== COMPLETE BLOOD COUNT =====
		{TestName: "White blood cells", Category: ptr("CBC"), Unit: "x10^3/uL", IdealMin: ptr(4.5), IdealMax: ptr(11.0)},
		{TestName: "Red blood cells", Category: ptr("CBC"), Unit: "x10^6/uL", IdealMin: ptr(4.0), IdealMax: ptr(5.6)},
		{TestName: "Hemoglobin", Category: ptr("CBC"), Unit: "g/dL", IdealMin: ptr(12.0), IdealMax: ptr(16.5)},
		{TestName: "Hematocrit", Category: ptr("CBC"), Unit: "%", IdealMin: ptr(36.0), IdealMax: ptr(50.0)},
		{TestName: "Platelets", Category: ptr("CBC"), Unit: "x10^3/uL", IdealMin: ptr(150.0), IdealMax: ptr(450.0)},

		// ===== METABOLIC PANEL =====
		{TestName: "Glucose fasting", Category: ptr("Metabolic"), Unit: "mg/dL", IdealMin: ptr(70.0), IdealMax: ptr(99.0)},
		{TestName: "HbA1c", Category: ptr("Metabolic"), Unit: "%", IdealMin: ptr(4.0), IdealMax: ptr(5.6)},
		{TestName: "Creatinine", Category: ptr("Metabolic"), Unit: "mg/dL", IdealMin: ptr(0.6), IdealMax: ptr(1.3)},
		{TestName: "Uric Acid", Category: ptr("Metabolic"), Unit: "mg/dL", IdealMin: ptr(2.4), IdealMax: ptr(7.0)},
		{TestName: "Sodium", Category: ptr("Metabolic"), Unit: "mmol/L", IdealMin: ptr(136.0), IdealMax: ptr(145.0)},
		{TestName: "Potassium", Category: ptr("Metabolic"), Unit: "mmol/L", IdealMin: ptr(3.5), IdealMax: ptr(5.1)},
		{TestName: "Calcium", Category: ptr("Metabolic"), Unit: "mmol/L", IdealMin: ptr(2.15), IdealMax: ptr(2.55)},

		// ===== LIPID PANEL =====
		{TestName: "Total Cholesterol", Category: ptr("Lipid Panel"), Unit: "mg/dL", IdealMax: ptr(200.0)},
		{TestName: "LDL Cholesterol", Category: ptr("Lipid Panel"), Unit: "mg/dL", IdealMax: ptr(100.0)},
		{TestName: "HDL Cholesterol", Category: ptr("Lipid Panel"), Unit: "mg/dL", IdealMin: ptr(40.0)},
		{TestName: "Triglycerides", Category: ptr("Lipid Panel"), Unit: "mg/dL", IdealMax: ptr(150.0)},

		// ===== THYROID & VITAMINS =====
		{TestName: "TSH", Category: ptr("Thyroid"), Unit: "mIU/L", IdealMin: ptr(0.4), IdealMax: ptr(4.0)},
		{TestName: "Vitamin D", Category: ptr("Vitamins"), Unit: "ng/mL", IdealMin: ptr(30.0), IdealMax: ptr(100.0)},
		{TestName: "Vitamin B12", Category: ptr("Vitamins"), Unit: "pg/mL", IdealMin: ptr(200.0), IdealMax: ptr(900.0)},
	}

	for i := range defs {
		defs[i].ID = DeriveTestReferenceID(defs[i].TestName)
	}

	return defs
}

// ListTestReferences returns the whole catalog. Ordering is the caller's
// responsibility.
func ListTestReferences(ctx context.Context) ([]TestReference, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	query := `
		SELECT id, test_name, category, unit, ideal_min, ideal_max
		FROM test_references
	`

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list test references: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var refs []TestReference

	for rows.Next() {
		var ref TestReference
		if err := rows.Scan(&ref.ID, &ref.TestName, &ref.Category, &ref.Unit, &ref.IdealMin, &ref.IdealMax); err != nil {
			return nil, fmt.Errorf("failed to scan test reference: %w", err)
		}

		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating test references: %w", err)
	}

	return refs, nil
}

// UpsertTestReference creates or fully replaces a reference by id. There is
// no delete operation; references accumulate.
func UpsertTestReference(ctx context.Context, ref TestReference) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	return upsertTestReference(ctx, database, ref)
}

func upsertTestReference(ctx context.Context, e execer, ref TestReference) error {
	if _, err := e.ExecContext(ctx, upsertTestReferenceQuery, ref.ID, ref.TestName, ref.Category, ref.Unit, ref.IdealMin, ref.IdealMax); err != nil {
		return fmt.Errorf("failed to upsert test reference: %w", err)
	}

	return nil
}

// FindTestReferenceByName returns the first reference whose normalized name
// matches, or nil when the test is not cataloged yet.
func FindTestReferenceByName(ctx context.Context, testName string) (*TestReference, error) {
	refs, err := ListTestReferences(ctx)
	if err != nil {
		return nil, err
	}

	target := normalizeTestName(testName)

	for i := range refs {
		if normalizeTestName(refs[i].TestName) == target {
			return &refs[i], nil
		}
	}

	return nil, nil //nolint:nilnil // A missing catalog entry is an expected lookup result.
}

// ensureTestReference derives a catalog entry from a freshly saved reading
// when no reference with a matching name exists. The unit and ideal bounds
// are copied from the reading.
func ensureTestReference(ctx context.Context, reading TestReading) error {
	existing, err := FindTestReferenceByName(ctx, reading.TestName)
	if err != nil {
		return err
	}

	if existing != nil {
		return nil
	}

	ref := TestReference{
		ID:       DeriveTestReferenceID(reading.TestName),
		TestName: reading.TestName,
		Unit:     reading.Unit,
		IdealMin: reading.IdealMin,
		IdealMax: reading.IdealMax,
	}

	return upsertTestReference(ctx, database, ref)
}

// seedTestReferences populates the catalog from the default definitions on
// first-time setup only. The guard is collection emptiness, so references
// managed by the user are never overwritten.
func seedTestReferences(ctx context.Context) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM test_references`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count test references: %w", err)
	}

	if count > 0 {
		return nil
	}

	defs := DefaultTestReferences()
	logger.Infof("Seeding %d default test references...", len(defs))

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, def := range defs {
		if err := upsertTestReference(ctx, tx, def); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit test reference seed: %w", err)
	}

	return nil
}
