// SPDX-FileCopyrightText: 2026 Suraj Bobade
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
	"time"
)

func TestSaveReadingDerivesReference(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})

	reading := testReading("r1", "m1", "Ferritin", 80.0)
	reading.Unit = "ng/mL"
	reading.IdealMin = floatPtr(20.0)
	reading.IdealMax = floatPtr(250.0)
	mustSaveReading(t, reading)

	ref, err := FindTestReferenceByName(ctx, "Ferritin")
	if err != nil {
		t.Fatalf("FindTestReferenceByName failed: %v", err)
	}
	if ref == nil {
		t.Fatalf("expected a derived reference for Ferritin")
	}
	if ref.ID != "ferritin" {
		t.Fatalf("expected derived id ferritin, got %q", ref.ID)
	}
	if ref.Unit != "ng/mL" {
		t.Fatalf("expected unit copied from reading, got %q", ref.Unit)
	}
	if ref.IdealMin == nil || *ref.IdealMin != 20.0 {
		t.Fatalf("expected ideal min copied from reading, got %+v", ref.IdealMin)
	}
}

func TestSaveReadingDoesNotDuplicateReference(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})
	mustUpsertTestReference(t, TestReference{ID: "hemoglobin", TestName: "Hemoglobin", Unit: "g/dL", IdealMin: floatPtr(12.0), IdealMax: floatPtr(16.5)})

	// Case and surrounding whitespace must not defeat the existence check.
	mustSaveReading(t, testReading("r1", "m1", "hemoglobin", 13.2))
	mustSaveReading(t, testReading("r2", "m1", " Hemoglobin ", 13.4))

	refs, err := ListTestReferences(ctx)
	if err != nil {
		t.Fatalf("ListTestReferences failed: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].IdealMin == nil || *refs[0].IdealMin != 12.0 {
		t.Fatalf("expected existing reference untouched, got %+v", refs[0])
	}
}

func TestSaveReadingsBatchIsAtomic(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})

	batch := []TestReading{
		testReading("r1", "m1", "Glucose fasting", 92.0),
		testReading("r2", "m1", "", 5.1), // malformed: no test name
		testReading("r3", "m1", "HbA1c", 5.2),
	}

	err := SaveReadings(ctx, batch)
	if !errors.Is(err, ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}

	readings, err := ListReadingsByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("ListReadingsByMember failed: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected no readings after failed batch, got %d", len(readings))
	}
}

func TestSaveReadingsDerivesOncePerTest(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})

	batch := []TestReading{
		testReading("r1", "m1", "Vitamin D", 42.0),
		testReading("r2", "m1", "vitamin d", 38.0),
		testReading("r3", "m1", "TSH", 2.1),
	}

	if err := SaveReadings(ctx, batch); err != nil {
		t.Fatalf("SaveReadings failed: %v", err)
	}

	readings, err := ListReadingsByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("ListReadingsByMember failed: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}

	refs, err := ListTestReferences(ctx)
	if err != nil {
		t.Fatalf("ListTestReferences failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 derived references, got %d", len(refs))
	}
}

func TestUpdateReadingPartial(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})

	original := testReading("r1", "m1", "Hemoglobin", 13.2)
	original.Notes = stringPtr("fasting sample")
	mustSaveReading(t, original)

	if err := UpdateReading(ctx, "r1", UpdateReadingInput{Value: floatPtr(13.9)}); err != nil {
		t.Fatalf("UpdateReading failed: %v", err)
	}

	readings, err := ListReadingsByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("ListReadingsByMember failed: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}

	got := readings[0]
	if got.Value != 13.9 {
		t.Fatalf("expected updated value 13.9, got %v", got.Value)
	}
	if !got.Date.Equal(original.Date) {
		t.Fatalf("expected date to survive partial update, got %v", got.Date)
	}
	if got.Notes == nil || *got.Notes != "fasting sample" {
		t.Fatalf("expected notes to survive partial update, got %+v", got.Notes)
	}

	newDate := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)
	if err := UpdateReading(ctx, "r1", UpdateReadingInput{Date: &newDate}); err != nil {
		t.Fatalf("UpdateReading date failed: %v", err)
	}

	readings, err = ListReadingsByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("ListReadingsByMember failed: %v", err)
	}
	if !readings[0].Date.Equal(newDate) {
		t.Fatalf("expected updated date %v, got %v", newDate, readings[0].Date)
	}
}

func TestDeleteReadings(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})
	mustSaveReading(t, testReading("r1", "m1", "Hemoglobin", 13.2))
	mustSaveReading(t, testReading("r2", "m1", "Hemoglobin", 13.4))
	mustSaveReading(t, testReading("r3", "m1", "TSH", 2.1))

	if err := DeleteReading(ctx, "r1"); err != nil {
		t.Fatalf("DeleteReading failed: %v", err)
	}

	if err := DeleteReading(ctx, "missing"); err != nil {
		t.Fatalf("expected missing-id delete to be a no-op, got %v", err)
	}

	if err := DeleteReadings(ctx, []string{"r2", "r3"}); err != nil {
		t.Fatalf("DeleteReadings failed: %v", err)
	}

	readings, err := ListReadingsByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("ListReadingsByMember failed: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected all readings deleted, got %d", len(readings))
	}
}

func TestDeleteReadingsByTest(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	mustUpsertMember(t, Member{ID: "m1", Name: "Alice"})
	mustSaveReading(t, testReading("r1", "m1", "Glucose fasting", 92.0))
	mustSaveReading(t, testReading("r2", "m1", "Glucose fasting", 95.0))
	mustSaveReading(t, testReading("r3", "m1", "Glucose fasting", 90.0))
	mustSaveReading(t, testReading("r4", "m1", "HbA1c", 5.2))

	if err := DeleteReadingsByTest(ctx, "m1", "Glucose fasting"); err != nil {
		t.Fatalf("DeleteReadingsByTest failed: %v", err)
	}

	readings, err := ListReadingsByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("ListReadingsByMember failed: %v", err)
	}
	if len(readings) != 1 || readings[0].TestName != "HbA1c" {
		t.Fatalf("expected only the HbA1c reading to remain, got %+v", readings)
	}
}

func TestValidateReading(t *testing.T) {
	t.Parallel()

	valid := testReading("r1", "m1", "Hemoglobin", 13.2)
	if err := validateReading(valid); err != nil {
		t.Fatalf("expected valid reading, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TestReading)
	}{
		{"missing id", func(r *TestReading) { r.ID = "" }},
		{"missing member id", func(r *TestReading) { r.MemberID = "" }},
		{"missing test name", func(r *TestReading) { r.TestName = "" }},
		{"missing date", func(r *TestReading) { r.Date = time.Time{} }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reading := testReading("r1", "m1", "Hemoglobin", 13.2)
			tc.mutate(&reading)

			if err := validateReading(reading); !errors.Is(err, ErrInvalidReading) {
				t.Fatalf("expected ErrInvalidReading, got %v", err)
			}
		})
	}
}
