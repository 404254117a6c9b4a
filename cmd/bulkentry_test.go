// SPDX-FileCopyrightText: 2026 Suraj Bobade
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseBulkEntries(t *testing.T) {
	t.Parallel()

	text := `
Hemoglobin, 13.2, g/dL, 2026-03-01

Glucose fasting, 92, mg/dL, 01/03/2026, 70, 99
`

	readings, err := parseBulkEntries("m1", text)
	if err != nil {
		t.Fatalf("parseBulkEntries failed: %v", err)
	}

	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}

	first := readings[0]
	if first.MemberID != "m1" {
		t.Fatalf("expected member id m1, got %q", first.MemberID)
	}
	if first.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if first.TestName != "Hemoglobin" || first.Value != 13.2 || first.Unit != "g/dL" {
		t.Fatalf("unexpected first reading: %+v", first)
	}
	if !first.Date.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", first.Date)
	}
	if first.IdealMin != nil || first.IdealMax != nil {
		t.Fatalf("expected no ideal bounds, got %+v", first)
	}

	second := readings[1]
	if second.IdealMin == nil || *second.IdealMin != 70 {
		t.Fatalf("expected ideal min 70, got %+v", second.IdealMin)
	}
	if second.IdealMax == nil || *second.IdealMax != 99 {
		t.Fatalf("expected ideal max 99, got %+v", second.IdealMax)
	}
	if !second.Date.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", second.Date)
	}
}

func TestParseBulkEntriesPartialBounds(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Hemoglobin, 13.2, g/dL, 2026-03-01, 12.0",
		"HDL Cholesterol, 52, mg/dL, 2026-03-01, , 99",
	}, "\n")

	readings, err := parseBulkEntries("m1", text)
	if err != nil {
		t.Fatalf("parseBulkEntries failed: %v", err)
	}

	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}

	minOnly := readings[0]
	if minOnly.IdealMin == nil || *minOnly.IdealMin != 12.0 {
		t.Fatalf("expected ideal min 12.0 from a 5-field line, got %+v", minOnly.IdealMin)
	}
	if minOnly.IdealMax != nil {
		t.Fatalf("expected no ideal max, got %v", *minOnly.IdealMax)
	}

	maxOnly := readings[1]
	if maxOnly.IdealMin != nil {
		t.Fatalf("expected empty ideal min field to stay unset, got %v", *maxOnly.IdealMin)
	}
	if maxOnly.IdealMax == nil || *maxOnly.IdealMax != 99 {
		t.Fatalf("expected ideal max 99, got %+v", maxOnly.IdealMax)
	}
}

func TestParseBulkEntriesRejectsBadLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
	}{
		{"too few fields", "Hemoglobin, 13.2, g/dL"},
		{"empty test name", ", 13.2, g/dL, 2026-03-01"},
		{"bad value", "Hemoglobin, high, g/dL, 2026-03-01"},
		{"bad date", "Hemoglobin, 13.2, g/dL, someday"},
		{"bad ideal min", "Hemoglobin, 13.2, g/dL, 2026-03-01, low, 16.5"},
		{"no entries", "\n\n"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := parseBulkEntries("m1", tc.text); !errors.Is(err, errInvalidBulkEntry) {
				t.Fatalf("expected errInvalidBulkEntry, got %v", err)
			}
		})
	}
}

func TestParseBulkEntriesRejectsWholeBatch(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Hemoglobin, 13.2, g/dL, 2026-03-01",
		"broken line",
	}, "\n")

	readings, err := parseBulkEntries("m1", text)
	if err == nil {
		t.Fatalf("expected an error for the malformed line")
	}
	if readings != nil {
		t.Fatalf("expected no readings from a rejected batch, got %d", len(readings))
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected the error to name the line, got %v", err)
	}
}
