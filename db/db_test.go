// SPDX-FileCopyrightText: 2026 Suraj Bobade
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"
	"time"
)

func TestInitRequiresPath(t *testing.T) {
	if err := Init(testContext(), ""); !errors.Is(err, ErrDatabasePathNotSet) {
		t.Fatalf("expected ErrDatabasePathNotSet, got %v", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	original := time.Date(2026, time.March, 1, 9, 30, 15, 123000000, time.UTC)

	parsed, err := parseTime(formatTime(original))
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}

	if !parsed.Equal(original) {
		t.Fatalf("expected %v, got %v", original, parsed)
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := parseTime("yesterday"); err == nil {
		t.Fatalf("expected an error for a non-timestamp value")
	}
}
