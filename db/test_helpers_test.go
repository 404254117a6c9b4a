// SPDX-FileCopyrightText: 2026 Suraj Bobade
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func sortKeyPtr(value SortKey) *SortKey {
	return &value
}

func testReading(id, memberID, testName string, value float64) TestReading {
	return TestReading{
		ID:       id,
		MemberID: memberID,
		TestName: testName,
		Date:     time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC),
		Value:    value,
		Unit:     "g/dL",
	}
}

func mustUpsertMember(t *testing.T, member Member) {
	t.Helper()

	if err := UpsertMember(testContext(), member); err != nil {
		t.Fatalf("failed to upsert member: %v", err)
	}
}

func mustSaveReading(t *testing.T, reading TestReading) {
	t.Helper()

	if err := SaveReading(testContext(), reading); err != nil {
		t.Fatalf("failed to save reading: %v", err)
	}
}

func mustUpsertTestReference(t *testing.T, ref TestReference) {
	t.Helper()

	if err := UpsertTestReference(testContext(), ref); err != nil {
		t.Fatalf("failed to upsert test reference: %v", err)
	}
}
