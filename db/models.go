/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "time"

// SortKey represents a user-selected sort key for list views.
type SortKey string

// SortKey values represent supported list orderings.
const (
	SortByName     SortKey = "name"
	SortByAge      SortKey = "age"
	SortByDate     SortKey = "date"
	SortByCategory SortKey = "category"
)

// Member represents a tracked individual. Ids are opaque strings generated
// by the caller before insertion.
type Member struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Age  *int   `json:"age,omitempty" db:"age"`
}

// TestReading represents one timestamped measurement of a named test for a
// member. The ideal bounds are a snapshot taken at recording time and stay
// independent of later catalog changes.
type TestReading struct {
	ID       string    `json:"id" db:"id"`
	MemberID string    `json:"patientId" db:"member_id"`
	TestName string    `json:"testName" db:"test_name"`
	Date     time.Time `json:"date" db:"reading_date"`
	Value    float64   `json:"value" db:"value"`
	Unit     string    `json:"unit" db:"unit"`
	IdealMin *float64  `json:"idealMin,omitempty" db:"ideal_min"`
	IdealMax *float64  `json:"idealMax,omitempty" db:"ideal_max"`
	Reason   *string   `json:"reason,omitempty" db:"reason"`
	Notes    *string   `json:"notes,omitempty" db:"notes"`
}

// TestReference represents a catalog entry describing a test's default unit
// and ideal numeric bounds. Readings join to it by test name, not by id; a
// reading may exist with no matching reference.
type TestReference struct {
	ID       string   `json:"id" db:"id"`
	TestName string   `json:"testName" db:"test_name"`
	Category *string  `json:"category,omitempty" db:"category"`
	Unit     string   `json:"unit" db:"unit"`
	IdealMin *float64 `json:"idealMin,omitempty" db:"ideal_min"`
	IdealMax *float64 `json:"idealMax,omitempty" db:"ideal_max"`
}

// UserPreferences holds the singleton UI sort/filter choices. Nil fields are
// "unspecified" and survive a merge-write untouched.
type UserPreferences struct {
	SortMembersBy      *SortKey `json:"sortMembersBy,omitempty" db:"sort_members_by"`
	FilterMembersQuery *string  `json:"filterMembersQuery,omitempty" db:"filter_members_query"`
	SortTestsBy        *SortKey `json:"sortTestsBy,omitempty" db:"sort_tests_by"`
	FilterTestsQuery   *string  `json:"filterTestsQuery,omitempty" db:"filter_tests_query"`
}
