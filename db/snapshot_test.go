// SPDX-FileCopyrightText: 2026 Suraj Bobade
// SPDX-License-Identifier: Apache-2.0

package db

import "testing"

func TestClassifySnapshot(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload snapshotPayload
		want    ImportKind
	}{
		{
			name: "full profile",
			payload: snapshotPayload{
				Patients:       []Member{},
				Readings:       []TestReading{},
				TestReferences: []TestReference{},
			},
			want: ImportFullProfile,
		},
		{
			name: "single member",
			payload: snapshotPayload{
				Patient:  &Member{ID: "m1", Name: "Alice"},
				Readings: []TestReading{},
			},
			want: ImportSingleMember,
		},
		{
			name: "references only",
			payload: snapshotPayload{
				TestReferences: []TestReference{},
			},
			want: ImportReferencesOnly,
		},
		{
			name:    "empty payload",
			payload: snapshotPayload{},
			want:    "",
		},
		{
			name: "patients without readings",
			payload: snapshotPayload{
				Patients: []Member{},
			},
			want: "",
		},
		{
			name: "references mixed with patient",
			payload: snapshotPayload{
				Patient:        &Member{ID: "m1"},
				TestReferences: []TestReference{},
			},
			want: "",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := classifySnapshot(tc.payload); got != tc.want {
				t.Fatalf("classifySnapshot = %q, want %q", got, tc.want)
			}
		})
	}
}
