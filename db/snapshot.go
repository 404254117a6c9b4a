/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// ProfileSnapshot is the full-profile interchange shape: every collection
// plus the preferences singleton.
type ProfileSnapshot struct {
	Patients       []Member        `json:"patients"`
	Readings       []TestReading   `json:"readings"`
	TestReferences []TestReference `json:"testReferences"`
	Preferences    UserPreferences `json:"preferences"`
}

// MemberSnapshot is the single-member interchange shape: one member and all
// of their readings.
type MemberSnapshot struct {
	Patient  Member        `json:"patient"`
	Readings []TestReading `json:"readings"`
}

// ReferencesSnapshot is the references-only interchange shape.
type ReferencesSnapshot struct {
	TestReferences []TestReference `json:"testReferences"`
}

// ImportKind identifies which snapshot shape an import payload matched.
type ImportKind string

// Recognized snapshot shapes, tried in this order.
const (
	ImportFullProfile    ImportKind = "profile"
	ImportSingleMember   ImportKind = "member"
	ImportReferencesOnly ImportKind = "references"
)

// ImportResult summarizes what an import wrote.
type ImportResult struct {
	Kind                ImportKind
	Members             int
	Readings            int
	References          int
	PreferencesImported bool
}

// snapshotPayload is the superset of all recognized shapes. Nil slices and
// pointers mean the field was absent from the payload, which is what the
// shape classification inspects.
type snapshotPayload struct {
	Patients       []Member         `json:"patients"`
	Patient        *Member          `json:"patient"`
	Readings       []TestReading    `json:"readings"`
	TestReferences []TestReference  `json:"testReferences"`
	Preferences    *UserPreferences `json:"preferences"`
}

// ExportMember returns a snapshot of one member and all of their readings,
// or nil when the member does not exist.
func ExportMember(ctx context.Context, id string) (*MemberSnapshot, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	member, err := GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if member == nil {
		return nil, nil //nolint:nilnil // Missing members surface as empty results on read paths.
	}

	readings, err := ListReadingsByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if readings == nil {
		readings = []TestReading{}
	}

	return &MemberSnapshot{Patient: *member, Readings: readings}, nil
}

// ExportTestReferences returns a snapshot of the whole reference catalog.
func ExportTestReferences(ctx context.Context) (*ReferencesSnapshot, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	refs, err := ListTestReferences(ctx)
	if err != nil {
		return nil, err
	}

	if refs == nil {
		refs = []TestReference{}
	}

	return &ReferencesSnapshot{TestReferences: refs}, nil
}

// ExportProfile returns a snapshot of every collection and the preferences
// singleton. The collections are read back-to-back on the store's single
// connection, which is consistent enough under the single-writer model.
func ExportProfile(ctx context.Context) (*ProfileSnapshot, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	members, err := ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	readings, err := listAllReadings(ctx)
	if err != nil {
		return nil, err
	}

	refs, err := ListTestReferences(ctx)
	if err != nil {
		return nil, err
	}

	prefs, err := GetPreferences(ctx)
	if err != nil {
		return nil, err
	}

	// Empty collections export as empty lists, never null, so a round trip
	// through import always re-classifies as a full profile.
	if members == nil {
		members = []Member{}
	}

	if readings == nil {
		readings = []TestReading{}
	}

	if refs == nil {
		refs = []TestReference{}
	}

	return &ProfileSnapshot{
		Patients:       members,
		Readings:       readings,
		TestReferences: refs,
		Preferences:    prefs,
	}, nil
}

// classifySnapshot decides which recognized shape the payload matches, by
// structural inspection of the top-level fields. It fails closed: anything
// not matching a known shape returns the empty kind.
func classifySnapshot(payload snapshotPayload) ImportKind {
	switch {
	case payload.Patients != nil && payload.Readings != nil:
		return ImportFullProfile
	case payload.Patient != nil && payload.Readings != nil:
		return ImportSingleMember
	case payload.TestReferences != nil && payload.Patients == nil && payload.Patient == nil && payload.Readings == nil:
		return ImportReferencesOnly
	default:
		return ""
	}
}

// ImportSnapshot applies a previously exported snapshot. The payload's shape
// is classified first; each shape is written in one transaction, so either
// the whole snapshot is applied or nothing is. Every write is an idempotent
// upsert by id: re-importing the same snapshot is a no-op in observable
// effect.
func ImportSnapshot(ctx context.Context, data []byte) (*ImportResult, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshotFormat, err)
	}

	kind := classifySnapshot(payload)
	if kind == "" {
		return nil, ErrInvalidSnapshotFormat
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &ImportResult{Kind: kind}

	switch kind {
	case ImportFullProfile:
		for _, member := range payload.Patients {
			if err := upsertMember(ctx, tx, member); err != nil {
				return nil, err
			}
		}

		for _, reading := range payload.Readings {
			if err := upsertReading(ctx, tx, reading); err != nil {
				return nil, err
			}
		}

		for _, ref := range payload.TestReferences {
			if err := upsertTestReference(ctx, tx, ref); err != nil {
				return nil, err
			}
		}

		// A full-profile payload's preferences section is authoritative:
		// replace, don't merge.
		if payload.Preferences != nil {
			if err := replacePreferences(ctx, tx, *payload.Preferences); err != nil {
				return nil, err
			}

			result.PreferencesImported = true
		}

		result.Members = len(payload.Patients)
		result.Readings = len(payload.Readings)
		result.References = len(payload.TestReferences)

	case ImportSingleMember:
		if err := upsertMember(ctx, tx, *payload.Patient); err != nil {
			return nil, err
		}

		for _, reading := range payload.Readings {
			if err := upsertReading(ctx, tx, reading); err != nil {
				return nil, err
			}
		}

		result.Members = 1
		result.Readings = len(payload.Readings)

	case ImportReferencesOnly:
		for _, ref := range payload.TestReferences {
			if err := upsertTestReference(ctx, tx, ref); err != nil {
				return nil, err
			}
		}

		result.References = len(payload.TestReferences)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot import: %w", err)
	}

	return result, nil
}
