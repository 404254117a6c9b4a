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

const upsertMemberQuery = `
	INSERT INTO members (id, name, age)
	VALUES (?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		age = excluded.age,
		updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
`

// UpdateMemberInput represents a partial member update. Nil fields are left
// unchanged.
type UpdateMemberInput struct {
	Name *string
	Age  *int
}

// ListMembers returns every member record. Ordering is the caller's
// responsibility.
func ListMembers(ctx context.Context) ([]Member, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	query := `
		SELECT id, name, age
		FROM members
	`

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []Member

	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.ID, &member.Name, &member.Age); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}

		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// GetMember returns a single member by id, or nil when none exists.
func GetMember(ctx context.Context, id string) (*Member, error) {
	if database == nil {
		return nil, ErrDatabaseNotInitialized
	}

	var member Member

	query := `
		SELECT id, name, age
		FROM members
		WHERE id = ?
	`

	err := database.QueryRowContext(ctx, query, id).Scan(&member.ID, &member.Name, &member.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// UpsertMember creates or fully replaces a member by id.
func UpsertMember(ctx context.Context, member Member) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	return upsertMember(ctx, database, member)
}

func upsertMember(ctx context.Context, e execer, member Member) error {
	if _, err := e.ExecContext(ctx, upsertMemberQuery, member.ID, member.Name, member.Age); err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}

	return nil
}

// UpdateMember merges the given fields onto the existing member. Updating a
// missing id is a silent no-op.
func UpdateMember(ctx context.Context, id string, input UpdateMemberInput) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	query := `
		UPDATE members
		SET name = COALESCE(?, name),
		    age = COALESCE(?, age),
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`

	if _, err := database.ExecContext(ctx, query, input.Name, input.Age, id); err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	return nil
}

// DeleteMember removes the member and every reading they own in one
// transaction, so a reader never observes a half-deleted state. Deleting a
// missing id is a silent no-op.
func DeleteMember(ctx context.Context, id string) error {
	if database == nil {
		return ErrDatabaseNotInitialized
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM readings WHERE member_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete member readings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member deletion: %w", err)
	}

	return nil
}
