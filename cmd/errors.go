/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabasePathRequired  = errors.New("db-path is required (set via --db-path or OPENHEALTH_DB env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errMemberIDRequired      = errors.New("member id is required (set via --member)")
	errMemberNotFound        = errors.New("member not found")
	errSnapshotFileRequired  = errors.New("snapshot file is required")
	errInvalidBulkEntry      = errors.New("invalid bulk entry")
)
