/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

// Sentinel errors returned by the store.
var (
	ErrDatabaseNotInitialized = errors.New("database not initialized")
	ErrDatabasePathNotSet     = errors.New("database path is not set")
	ErrInvalidSnapshotFormat  = errors.New("unrecognized snapshot format")
	ErrInvalidReading         = errors.New("invalid reading")
)
