/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/IAmSurajBobade/openHealth/db"
)

func dbPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-path",
		Value:   "openhealth.db",
		Sources: cli.EnvVars("OPENHEALTH_DB"),
		Usage:   "path to the local database file",
	}
}

// openStore initializes the database at the command's db-path and brings the
// schema up to date (including the one-time catalog seed).
func openStore(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("db-path")
	if path == "" {
		return errDatabasePathRequired
	}

	appLogger.Debug("Opening database", "path", path)

	if err := db.Init(ctx, path); err != nil {
		return err
	}

	if err := db.SyncSchema(ctx); err != nil {
		db.Close()
		return err
	}

	return nil
}
