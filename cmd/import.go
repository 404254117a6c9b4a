/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/IAmSurajBobade/openHealth/db"
)

var CmdImport = &cli.Command{
	Name:      "import",
	Usage:     "Import a previously exported JSON snapshot",
	ArgsUsage: "<snapshot.json>",
	Flags: []cli.Flag{
		dbPathFlag(),
	},
	Action: runImport,
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() < 1 {
		return errSnapshotFileRequired
	}

	data, err := os.ReadFile(args.First())
	if err != nil {
		return fmt.Errorf("failed to read snapshot file: %w", err)
	}

	if err := openStore(ctx, cmd); err != nil {
		return err
	}
	defer db.Close()

	result, err := db.ImportSnapshot(ctx, data)
	if err != nil {
		if errors.Is(err, db.ErrInvalidSnapshotFormat) {
			return fmt.Errorf("could not import, check file format: %w", err)
		}

		return err
	}

	cliLogger.Info("Import complete",
		"kind", result.Kind,
		"members", result.Members,
		"readings", result.Readings,
		"references", result.References,
		"preferences", result.PreferencesImported,
	)

	return nil
}
