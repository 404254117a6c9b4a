/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/IAmSurajBobade/openHealth/db"
)

var CmdExport = &cli.Command{
	Name:  "export",
	Usage: "Export a JSON snapshot (whole profile by default)",
	Flags: []cli.Flag{
		dbPathFlag(),
		&cli.StringFlag{
			Name:  "member",
			Usage: "export a single member and their readings",
		},
		&cli.BoolFlag{
			Name:  "references",
			Usage: "export the test reference catalog only",
		},
		&cli.StringFlag{
			Name:  "out",
			Value: "-",
			Usage: "output file, or - for stdout",
		},
	},
	Action: runExport,
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	if err := openStore(ctx, cmd); err != nil {
		return err
	}
	defer db.Close()

	var snapshot any

	switch {
	case cmd.String("member") != "":
		memberSnapshot, err := db.ExportMember(ctx, cmd.String("member"))
		if err != nil {
			return err
		}

		if memberSnapshot == nil {
			return errMemberNotFound
		}

		snapshot = memberSnapshot
	case cmd.Bool("references"):
		referencesSnapshot, err := db.ExportTestReferences(ctx)
		if err != nil {
			return err
		}

		snapshot = referencesSnapshot
	default:
		profileSnapshot, err := db.ExportProfile(ctx)
		if err != nil {
			return err
		}

		snapshot = profileSnapshot
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	out := cmd.String("out")
	if out == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	cliLogger.Info("Export complete", "file", out, "bytes", len(data))

	return nil
}
