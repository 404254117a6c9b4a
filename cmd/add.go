/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/IAmSurajBobade/openHealth/db"
)

var CmdAdd = &cli.Command{
	Name:      "add",
	Usage:     "Add test readings for a member from bulk text entry",
	ArgsUsage: "[entries.txt]",
	Flags: []cli.Flag{
		dbPathFlag(),
		&cli.StringFlag{
			Name:  "member",
			Usage: "member id the readings belong to",
		},
	},
	Action: runAdd,
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	memberID := cmd.String("member")
	if memberID == "" {
		return errMemberIDRequired
	}

	text, err := readEntryText(cmd)
	if err != nil {
		return err
	}

	readings, err := parseBulkEntries(memberID, text)
	if err != nil {
		return err
	}

	if err := openStore(ctx, cmd); err != nil {
		return err
	}
	defer db.Close()

	member, err := db.GetMember(ctx, memberID)
	if err != nil {
		return err
	}

	if member == nil {
		return errMemberNotFound
	}

	if err := db.SaveReadings(ctx, readings); err != nil {
		return err
	}

	cliLogger.Info("Readings saved", "member", memberID, "count", len(readings))

	return nil
}

// readEntryText reads the bulk entry text from the file argument, or from
// stdin when no argument is given.
func readEntryText(cmd *cli.Command) (string, error) {
	args := cmd.Args()
	if args.Len() >= 1 {
		data, err := os.ReadFile(args.First())
		if err != nil {
			return "", fmt.Errorf("failed to read entry file: %w", err)
		}

		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read entries from stdin: %w", err)
	}

	return string(data), nil
}
