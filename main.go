/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/IAmSurajBobade/openHealth/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "openhealth",
		Usage: "openHealth - Local Personal Health Records",
		Commands: []*cli.Command{
			cmd.CmdMigrate,
			cmd.CmdExport,
			cmd.CmdImport,
			cmd.CmdAdd,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
