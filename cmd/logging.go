/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/IAmSurajBobade/openHealth/logging"

var appLogger = logging.Logger(logging.SourceApp)
var cliLogger = logging.Logger(logging.SourceCLI)
