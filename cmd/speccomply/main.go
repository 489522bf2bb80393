// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/SpecComplyAI/SpecComply/pkg/logging"
)

func main() {
	// Logs go to stderr (and optionally a file) so stdout stays clean
	// for the report and for --json pipelines.
	logger := logging.New(logging.Config{
		Level:   logging.LevelInfo,
		LogDir:  os.Getenv("SPECCOMPLY_LOG_DIR"),
		Service: "cli",
	})
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	// Execute the root command. Cobra handles parsing the arguments.
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
