// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
)

func runParse(cmd *cobra.Command, args []string) {
	doc, err := loadDocument(args[0])
	if err != nil {
		slog.Error("Failed to load document", "path", args[0], "error", err)
		os.Exit(ExitError)
	}

	canonicalizer, err := canon.NewCanonicalizer()
	if err != nil {
		slog.Error("Failed to load catalogs", "error", err)
		os.Exit(ExitError)
	}

	values, diags := canonicalizer.Canonicalize(doc)

	if jsonOutput {
		out, err := json.MarshalIndent(map[string]any{
			"values":      values,
			"diagnostics": diags,
		}, "", "  ")
		if err != nil {
			slog.Error("Failed to marshal output", "error", err)
			os.Exit(ExitError)
		}
		fmt.Println(string(out))
		return
	}

	writeParseTable(os.Stdout, values, diags)
}
