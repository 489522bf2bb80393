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

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine"
)

// Exit codes for the compare command.
const (
	ExitSuccess        = 0
	ExitCriticalIssues = 1
	ExitError          = 2
)

func runCompare(cmd *cobra.Command, args []string) {
	rfqDoc, err := loadDocument(rfqPath)
	if err != nil {
		slog.Error("Failed to load customer document", "path", rfqPath, "error", err)
		os.Exit(ExitError)
	}
	engDoc, err := loadDocument(engPath)
	if err != nil {
		slog.Error("Failed to load engineering document", "path", engPath, "error", err)
		os.Exit(ExitError)
	}

	canonicalizer, err := canon.NewCanonicalizer()
	if err != nil {
		slog.Error("Failed to load catalogs", "error", err)
		os.Exit(ExitError)
	}
	eng, err := engine.NewEngine(canonicalizer.Registry())
	if err != nil {
		slog.Error("Failed to load the rule table", "error", err)
		os.Exit(ExitError)
	}

	runID := uuid.NewString()
	custValues, custDiags := canonicalizer.Canonicalize(rfqDoc)
	engValues, engDiags := canonicalizer.Canonicalize(engDoc)

	matrix := eng.Compare(custValues, engValues)
	summary := engine.Summarize(matrix, topIssues)

	slog.Info("Comparison run complete",
		"run_id", runID,
		"weighted_score", summary.WeightedScore,
		"open_issues", summary.OpenIssues,
		"customer_fields", len(custValues),
		"engineering_fields", len(engValues))

	if jsonOutput {
		out, err := json.MarshalIndent(map[string]any{
			"run_id":                  runID,
			"matrix":                  matrix,
			"summary":                 summary,
			"customer_diagnostics":    custDiags,
			"engineering_diagnostics": engDiags,
		}, "", "  ")
		if err != nil {
			slog.Error("Failed to marshal output", "error", err)
			os.Exit(ExitError)
		}
		fmt.Println(string(out))
	} else {
		writeReport(os.Stdout, matrix, summary)
	}

	os.Exit(compareExitCode(matrix))
}

// compareExitCode maps the matrix to a shell-friendly verdict: nonzero
// only when a Critical parameter has a confirmed deviation, so CI gates
// key off the things that stop an order. Missing parameters never gate:
// sparse documents leave most of the rule table unmatched, and a gate on
// absence would make every partial datasheet fail.
func compareExitCode(matrix []engine.ComparisonRow) int {
	for _, row := range matrix {
		if row.Criticality == engine.Critical && row.Status == engine.StatusIssue {
			return ExitCriticalIssues
		}
	}
	return ExitSuccess
}
