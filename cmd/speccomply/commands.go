// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	rfqPath    string
	engPath    string
	jsonOutput bool
	topIssues  int

	rootCmd = &cobra.Command{
		Use:   "speccomply",
		Short: "A cli to check pump vendor documents against customer specifications",
		Long: `SpecComply reconciles a customer RFQ or datasheet against an
engineering/vendor document, parameter by parameter, and produces a
compliance matrix with a weighted score, per-category pass rates, and
negotiation guidance for every deviation.`,
	}

	parseCmd = &cobra.Command{
		Use:   "parse [file]",
		Short: "Canonicalize one document and print the recognized parameters",
		Args:  cobra.ExactArgs(1),
		Run:   runParse, // Defined in cmd_parse.go
	}

	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Compare a customer document against an engineering document",
		Long: `Compare reconciles a customer RFQ/datasheet against an
engineering/vendor document and prints the compliance matrix.

Exit codes: 0 when no Critical parameter has a confirmed deviation,
1 when at least one does, 2 on execution errors. Parameters missing
from either document appear as open issues in the summary but do not
affect the exit code; sparse documents would otherwise always fail.`,
		Run: runCompare, // Defined in cmd_compare.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of a table")

	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&rfqPath, "rfq", "", "Customer RFQ/datasheet file (.csv or text)")
	compareCmd.Flags().StringVar(&engPath, "eng", "", "Engineering/vendor document file (.csv or text)")
	compareCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of the report")
	compareCmd.Flags().IntVar(&topIssues, "top", 5, "Number of top issues to list in the summary")
	compareCmd.MarkFlagRequired("rfq")
	compareCmd.MarkFlagRequired("eng")
}
