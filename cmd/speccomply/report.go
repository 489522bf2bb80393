// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine"
)

const absentValue = "-"

func formatValue(v *canon.Value) string {
	if v == nil {
		return absentValue
	}
	return v.String()
}

func formatDeviation(d *float64) string {
	if d == nil {
		return absentValue
	}
	return strconv.FormatFloat(*d, 'f', -1, 64)
}

// writeReport renders the human-readable compliance report: the KPI
// block, per-category pass rates, the full matrix, and the ranked top
// issues with their negotiation guidance.
func writeReport(w io.Writer, matrix []engine.ComparisonRow, summary engine.Summary) {
	fmt.Fprintln(w, "PUMP SPECIFICATION COMPLIANCE REPORT")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Weighted compliance score: %.1f%%\n", summary.WeightedScore)
	fmt.Fprintf(w, "Open issues: %d (critical parameters: %d)\n", summary.OpenIssues, summary.CriticalCount)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CATEGORY SUMMARY")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, stat := range summary.Categories {
		fmt.Fprintf(tw, "  %s\t%d/%d\t%.1f%%\n", stat.Category, stat.PassCount, stat.Total, stat.PassRate)
	}
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "COMPLIANCE MATRIX")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  PARAMETER\tCUSTOMER\tVENDOR\tDEVIATION\tTOLERANCE\tSTATUS\tRISK")
	for _, row := range matrix {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Parameter,
			formatValue(row.CustomerValue),
			formatValue(row.EngineeringValue),
			formatDeviation(row.Deviation),
			row.Tolerance,
			row.Status,
			row.Risk)
	}
	tw.Flush()
	fmt.Fprintln(w)

	if len(summary.TopIssues) == 0 {
		fmt.Fprintln(w, "No open issues.")
		return
	}
	fmt.Fprintln(w, "TOP ISSUES")
	for i, row := range summary.TopIssues {
		fmt.Fprintf(w, "  %d. [%s] %s (%s)\n", i+1, row.Severity, row.Parameter, row.Status)
		if row.Negotiation != "" && row.Negotiation != "None" {
			fmt.Fprintf(w, "     %s\n", row.Negotiation)
		}
	}
}

// writeParseTable renders the canonical parameter map of one document,
// in extraction order, with the diagnostics footer.
func writeParseTable(w io.Writer, values canon.ValueMap, diags canon.Diagnostics) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUE")
	for _, name := range diags.FieldsFound {
		if v, ok := values[name]; ok {
			fmt.Fprintf(tw, "%s\t%s\n", name, v.String())
		}
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Fields found: %d\n", len(diags.FieldsFound))
	if diags.CharactersExtracted > 0 {
		fmt.Fprintf(w, "Characters examined: %d\n", diags.CharactersExtracted)
	}
	if diags.UsedFallbackTextSource {
		fmt.Fprintln(w, "Note: text came from the OCR fallback; extraction quality may be reduced.")
	}
}
