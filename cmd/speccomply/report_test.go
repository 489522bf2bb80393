// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine"
)

func buildMatrix(t *testing.T) ([]engine.ComparisonRow, engine.Summary) {
	t.Helper()
	registry, err := canon.NewRegistry()
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}
	e, err := engine.NewEngine(registry)
	if err != nil {
		t.Fatalf("Failed to build engine: %v", err)
	}

	matrix := e.Compare(
		canon.ValueMap{
			"Flow (m³/h)":     canon.Num(500),
			"Casing Material": canon.Str("A216 WCB"),
		},
		canon.ValueMap{
			"Flow (m³/h)":     canon.Num(490),
			"Casing Material": canon.Str("CF8M"),
		},
	)
	return matrix, engine.Summarize(matrix, 10)
}

func TestWriteReport(t *testing.T) {
	matrix, summary := buildMatrix(t)

	var buf bytes.Buffer
	writeReport(&buf, matrix, summary)
	out := buf.String()

	for _, want := range []string{
		"PUMP SPECIFICATION COMPLIANCE REPORT",
		"Weighted compliance score:",
		"CATEGORY SUMMARY",
		"COMPLIANCE MATRIX",
		"TOP ISSUES",
		"Flow (m³/h)",
		"Casing Material",
		"metallurgically equivalent", // negotiation hint for the material issue
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q\n%s", want, out)
		}
	}
}

func TestWriteReportNoIssues(t *testing.T) {
	rows := []engine.ComparisonRow{
		{Parameter: "Flow (m³/h)", Category: "Hydraulic", Criticality: engine.Critical, Status: engine.StatusOK},
	}
	summary := engine.Summarize(rows, 3)

	var buf bytes.Buffer
	writeReport(&buf, rows, summary)
	if !strings.Contains(buf.String(), "No open issues.") {
		t.Error("Clean matrix should report no open issues")
	}
}

func TestWriteParseTable(t *testing.T) {
	values := canon.ValueMap{
		"Flow (m³/h)": canon.Num(460),
		"Seal Plan":   canon.Str("53B"),
	}
	diags := canon.Diagnostics{
		CharactersExtracted:    120,
		UsedFallbackTextSource: true,
		FieldsFound:            []string{"Flow (m³/h)", "Seal Plan"},
	}

	var buf bytes.Buffer
	writeParseTable(&buf, values, diags)
	out := buf.String()

	for _, want := range []string{"Flow (m³/h)", "460", "53B", "Fields found: 2", "OCR fallback"} {
		if !strings.Contains(out, want) {
			t.Errorf("Parse table missing %q\n%s", want, out)
		}
	}
}

func TestCompareExitCode(t *testing.T) {
	tests := []struct {
		name string
		rows []engine.ComparisonRow
		want int
	}{
		{
			name: "clean matrix",
			rows: []engine.ComparisonRow{
				{Criticality: engine.Critical, Status: engine.StatusOK},
			},
			want: ExitSuccess,
		},
		{
			name: "critical issue gates",
			rows: []engine.ComparisonRow{
				{Criticality: engine.Critical, Status: engine.StatusIssue},
			},
			want: ExitCriticalIssues,
		},
		{
			name: "minor issue passes",
			rows: []engine.ComparisonRow{
				{Criticality: engine.Minor, Status: engine.StatusIssue},
			},
			want: ExitSuccess,
		},
		{
			name: "critical missing passes",
			rows: []engine.ComparisonRow{
				{Criticality: engine.Critical, Status: engine.StatusMissing},
			},
			want: ExitSuccess,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareExitCode(tt.rows); got != tt.want {
				t.Errorf("compareExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
