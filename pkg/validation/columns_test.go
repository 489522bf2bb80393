// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"
)

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		required []string
		want     []string
	}{
		{
			name:     "all present",
			header:   []string{"Parameter", "Value"},
			required: []string{"parameter", "value"},
			want:     nil,
		},
		{
			name:     "case and whitespace tolerant",
			header:   []string{"  PARAMETER ", "Value"},
			required: []string{"parameter", "value"},
			want:     nil,
		},
		{
			name:     "one missing",
			header:   []string{"Parameter"},
			required: []string{"parameter", "value"},
			want:     []string{"value"},
		},
		{
			name:     "all missing on empty header",
			header:   nil,
			required: []string{"parameter", "value"},
			want:     []string{"parameter", "value"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingColumns(tt.header, tt.required)
			if len(got) != len(tt.want) {
				t.Fatalf("MissingColumns() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MissingColumns()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMissingColumnsStripsBOM(t *testing.T) {
	header := []string{"\ufeffParameter", "Value"}
	if missing := MissingColumns(header, []string{"parameter"}); len(missing) != 0 {
		t.Errorf("BOM-prefixed header should match, missing = %v", missing)
	}
}

func TestRequireColumns(t *testing.T) {
	if err := RequireColumns([]string{"Parameter", "Value"}, []string{"parameter", "value"}); err != nil {
		t.Errorf("Valid header should pass: %v", err)
	}

	err := RequireColumns([]string{"Notes"}, []string{"parameter", "value"})
	if err == nil {
		t.Fatal("Missing columns should fail")
	}
	// The error names every missing column, not just the first.
	if !strings.Contains(err.Error(), "parameter") || !strings.Contains(err.Error(), "value") {
		t.Errorf("Error should list all missing columns, got %q", err.Error())
	}
}

func TestColumnIndex(t *testing.T) {
	header := []string{"Notes", "PARAMETER", "Value", "parameter"}
	index := ColumnIndex(header, []string{"parameter", "value"})

	if index["parameter"] != 1 {
		t.Errorf("parameter index = %d, want 1 (first occurrence wins)", index["parameter"])
	}
	if index["value"] != 2 {
		t.Errorf("value index = %d, want 2", index["value"])
	}
	if _, ok := index["notes"]; ok {
		t.Error("Only required columns belong in the index")
	}
}
