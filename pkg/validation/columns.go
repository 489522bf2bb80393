// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-supplied files.
//
// Datasheet CSVs come from customers and vendors, not from controlled
// systems, so their headers are validated before any row is trusted.
package validation

import (
	"fmt"
	"strings"
)

// FoldColumn normalizes one header cell for comparison: whitespace
// trimmed, lowercased, and a UTF-8 BOM stripped (Excel exports carry one
// on the first cell).
func FoldColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

// MissingColumns returns the required column names absent from the
// header, in the required order. Matching is case-insensitive and
// whitespace-tolerant. An empty result means the header is usable.
func MissingColumns(header []string, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[FoldColumn(name)] = true
	}

	var missing []string
	for _, name := range required {
		if !present[FoldColumn(name)] {
			missing = append(missing, name)
		}
	}
	return missing
}

// RequireColumns validates that the header carries every required
// column, returning an error that names all the missing ones at once so
// the user can fix the file in one pass.
func RequireColumns(header []string, required []string) error {
	missing := MissingColumns(header, required)
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ColumnIndex maps each required column name to its position in the
// header, using the same folding as RequireColumns. Call RequireColumns
// first; absent columns are simply not in the returned map.
func ColumnIndex(header []string, required []string) map[string]int {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		folded := FoldColumn(name)
		if _, seen := positions[folded]; !seen {
			positions[folded] = i
		}
	}

	index := make(map[string]int, len(required))
	for _, name := range required {
		if i, ok := positions[FoldColumn(name)]; ok {
			index[name] = i
		}
	}
	return index
}
