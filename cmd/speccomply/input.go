// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SpecComplyAI/SpecComply/pkg/validation"
	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
)

// requiredColumns are the CSV columns the tabular path needs. Extra
// columns are ignored.
var requiredColumns = []string{"parameter", "value"}

// loadDocument reads one input file. A .csv extension selects the
// tabular path; anything else is treated as extracted free text.
func loadDocument(path string) (canon.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSVDocument(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return canon.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return canon.Document{Text: string(data)}, nil
}

// loadCSVDocument parses a two-column datasheet export. The header is
// validated up front so a malformed file fails with one message naming
// every missing column.
func loadCSVDocument(path string) (canon.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return canon.Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged exports are common; validate per row instead

	records, err := reader.ReadAll()
	if err != nil {
		return canon.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return canon.Document{}, fmt.Errorf("%s is empty", path)
	}

	header := records[0]
	if err := validation.RequireColumns(header, requiredColumns); err != nil {
		return canon.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	index := validation.ColumnIndex(header, requiredColumns)
	paramCol := index["parameter"]
	valueCol := index["value"]

	var rows []canon.TableRow
	for _, record := range records[1:] {
		if paramCol >= len(record) || valueCol >= len(record) {
			continue // short row, nothing usable
		}
		parameter := strings.TrimSpace(record[paramCol])
		if parameter == "" {
			continue
		}
		rows = append(rows, canon.TableRow{
			Parameter: parameter,
			Value:     canon.TableValue(strings.TrimSpace(record[valueCol])),
		})
	}
	if len(rows) == 0 {
		return canon.Document{}, fmt.Errorf("%s has no data rows", path)
	}

	return canon.Document{Table: rows}, nil
}
