// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package canon turns raw datasheet content into canonical parameter values.
//
// The package owns the three static tables (extraction rules, unit aliases
// and conversions, equivalence classes) and the two ingestion paths over
// them: regex extraction from free text and label matching over
// already-tabular input. Both paths produce the same thing — a
// parameter→value map in the closed parameter vocabulary — plus extraction
// diagnostics for the presentation layer.
//
// All tables are loaded once from embedded YAML (see the catalog
// subpackage) and never mutated afterward, so a single Canonicalizer is
// safe for concurrent use without locking.
package canon

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Value is one canonical parameter value: numeric for hydraulic/mechanical
// quantities, textual for enumerated fields (materials, seal plans,
// standards). Values are immutable after creation.
type Value struct {
	Number  float64
	Text    string
	Numeric bool
}

// Num wraps a numeric canonical value.
func Num(f float64) Value { return Value{Number: f, Numeric: true} }

// Str wraps a textual canonical value.
func Str(s string) Value { return Value{Text: s} }

// String renders the value for human-facing output. Numbers drop trailing
// zeros so "460" does not print as "460.000000".
func (v Value) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// MarshalJSON emits numbers as JSON numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Num(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("value must be a number or a string: %w", err)
	}
	*v = Str(s)
	return nil
}

// ValueMap is the canonical output of one document: at most one entry per
// recognized parameter (first match wins).
type ValueMap map[string]Value

// TableValue is one table cell as submitted by a client. Datasheet JSON
// mixes quoted and bare numbers in the value column, so both forms
// unmarshal to the raw text the canonicalization stage expects.
type TableValue string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (v *TableValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TableValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("table value must be a string or a number: %w", err)
	}
	*v = TableValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// TableRow is one (parameter label, value) pair from an already-tabular
// source. Values arrive as raw text; numeric coercion happens during
// canonicalization.
type TableRow struct {
	Parameter string     `json:"parameter" binding:"required"`
	Value     TableValue `json:"value"`
}

// Document is one input to the canonicalizer: either raw extracted text
// (with a flag saying whether the external OCR fallback produced it) or a
// two-column table. When Table is non-empty, the tabular path is used and
// Text is ignored.
type Document struct {
	Text             string     `json:"text"`
	Table            []TableRow `json:"table"`
	UsedFallbackText bool       `json:"used_fallback_text"`
}

// Diagnostics reports what the canonicalizer saw, for the presentation
// layer. An empty FieldsFound is not an error; it just means no rule
// matched.
type Diagnostics struct {
	CharactersExtracted    int      `json:"characters_extracted"`
	UsedFallbackTextSource bool     `json:"used_fallback_text_source"`
	FieldsFound            []string `json:"fields_found"`
}

// FieldRuleSpec is one extraction rule as declared in the catalog YAML.
type FieldRuleSpec struct {
	Parameter string   `yaml:"parameter"`
	Pattern   string   `yaml:"pattern"`
	Unit      string   `yaml:"unit"`
	Class     string   `yaml:"class"`
	Labels    []string `yaml:"labels"`
}

// FieldRuleFile is the top-level shape of field_patterns.yaml.
type FieldRuleFile struct {
	Fields []FieldRuleSpec `yaml:"fields"`
}

// fieldRule is a compiled extraction rule. Patterns compile once at
// startup; rule order is the declaration order in the catalog file.
type fieldRule struct {
	FieldRuleSpec
	re *regexp.Regexp
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// NormalizeNumber coerces a raw textual value to a float64. Comma decimal
// separators become periods (EU-style datasheets), and the first embedded
// numeric substring is taken, which tolerates stray OCR characters around
// the number. Returns false when no numeric substring exists.
func NormalizeNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, ",", ".")
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
