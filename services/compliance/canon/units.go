// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package canon

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon/catalog"
)

type unitTableFile struct {
	Aliases     map[string][]string `yaml:"aliases"`
	Conversions []conversionSpec    `yaml:"conversions"`
}

type conversionSpec struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Factor float64 `yaml:"factor"`
	Offset float64 `yaml:"offset"`
}

type conversionKey struct {
	from string
	to   string
}

// affine is one conversion path: to = from*Factor + Offset. The offset
// term exists for temperature scales; every other path has Offset 0.
type affine struct {
	factor float64
	offset float64
}

// UnitTable resolves raw unit spellings to canonical unit tokens and
// converts values between compatible tokens. Built once from the embedded
// catalog and read-only afterward.
type UnitTable struct {
	aliases map[string]string
	paths   map[conversionKey]affine
}

// NewUnitTable parses the embedded unit catalog. It fails only on a
// malformed catalog, which is a build defect, not an input condition.
func NewUnitTable() (*UnitTable, error) {
	var file unitTableFile
	if err := yaml.Unmarshal(catalog.UnitTable, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded unit table: %w", err)
	}

	t := &UnitTable{
		aliases: make(map[string]string),
		paths:   make(map[conversionKey]affine),
	}
	for canonical, spellings := range file.Aliases {
		// A canonical token is always an alias of itself.
		t.aliases[strings.ToLower(canonical)] = canonical
		for _, spelling := range spellings {
			t.aliases[strings.ToLower(strings.TrimSpace(spelling))] = canonical
		}
	}
	for _, c := range file.Conversions {
		t.paths[conversionKey{from: c.From, to: c.To}] = affine{factor: c.Factor, offset: c.Offset}
	}
	return t, nil
}

// Canonical maps a raw unit spelling to its canonical token. Unknown
// spellings come back trimmed but otherwise unchanged.
func (t *UnitTable) Canonical(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := t.aliases[key]; ok {
		return canonical
	}
	return strings.TrimSpace(raw)
}

// Convert converts value from rawUnit to targetUnit.
//
// The contract is fail open: if either unit is unrecognized, the units are
// not dimensionally compatible, or no conversion path exists, the original
// value is returned unchanged. A wrong unit guess must never destroy an
// otherwise-usable numeric value, so this function has no error return.
func (t *UnitTable) Convert(value float64, rawUnit, targetUnit string) float64 {
	from := t.Canonical(rawUnit)
	to := t.Canonical(targetUnit)
	if from == to || from == "" || to == "" {
		return value
	}
	path, ok := t.paths[conversionKey{from: from, to: to}]
	if !ok {
		return value
	}
	return value*path.factor + path.offset
}
