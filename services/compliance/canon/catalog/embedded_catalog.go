// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

/*
This file bridges the build system and the runtime logic. It uses the Go
embed package to bake the canonicalization catalogs directly into the
compiled binary, so the extraction rules, unit table, and equivalence
classes are immutable at runtime and travel with the executable.
*/

package catalog

import (
	_ "embed"
)

// FieldPatterns holds the raw byte content of 'field_patterns.yaml':
// the ordered extraction rule list for the field extractor.
//
// Populated at compile time via the Go 'embed' directive. Rule order in
// the file is the tie-break contract for overlapping matches, so edits
// must preserve ordering deliberately.
//
//go:embed field_patterns.yaml
var FieldPatterns []byte

// UnitTable holds the raw byte content of 'unit_table.yaml': the unit
// alias table and the affine conversion paths between unit tokens.
//
//go:embed unit_table.yaml
var UnitTable []byte

// EquivalenceClasses holds the raw byte content of
// 'equivalence_classes.yaml': per-field alias sets mapping many raw
// categorical spellings to one canonical label.
//
//go:embed equivalence_classes.yaml
var EquivalenceClasses []byte
