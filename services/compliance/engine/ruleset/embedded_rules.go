// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ruleset carries the embedded comparison rule table.
package ruleset

import (
	_ "embed"
)

// ComparisonRules holds the raw byte content of 'comparison_rules.yaml':
// tolerance and criticality metadata for every canonical parameter the
// comparison engine iterates. Baked in at compile time so the rule table
// is immutable at runtime and travels with the executable.
//
//go:embed comparison_rules.yaml
var ComparisonRules []byte
