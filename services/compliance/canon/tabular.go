// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package canon

// FromTable canonicalizes already-tabular input. No regex extraction
// happens here: the parameter column is matched case-insensitively against
// canonical parameter names and the per-field label aliases from the
// catalog, and the value passes through the same canonicalization stage as
// extractor output. Values in tables are assumed to already be in the
// field's canonical unit.
//
// Rows with unrecognized labels are skipped silently; duplicate labels
// keep the first occurrence, mirroring the extractor's first-match-wins
// contract.
func (c *Canonicalizer) FromTable(rows []TableRow) (ValueMap, []string) {
	values := make(ValueMap)
	var found []string

	for _, row := range rows {
		rule, ok := c.labelIndex[foldLabel(row.Parameter)]
		if !ok {
			continue
		}
		if _, seen := values[rule.Parameter]; seen {
			continue
		}
		value, ok := c.canonicalizeRaw(rule, string(row.Value), "")
		if !ok {
			continue
		}
		values[rule.Parameter] = value
		found = append(found, rule.Parameter)
	}
	return values, found
}
