// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package canon

// Canonicalizer is the entry point for turning one document into a
// canonical parameter map. It holds the three static tables; construct it
// once at startup and share it freely — every method is a pure function
// over the immutable tables.
type Canonicalizer struct {
	units      *UnitTable
	equiv      *Registry
	rules      []fieldRule
	labelIndex map[string]fieldRule
}

// NewCanonicalizer loads the embedded catalogs and compiles the extraction
// rules. It fails only on a malformed catalog, never on document content.
func NewCanonicalizer() (*Canonicalizer, error) {
	units, err := NewUnitTable()
	if err != nil {
		return nil, err
	}
	equiv, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	rules, err := compileFieldRules()
	if err != nil {
		return nil, err
	}

	labelIndex := make(map[string]fieldRule)
	for _, rule := range rules {
		labelIndex[foldLabel(rule.Parameter)] = rule
		for _, label := range rule.Labels {
			labelIndex[foldLabel(label)] = rule
		}
	}

	return &Canonicalizer{
		units:      units,
		equiv:      equiv,
		rules:      rules,
		labelIndex: labelIndex,
	}, nil
}

// Canonicalize dispatches to the tabular adapter when the document carries
// a table, otherwise to the field extractor, and assembles the diagnostics
// record for the presentation layer.
func (c *Canonicalizer) Canonicalize(doc Document) (ValueMap, Diagnostics) {
	if len(doc.Table) > 0 {
		values, found := c.FromTable(doc.Table)
		return values, Diagnostics{FieldsFound: found}
	}

	values, found := c.ExtractText(doc.Text)
	return values, Diagnostics{
		CharactersExtracted:    len(doc.Text),
		UsedFallbackTextSource: doc.UsedFallbackText,
		FieldsFound:            found,
	}
}

// Units exposes the unit table for callers that convert outside the
// extraction path.
func (c *Canonicalizer) Units() *UnitTable { return c.units }

// Registry exposes the equivalence registry; the comparison engine uses it
// for enumerated-kind equality.
func (c *Canonicalizer) Registry() *Registry { return c.equiv }
