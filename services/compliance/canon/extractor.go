// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package canon

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon/catalog"
)

// compileFieldRules parses the embedded extraction catalog and compiles
// every pattern case-insensitively. Rule order in the returned slice is
// the declaration order of the YAML file — that ordering is the documented
// tie-break when more than one rule could match overlapping text.
func compileFieldRules() ([]fieldRule, error) {
	var file FieldRuleFile
	if err := yaml.Unmarshal(catalog.FieldPatterns, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded field patterns: %w", err)
	}

	rules := make([]fieldRule, 0, len(file.Fields))
	for _, spec := range file.Fields {
		re, err := regexp.Compile("(?i)" + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile the pattern for %q: %w", spec.Parameter, err)
		}
		rules = append(rules, fieldRule{FieldRuleSpec: spec, re: re})
	}
	return rules, nil
}

// ExtractText runs every field rule over the raw text and returns the
// canonical value map plus the ordered list of parameters found.
//
// Per rule, only the first match in the text is used, and the first rule
// to claim a parameter wins. A rule with no match contributes nothing —
// extraction misses are not errors, the parameter is simply absent.
func (c *Canonicalizer) ExtractText(text string) (ValueMap, []string) {
	values := make(ValueMap)
	var found []string

	for _, rule := range c.rules {
		if _, seen := values[rule.Parameter]; seen {
			continue
		}
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		// Group 1 carries the value when the pattern declares one;
		// otherwise the matched span itself is the value (categorical
		// fields, where the match is the value).
		raw := m[0]
		if len(m) > 1 && m[1] != "" {
			raw = m[1]
		}

		value, ok := c.canonicalizeRaw(rule, raw, capturedUnit(m))
		if !ok {
			continue
		}
		values[rule.Parameter] = value
		found = append(found, rule.Parameter)
	}
	return values, found
}

// capturedUnit returns the raw unit group when the pattern captured one.
func capturedUnit(m []string) string {
	if len(m) > 2 {
		return m[2]
	}
	return ""
}

// canonicalizeRaw applies the shared canonicalization stage: numeric
// normalization plus unit conversion for quantity fields, equivalence
// normalization for enumerated fields. Both the extractor and the tabular
// adapter funnel through here so the two ingestion paths cannot drift.
func (c *Canonicalizer) canonicalizeRaw(rule fieldRule, raw, rawUnit string) (Value, bool) {
	if rule.Unit == "" {
		value := strings.TrimSpace(raw)
		if rule.Class != "" {
			value = c.equiv.Normalize(rule.Class, value)
		}
		return Str(value), true
	}

	num, ok := NormalizeNumber(raw)
	if !ok {
		return Value{}, false
	}
	// No captured unit means the field's canonical unit is already in
	// force; Convert is then an identity.
	if rawUnit == "" {
		rawUnit = rule.Unit
	}
	return Num(c.units.Convert(num, rawUnit, rule.Unit)), true
}
