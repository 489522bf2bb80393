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

type equivalenceFile struct {
	Classes []equivalenceClassSpec `yaml:"classes"`
}

type equivalenceClassSpec struct {
	Name          string      `yaml:"name"`
	StripPrefixes []string    `yaml:"strip_prefixes"`
	Labels        []labelSpec `yaml:"labels"`
}

type labelSpec struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

type equivalenceClass struct {
	stripPrefixes []string
	byAlias       map[string]string
}

// Registry holds the per-field equivalence classes for enumerated
// parameters. Built once from the embedded catalog and read-only
// afterward.
type Registry struct {
	classes map[string]*equivalenceClass
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NewRegistry parses the embedded equivalence catalog.
func NewRegistry() (*Registry, error) {
	var file equivalenceFile
	if err := yaml.Unmarshal(catalog.EquivalenceClasses, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded equivalence classes: %w", err)
	}

	r := &Registry{classes: make(map[string]*equivalenceClass)}
	for _, spec := range file.Classes {
		class := &equivalenceClass{
			stripPrefixes: spec.StripPrefixes,
			byAlias:       make(map[string]string),
		}
		for _, label := range spec.Labels {
			// The canonical spelling is always an alias of itself, which
			// covers documents that already use the canonical label.
			class.byAlias[foldLabel(label.Canonical)] = label.Canonical
			for _, alias := range label.Aliases {
				class.byAlias[foldLabel(alias)] = label.Canonical
			}
		}
		r.classes[spec.Name] = class
	}
	return r, nil
}

// foldLabel lowercases, trims, and collapses internal whitespace so that
// "A216  WCB " and "a216 wcb" hit the same alias key.
func foldLabel(raw string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), " ")
}

// Normalize maps a raw categorical spelling to its canonical label.
// Unknown spellings (and unknown class names) pass through verbatim rather
// than being dropped, so a human reviewer can still see them in the matrix.
func (r *Registry) Normalize(class, raw string) string {
	c, ok := r.classes[class]
	if !ok {
		return raw
	}
	key := foldLabel(raw)
	for _, prefix := range c.stripPrefixes {
		key = strings.TrimSpace(strings.TrimPrefix(key, prefix))
	}
	if canonical, ok := c.byAlias[key]; ok {
		return canonical
	}
	return raw
}

// Equivalent reports whether two raw spellings denote the same label.
// True iff both normalize to the same canonical label, or one side already
// equals the other's canonical label textually. Normalization is
// idempotent, so pre-canonicalized inputs are fine; the relation is
// symmetric by construction.
func (r *Registry) Equivalent(class, a, b string) bool {
	na := r.Normalize(class, a)
	nb := r.Normalize(class, b)
	return strings.EqualFold(strings.TrimSpace(na), strings.TrimSpace(nb))
}
