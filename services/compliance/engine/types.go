// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine compares two canonical parameter maps against the static
// rule table and aggregates the resulting compliance matrix.
//
// The rule table is the parameter universe: every matrix row comes from a
// rule, document-only parameters are silently ignored, and rule-only
// parameters yield a Missing verdict. The matrix is rebuilt from scratch
// on every comparison; nothing here mutates shared state, so one Engine
// serves concurrent callers without locking.
package engine

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
)

// Criticality is the severity weight class of a parameter.
type Criticality string

const (
	Critical Criticality = "Critical"
	Major    Criticality = "Major"
	Minor    Criticality = "Minor"
)

// Weight returns the scoring weight used by the aggregator.
func (c Criticality) Weight() int {
	switch c {
	case Critical:
		return 3
	case Major:
		return 2
	default:
		return 1
	}
}

func (c *Criticality) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := Criticality(s)
	switch incoming {
	case Critical, Major, Minor:
		*c = incoming
		return nil
	default:
		return fmt.Errorf("invalid value for Criticality: %q", incoming)
	}
}

// ToleranceKind selects the comparison semantics for a rule.
type ToleranceKind string

const (
	KindRelative        ToleranceKind = "relative"
	KindAbsolute        ToleranceKind = "absolute"
	KindAbsoluteMinimum ToleranceKind = "absolute-minimum"
	KindEnumerated      ToleranceKind = "enumerated"
)

func (k *ToleranceKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := ToleranceKind(s)
	switch incoming {
	case KindRelative, KindAbsolute, KindAbsoluteMinimum, KindEnumerated:
		*k = incoming
		return nil
	default:
		return fmt.Errorf("invalid value for ToleranceKind: %q", incoming)
	}
}

// ParamClass tags a rule with its parameter kind. It replaces the source
// behavior of re-testing name substrings ("contains Material", "starts
// with NPSH") at every call site: the class drives risk lookup and marks
// the rows the paired NPSH pass owns.
type ParamClass string

const (
	ClassHydraulicNumeric  ParamClass = "hydraulic-numeric"
	ClassMechanicalMinimum ParamClass = "mechanical-minimum"
	ClassEnumMaterial      ParamClass = "enumerated-material"
	ClassEnumSealPlan      ParamClass = "enumerated-seal-plan"
	ClassEnumProtection    ParamClass = "enumerated-protection"
	ClassEnumStandard      ParamClass = "enumerated-standard"
	ClassPairedNPSH        ParamClass = "paired-npsh"
)

func (p *ParamClass) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := ParamClass(s)
	switch incoming {
	case ClassHydraulicNumeric, ClassMechanicalMinimum, ClassEnumMaterial,
		ClassEnumSealPlan, ClassEnumProtection, ClassEnumStandard, ClassPairedNPSH:
		*p = incoming
		return nil
	default:
		return fmt.Errorf("invalid value for ParamClass: %q", incoming)
	}
}

// equivalenceClass maps an enumerated ParamClass to its canon registry
// class name.
func (p ParamClass) equivalenceClass() string {
	switch p {
	case ClassEnumMaterial:
		return "material"
	case ClassEnumSealPlan:
		return "seal_plan"
	case ClassEnumProtection:
		return "protection"
	case ClassEnumStandard:
		return "standard"
	default:
		return ""
	}
}

// Rule is one entry of the comparison rule table.
type Rule struct {
	Parameter   string        `yaml:"parameter" json:"parameter"`
	Category    string        `yaml:"category" json:"category"`
	Criticality Criticality   `yaml:"criticality" json:"criticality"`
	Tolerance   float64       `yaml:"tolerance" json:"tolerance"`
	Kind        ToleranceKind `yaml:"kind" json:"kind"`
	Class       ParamClass    `yaml:"class" json:"class"`
	Display     string        `yaml:"display" json:"display"`
}

// RuleFile is the top-level shape of comparison_rules.yaml.
type RuleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Status is the per-row compliance verdict.
type Status string

const (
	StatusOK      Status = "OK"
	StatusIssue   Status = "Issue"
	StatusMissing Status = "Missing"
)

// RiskLevel grades the commercial/technical exposure of a non-compliant row.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ComparisonRow is one line of the compliance matrix. Rows appear in rule
// declaration order, exactly one per rule.
type ComparisonRow struct {
	Parameter        string       `json:"parameter"`
	Category         string       `json:"category"`
	Criticality      Criticality  `json:"criticality"`
	CustomerValue    *canon.Value `json:"customer_value"`
	EngineeringValue *canon.Value `json:"engineering_value"`
	Tolerance        string       `json:"tolerance"`
	Deviation        *float64     `json:"deviation"`
	Status           Status       `json:"status"`
	Severity         string       `json:"severity"`
	Risk             RiskLevel    `json:"risk"`
	Negotiation      string       `json:"negotiation"`
}
