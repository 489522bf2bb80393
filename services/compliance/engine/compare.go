// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine/ruleset"
)

const (
	npshAvailableParam = "NPSH Available (m)"
	npshRequiredParam  = "NPSH Required (m)"

	// minNPSHMargin is the fixed cavitation margin (m) the paired NPSH
	// rule enforces. It is a process constant, not per-row configurable.
	minNPSHMargin = 1.0

	npshHint = "Raise suction vessel level or pressure, or select a slower / low-NPSHr impeller to restore margin."
	noAction = "None"
)

type riskEntry struct {
	risk RiskLevel
	hint string
}

// paramRisk overrides the class defaults for parameters with their own
// remediation strategy.
var paramRisk = map[string]riskEntry{
	"Flow (m³/h)":    {RiskHigh, "Offer an impeller trim or a VFD to hit the duty point; confirm the system curve with the customer."},
	"Head (m)":       {RiskHigh, "Re-select impeller diameter or stage count; verify the system head calculation."},
	"Efficiency (%)": {RiskMedium, "Negotiate the efficiency guarantee against an ISO 9906 acceptance grade."},
}

// classRisk is the static risk/negotiation lookup keyed by parameter
// class. One entry covers every material parameter and one covers every
// minimum-rating parameter, which is what the source expressed as
// substring tests on "Material" and "Design Pressure".
var classRisk = map[ParamClass]riskEntry{
	ClassHydraulicNumeric:  {RiskMedium, "Engineering review required; quantify the process impact of the deviation."},
	ClassMechanicalMinimum: {RiskHigh, "Re-rate the pressure boundary or revise the flange class; check against maximum suction pressure."},
	ClassEnumMaterial:      {RiskHigh, "Propose a metallurgically equivalent ASTM grade and obtain client metallurgist sign-off."},
	ClassEnumSealPlan:      {RiskMedium, "Align the seal support system with API 682; offer the plan upgrade at delta cost."},
	ClassEnumProtection:    {RiskHigh, "Match the hazardous-area certification; confirm the zone classification with the client."},
	ClassEnumStandard:      {RiskMedium, "Clarify the governing standard edition and request a concession for deviations."},
	ClassPairedNPSH:        {RiskHigh, npshHint},
}

// Engine evaluates two canonical maps against the rule table. Construct
// once at startup; Compare is a pure function over the immutable table.
type Engine struct {
	rules []Rule
	equiv *canon.Registry
}

// NewEngine parses the embedded rule table. The equivalence registry is
// shared with the canonicalizer so enumerated equality and extraction
// normalization can never disagree.
func NewEngine(registry *canon.Registry) (*Engine, error) {
	var file RuleFile
	if err := yaml.Unmarshal(ruleset.ComparisonRules, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded rule table: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("embedded rule table contains no rules")
	}
	return &Engine{rules: file.Rules, equiv: registry}, nil
}

// Rules returns the rule table in declaration order.
func (e *Engine) Rules() []Rule { return e.rules }

// Compare builds the full compliance matrix: one row per rule, in rule
// order, followed by the paired NPSH margin pass. The matrix is rebuilt
// from scratch on every call.
func (e *Engine) Compare(customer, engineering canon.ValueMap) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(e.rules))
	for _, rule := range e.rules {
		rows = append(rows, e.compareOne(rule, customer, engineering))
	}
	e.applyNPSHMargin(rows, customer, engineering)
	return rows
}

func (e *Engine) compareOne(rule Rule, customer, engineering canon.ValueMap) ComparisonRow {
	row := ComparisonRow{
		Parameter:   rule.Parameter,
		Category:    rule.Category,
		Criticality: rule.Criticality,
		Tolerance:   rule.Display,
	}

	cust, custPresent := customer[rule.Parameter]
	eng, engPresent := engineering[rule.Parameter]
	if custPresent {
		v := cust
		row.CustomerValue = &v
	}
	if engPresent {
		v := eng
		row.EngineeringValue = &v
	}

	if !custPresent || !engPresent {
		row.Status = StatusMissing
		e.finishRow(&row, rule)
		return row
	}

	if rule.Kind == KindEnumerated {
		// Pre-canonicalized inputs are fine here: normalization is
		// idempotent, so the equivalence test sees through either form.
		if e.equiv.Equivalent(rule.Class.equivalenceClass(), cust.String(), eng.String()) {
			row.Status = StatusOK
		} else {
			row.Status = StatusIssue
		}
		e.finishRow(&row, rule)
		return row
	}

	custNum, custOK := numericValue(cust)
	engNum, engOK := numericValue(eng)
	if !custOK || !engOK {
		// Coercion failure on a numeric rule degrades the row instead of
		// propagating: the matrix must always be reviewable.
		row.Status = StatusIssue
		e.finishRow(&row, rule)
		return row
	}

	deviation := engNum - custNum
	row.Deviation = &deviation

	var ok bool
	switch rule.Kind {
	case KindRelative:
		ok = math.Abs(deviation) <= math.Abs(custNum)*rule.Tolerance
	case KindAbsolute:
		ok = math.Abs(deviation) <= rule.Tolerance
	case KindAbsoluteMinimum:
		ok = engNum >= custNum
	}
	if ok {
		row.Status = StatusOK
	} else {
		row.Status = StatusIssue
	}
	e.finishRow(&row, rule)
	return row
}

// finishRow assigns severity, risk, and negotiation guidance from the
// row's final status. Severity mirrors criticality except on OK rows.
func (e *Engine) finishRow(row *ComparisonRow, rule Rule) {
	if row.Status == StatusOK {
		row.Severity = string(StatusOK)
		row.Risk = RiskLow
		row.Negotiation = noAction
		return
	}
	row.Severity = string(rule.Criticality)
	entry, ok := paramRisk[rule.Parameter]
	if !ok {
		entry, ok = classRisk[rule.Class]
	}
	if !ok {
		entry = riskEntry{RiskMedium, "Engineering review required."}
	}
	row.Risk = entry.risk
	row.Negotiation = entry.hint
}

// applyNPSHMargin is the cross-parameter post-pass: when the customer's
// NPSH Available and the vendor's NPSH Required both resolve to numbers,
// the cavitation margin overrides both NPSH rows. This deliberately lifts
// rows the per-parameter pass marked Missing — RFQs normally state only
// NPSHa and vendor sheets only NPSHr, and the margin is the verdict that
// matters for the pair.
func (e *Engine) applyNPSHMargin(rows []ComparisonRow, customer, engineering canon.ValueMap) {
	available, aok := numericValue(customer[npshAvailableParam])
	required, rok := numericValue(engineering[npshRequiredParam])
	if !aok || !rok {
		return
	}

	margin := available - required
	pass := margin >= minNPSHMargin

	for i := range rows {
		if rows[i].Parameter != npshAvailableParam && rows[i].Parameter != npshRequiredParam {
			continue
		}
		m := margin
		rows[i].Deviation = &m
		if pass {
			rows[i].Status = StatusOK
			rows[i].Severity = string(StatusOK)
			rows[i].Risk = RiskLow
			rows[i].Negotiation = noAction
		} else {
			rows[i].Status = StatusIssue
			rows[i].Severity = string(Critical)
			rows[i].Risk = RiskHigh
			rows[i].Negotiation = npshHint
		}
	}
}

// numericValue coerces a canonical value to a float. Textual values get
// one parse attempt so a "460" stored as text still compares numerically.
func numericValue(v canon.Value) (float64, bool) {
	if v.Numeric {
		return v.Number, true
	}
	if v.Text == "" {
		return 0, false
	}
	return canon.NormalizeNumber(v.Text)
}
