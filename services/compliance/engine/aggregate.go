// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"sort"
)

// CategoryStat is the pass-rate summary for one rule category.
type CategoryStat struct {
	Category  string  `json:"category"`
	PassCount int     `json:"pass_count"`
	Total     int     `json:"total"`
	PassRate  float64 `json:"pass_rate_pct"`
}

// Summary carries everything the one-page executive report needs.
type Summary struct {
	WeightedScore float64         `json:"weighted_score_pct"`
	CriticalCount int             `json:"critical_count"`
	OpenIssues    int             `json:"open_issues"`
	Categories    []CategoryStat  `json:"categories"`
	TopIssues     []ComparisonRow `json:"top_issues"`
}

// WeightedScore computes the criticality-weighted compliance percentage:
// 100 × Σ(weight × 1[OK]) / Σ(weight), weights Critical=3, Major=2,
// Minor=1. An empty matrix yields 0.0 by convention.
func WeightedScore(rows []ComparisonRow) float64 {
	var earned, possible int
	for _, row := range rows {
		w := row.Criticality.Weight()
		possible += w
		if row.Status == StatusOK {
			earned += w
		}
	}
	if possible == 0 {
		return 0.0
	}
	return 100.0 * float64(earned) / float64(possible)
}

// CategorySummary groups rows by category, in first-appearance order, and
// reports (passCount, total, passRate%) per category. A category with zero
// rows contributes a 0.0 pass rate rather than failing.
func CategorySummary(rows []ComparisonRow) []CategoryStat {
	index := make(map[string]int)
	var stats []CategoryStat

	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			i = len(stats)
			index[row.Category] = i
			stats = append(stats, CategoryStat{Category: row.Category})
		}
		stats[i].Total++
		if row.Status == StatusOK {
			stats[i].PassCount++
		}
	}
	for i := range stats {
		if stats[i].Total == 0 {
			stats[i].PassRate = 0.0
			continue
		}
		stats[i].PassRate = 100.0 * float64(stats[i].PassCount) / float64(stats[i].Total)
	}
	return stats
}

// TopIssues returns up to n non-OK rows ranked by descending criticality
// weight. The sort is stable, so rows of equal weight keep their rule
// declaration order — the documented tie-break for the report's top-issues
// section.
func TopIssues(rows []ComparisonRow, n int) []ComparisonRow {
	var issues []ComparisonRow
	for _, row := range rows {
		if row.Status != StatusOK {
			issues = append(issues, row)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Criticality.Weight() > issues[j].Criticality.Weight()
	})
	if n >= 0 && len(issues) > n {
		issues = issues[:n]
	}
	return issues
}

// Summarize assembles the executive KPI block: weighted score, count of
// Critical-criticality rows, count of open issues (Issue or Missing), the
// per-category pass rates, and the ranked top issues.
func Summarize(rows []ComparisonRow, topN int) Summary {
	s := Summary{
		WeightedScore: WeightedScore(rows),
		Categories:    CategorySummary(rows),
		TopIssues:     TopIssues(rows, topN),
	}
	for _, row := range rows {
		if row.Criticality == Critical {
			s.CriticalCount++
		}
		if row.Status == StatusIssue || row.Status == StatusMissing {
			s.OpenIssues++
		}
	}
	return s
}
