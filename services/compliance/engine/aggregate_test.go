// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRow(parameter, category string, criticality Criticality, status Status) ComparisonRow {
	return ComparisonRow{
		Parameter:   parameter,
		Category:    category,
		Criticality: criticality,
		Status:      status,
	}
}

func TestWeightedScore(t *testing.T) {
	rows := []ComparisonRow{
		makeRow("a", "Hydraulic", Critical, StatusOK),    // weight 3, earned
		makeRow("b", "Hydraulic", Major, StatusIssue),    // weight 2
		makeRow("c", "Electrical", Minor, StatusOK),      // weight 1, earned
		makeRow("d", "Electrical", Minor, StatusMissing), // weight 1
	}

	// (3+1) / (3+2+1+1) = 4/7
	assert.InDelta(t, 100.0*4.0/7.0, WeightedScore(rows), 1e-9)
}

func TestWeightedScoreEmptyMatrix(t *testing.T) {
	assert.Equal(t, 0.0, WeightedScore(nil))
}

func TestWeightedScoreIsMonotonic(t *testing.T) {
	rows := []ComparisonRow{
		makeRow("a", "Hydraulic", Critical, StatusIssue),
		makeRow("b", "Hydraulic", Major, StatusMissing),
		makeRow("c", "Materials", Major, StatusOK),
		makeRow("d", "Electrical", Minor, StatusIssue),
	}
	base := WeightedScore(rows)

	// Flipping any single non-OK row to OK must never decrease the score.
	for i := range rows {
		if rows[i].Status == StatusOK {
			continue
		}
		flipped := make([]ComparisonRow, len(rows))
		copy(flipped, rows)
		flipped[i].Status = StatusOK
		assert.GreaterOrEqual(t, WeightedScore(flipped), base,
			"flipping %q to OK decreased the score", rows[i].Parameter)
	}
}

func TestCategorySummary(t *testing.T) {
	rows := []ComparisonRow{
		makeRow("a", "Hydraulic", Critical, StatusOK),
		makeRow("b", "Hydraulic", Major, StatusOK),
		makeRow("c", "Hydraulic", Major, StatusOK),
		makeRow("d", "Hydraulic", Minor, StatusIssue),
		makeRow("e", "Materials", Critical, StatusMissing),
	}

	stats := CategorySummary(rows)
	require.Len(t, stats, 2)

	// Categories keep first-appearance order.
	assert.Equal(t, "Hydraulic", stats[0].Category)
	assert.Equal(t, 3, stats[0].PassCount)
	assert.Equal(t, 4, stats[0].Total)
	assert.InDelta(t, 75.0, stats[0].PassRate, 1e-9)

	assert.Equal(t, "Materials", stats[1].Category)
	assert.InDelta(t, 0.0, stats[1].PassRate, 1e-9)
}

func TestTopIssues(t *testing.T) {
	rows := []ComparisonRow{
		makeRow("minor-1", "Nozzles", Minor, StatusIssue),
		makeRow("ok", "Hydraulic", Critical, StatusOK),
		makeRow("major-1", "Sealing", Major, StatusMissing),
		makeRow("critical-1", "Materials", Critical, StatusIssue),
		makeRow("major-2", "Electrical", Major, StatusIssue),
	}

	top := TopIssues(rows, 3)
	require.Len(t, top, 3)

	// Descending criticality weight; equal weights keep rule order.
	assert.Equal(t, "critical-1", top[0].Parameter)
	assert.Equal(t, "major-1", top[1].Parameter)
	assert.Equal(t, "major-2", top[2].Parameter)

	assert.Len(t, TopIssues(rows, 100), 4, "OK rows never rank as issues")
}

func TestSummarize(t *testing.T) {
	rows := []ComparisonRow{
		makeRow("a", "Hydraulic", Critical, StatusOK),
		makeRow("b", "Hydraulic", Critical, StatusIssue),
		makeRow("c", "Materials", Major, StatusMissing),
		makeRow("d", "Electrical", Minor, StatusOK),
	}

	s := Summarize(rows, 2)
	assert.Equal(t, 2, s.CriticalCount)
	assert.Equal(t, 2, s.OpenIssues)
	require.Len(t, s.TopIssues, 2)
	assert.Equal(t, "b", s.TopIssues[0].Parameter)
	assert.InDelta(t, WeightedScore(rows), s.WeightedScore, 1e-9)
	assert.NotEmpty(t, s.Categories)
}
