// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// newTestMetrics creates a ComplianceMetrics instance on a private
// registry so tests never collide with the global one.
func newTestMetrics(t *testing.T) *ComplianceMetrics {
	t.Helper()

	reg := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: complianceSubsystem,
			Name:      "requests_total",
			Help:      "Total API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	rowVerdictsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: complianceSubsystem,
			Name:      "row_verdicts_total",
			Help:      "Comparison matrix rows by verdict",
		},
		[]string{"status"},
	)

	canonicalizeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: complianceSubsystem,
			Name:      "canonicalize_duration_seconds",
			Help:      "Latency of canonicalizing one document",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"source"},
	)

	scorePercent := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: complianceSubsystem,
			Name:      "weighted_score_percent",
			Help:      "Weighted compliance score per comparison run",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	reg.MustRegister(requestsTotal, rowVerdictsTotal, canonicalizeDuration, scorePercent)

	return &ComplianceMetrics{
		RequestsTotal:               requestsTotal,
		RowVerdictsTotal:            rowVerdictsTotal,
		CanonicalizeDurationSeconds: canonicalizeDuration,
		WeightedScorePercent:        scorePercent,
	}
}

// InitMetrics registers on the default registry via promauto, so it can
// only run once per test binary.
var initMetricsTestOnce bool

func TestInitMetrics(t *testing.T) {
	if initMetricsTestOnce {
		t.Skip("InitMetrics can only be called once per test run (promauto restriction)")
	}
	initMetricsTestOnce = true

	result := InitMetrics()
	if result == nil {
		t.Fatal("InitMetrics() returned nil")
	}
	if DefaultMetrics != result {
		t.Error("DefaultMetrics should equal the returned value")
	}
	if result.RequestsTotal == nil || result.RowVerdictsTotal == nil ||
		result.CanonicalizeDurationSeconds == nil || result.WeightedScorePercent == nil {
		t.Error("All metric fields should be initialized")
	}

	// Verify the package helpers route to the singleton without panicking.
	RecordRequest("compare", "success")
	RecordVerdict("OK")
	ObserveCanonicalize("text", 0.002)
	ObserveScore(87.5)
}

func TestConstants(t *testing.T) {
	if metricsNamespace != "speccomply" {
		t.Errorf("metricsNamespace = %q, want %q", metricsNamespace, "speccomply")
	}
	if complianceSubsystem != "compliance" {
		t.Errorf("complianceSubsystem = %q, want %q", complianceSubsystem, "compliance")
	}
}

func TestComplianceMetrics_Counters(t *testing.T) {
	m := newTestMetrics(t)

	m.RequestsTotal.WithLabelValues("parse", "success").Inc()
	m.RequestsTotal.WithLabelValues("parse", "success").Inc()
	m.RequestsTotal.WithLabelValues("compare", "error").Inc()

	successVal := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("parse", "success"))
	if successVal != 2 {
		t.Errorf("RequestsTotal[parse,success] = %f, want 2", successVal)
	}
	errorVal := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("compare", "error"))
	if errorVal != 1 {
		t.Errorf("RequestsTotal[compare,error] = %f, want 1", errorVal)
	}

	m.RowVerdictsTotal.WithLabelValues("Issue").Inc()
	m.RowVerdictsTotal.WithLabelValues("Issue").Inc()
	m.RowVerdictsTotal.WithLabelValues("Missing").Inc()

	issueVal := testutil.ToFloat64(m.RowVerdictsTotal.WithLabelValues("Issue"))
	if issueVal != 2 {
		t.Errorf("RowVerdictsTotal[Issue] = %f, want 2", issueVal)
	}
}

func TestComplianceMetrics_Histograms(t *testing.T) {
	m := newTestMetrics(t)

	m.CanonicalizeDurationSeconds.WithLabelValues("text").Observe(0.005)
	m.CanonicalizeDurationSeconds.WithLabelValues("table").Observe(0.0002)
	m.WeightedScorePercent.Observe(72.5)

	count := testutil.CollectAndCount(m.CanonicalizeDurationSeconds)
	if count == 0 {
		t.Error("Expected at least one canonicalize histogram series")
	}
}

func TestPackageHelpers_NilSingletonIsNoOp(t *testing.T) {
	saved := DefaultMetrics
	DefaultMetrics = nil
	defer func() { DefaultMetrics = saved }()

	// Must not panic when metrics were never initialized (CLI usage).
	RecordRequest("parse", "success")
	RecordVerdict("OK")
	ObserveCanonicalize("table", 0.001)
	ObserveScore(50.0)
}
