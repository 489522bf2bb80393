// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the compliance
// service: request counters by endpoint and status, per-verdict row
// counters, and canonicalization latency histograms. Metrics are exposed
// on /metrics; all operations are thread-safe via Prometheus's internal
// locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "speccomply"

const complianceSubsystem = "compliance"

// ComplianceMetrics holds all Prometheus metrics for comparison runs.
// Initialize once at startup via InitMetrics; registering twice panics on
// duplicate registration, which is deliberate.
type ComplianceMetrics struct {
	// RequestsTotal counts API requests.
	// Labels: endpoint (parse, compare), status (success, error)
	RequestsTotal *prometheus.CounterVec

	// RowVerdictsTotal counts matrix rows by verdict.
	// Labels: status (OK, Issue, Missing)
	RowVerdictsTotal *prometheus.CounterVec

	// CanonicalizeDurationSeconds measures one document's
	// canonicalization latency.
	// Labels: source (text, table)
	CanonicalizeDurationSeconds *prometheus.HistogramVec

	// WeightedScorePercent observes the weighted compliance score of
	// each comparison run.
	WeightedScorePercent prometheus.Histogram
}

// DefaultMetrics is the singleton instance, populated by InitMetrics.
var DefaultMetrics *ComplianceMetrics

// InitMetrics creates and registers all metrics on the default registry.
// Call once at application startup, before the router starts serving.
func InitMetrics() *ComplianceMetrics {
	DefaultMetrics = &ComplianceMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: complianceSubsystem,
				Name:      "requests_total",
				Help:      "Total API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		RowVerdictsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: complianceSubsystem,
				Name:      "row_verdicts_total",
				Help:      "Comparison matrix rows by verdict",
			},
			[]string{"status"},
		),
		CanonicalizeDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: complianceSubsystem,
				Name:      "canonicalize_duration_seconds",
				Help:      "Latency of canonicalizing one document",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"source"},
		),
		WeightedScorePercent: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: complianceSubsystem,
				Name:      "weighted_score_percent",
				Help:      "Weighted compliance score per comparison run",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
		),
	}
	return DefaultMetrics
}

// RecordRequest increments the request counter when metrics are
// initialized; a nil singleton (CLI usage, unit tests) is a no-op.
func RecordRequest(endpoint, status string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.RequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordVerdict counts one matrix row's verdict.
func RecordVerdict(status string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.RowVerdictsTotal.WithLabelValues(status).Inc()
}

// ObserveCanonicalize records one document's canonicalization latency.
func ObserveCanonicalize(source string, seconds float64) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.CanonicalizeDurationSeconds.WithLabelValues(source).Observe(seconds)
}

// ObserveScore records one run's weighted score.
func ObserveScore(percent float64) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.WeightedScorePercent.Observe(percent)
}
