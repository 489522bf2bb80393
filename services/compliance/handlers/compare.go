// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/datatypes"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine"
	"github.com/SpecComplyAI/SpecComply/services/compliance/observability"
)

// Create a new tracer
var compareTracer = otel.Tracer("speccomply.compliance.handlers")

// defaultTopIssues is the summary's issue-list length when the request
// does not ask for one.
const defaultTopIssues = 5

// CompareDocuments canonicalizes the customer and engineering documents
// concurrently, evaluates the rule table, and returns the full compliance
// matrix with its executive summary. Each run carries a fresh UUID echoed
// in the logs so a matrix in a client's hands can be matched to the
// service's records.
func CompareDocuments(canonicalizer *canon.Canonicalizer, eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			observability.RecordRequest("compare", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		runID := uuid.NewString()
		topN := req.TopIssues
		if topN == 0 {
			topN = defaultTopIssues
		}

		ctx, span := compareTracer.Start(c.Request.Context(), "CompareDocuments",
			trace.WithAttributes(attribute.String("run_id", runID)))
		defer span.End()

		// The two documents are independent, so canonicalize them in
		// parallel. The goroutines only read the immutable catalogs; the
		// only way a side can fail is the request context going away.
		var (
			custValues, engValues canon.ValueMap
			custDiags, engDiags   canon.Diagnostics
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			custValues, custDiags = canonicalizeTimed(canonicalizer, req.Customer.Document())
			return nil
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			engValues, engDiags = canonicalizeTimed(canonicalizer, req.Engineering.Document())
			return nil
		})
		if err := g.Wait(); err != nil {
			observability.RecordRequest("compare", "error")
			slog.Error("Canonicalization failed", "run_id", runID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to canonicalize documents"})
			return
		}

		matrix := eng.Compare(custValues, engValues)
		summary := engine.Summarize(matrix, topN)
		span.SetAttributes(
			attribute.Float64("weighted_score", summary.WeightedScore),
			attribute.Int("open_issues", summary.OpenIssues))

		for _, row := range matrix {
			observability.RecordVerdict(string(row.Status))
		}
		observability.ObserveScore(summary.WeightedScore)
		observability.RecordRequest("compare", "success")

		slog.Info("Comparison run complete",
			"run_id", runID,
			"weighted_score", summary.WeightedScore,
			"open_issues", summary.OpenIssues,
			"customer_fields", len(custValues),
			"engineering_fields", len(engValues))

		c.JSON(http.StatusOK, datatypes.CompareResponse{
			RunID:                  runID,
			Matrix:                 matrix,
			Summary:                summary,
			CustomerDiagnostics:    custDiags,
			EngineeringDiagnostics: engDiags,
		})
	}
}
