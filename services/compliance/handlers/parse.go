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
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/datatypes"
	"github.com/SpecComplyAI/SpecComply/services/compliance/observability"
)

// documentSource labels a payload for metrics and logs.
func documentSource(doc canon.Document) string {
	if len(doc.Table) > 0 {
		return "table"
	}
	return "text"
}

// canonicalizeTimed runs one document through the canonicalizer and
// records the latency histogram.
func canonicalizeTimed(canonicalizer *canon.Canonicalizer, doc canon.Document) (canon.ValueMap, canon.Diagnostics) {
	start := time.Now()
	values, diags := canonicalizer.Canonicalize(doc)
	observability.ObserveCanonicalize(documentSource(doc), time.Since(start).Seconds())
	return values, diags
}

// ParseDocument canonicalizes a single document and returns the parameter
// map plus extraction diagnostics. An empty map is a valid outcome, not
// an error; the diagnostics tell the client what was seen.
func ParseDocument(canonicalizer *canon.Canonicalizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ParseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			observability.RecordRequest("parse", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		values, diags := canonicalizeTimed(canonicalizer, req.Document.Document())

		slog.Info("Parsed document",
			"source", documentSource(req.Document.Document()),
			"fields_found", len(diags.FieldsFound),
			"characters", diags.CharactersExtracted)

		observability.RecordRequest("parse", "success")
		c.JSON(http.StatusOK, datatypes.ParseResponse{
			Values:      values,
			Diagnostics: diags,
		})
	}
}
