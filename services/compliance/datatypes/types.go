// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes defines the request and response shapes of the
// compliance API, plus the custom binding validations they rely on.
package datatypes

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine"
)

// DocumentPayload is one document as submitted by a client: either raw
// extracted text or a two-column parameter table. Exactly one source must
// be present; the struct validation rejects empty and double submissions.
type DocumentPayload struct {
	Text             string           `json:"text"`
	Table            []canon.TableRow `json:"table" binding:"omitempty,dive"`
	UsedFallbackText bool             `json:"used_fallback_text"`
}

// Document converts the payload to the canonicalizer's input type.
func (p DocumentPayload) Document() canon.Document {
	return canon.Document{
		Text:             p.Text,
		Table:            p.Table,
		UsedFallbackText: p.UsedFallbackText,
	}
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	Document DocumentPayload `json:"document" binding:"required"`
}

// ParseResponse returns the canonical parameter map plus extraction
// diagnostics for one document.
type ParseResponse struct {
	Values      canon.ValueMap    `json:"values"`
	Diagnostics canon.Diagnostics `json:"diagnostics"`
}

// CompareRequest is the body of POST /v1/compare. TopIssues limits the
// ranked issue list in the summary; zero means the server default.
type CompareRequest struct {
	Customer    DocumentPayload `json:"customer" binding:"required"`
	Engineering DocumentPayload `json:"engineering" binding:"required"`
	TopIssues   int             `json:"top_issues" binding:"omitempty,min=1,max=50"`
}

// CompareResponse carries the full compliance matrix, the executive
// summary, and per-document diagnostics, tagged with the run id echoed in
// the service logs.
type CompareResponse struct {
	RunID                  string                 `json:"run_id"`
	Matrix                 []engine.ComparisonRow `json:"matrix"`
	Summary                engine.Summary         `json:"summary"`
	CustomerDiagnostics    canon.Diagnostics      `json:"customer_diagnostics"`
	EngineeringDiagnostics canon.Diagnostics      `json:"engineering_diagnostics"`
}

// validateDocumentPayload enforces the one-source rule: a payload must
// carry text or a table, and not both.
func validateDocumentPayload(sl validator.StructLevel) {
	p := sl.Current().Interface().(DocumentPayload)
	if p.Text == "" && len(p.Table) == 0 {
		sl.ReportError(p.Text, "text", "Text", "docsource", "")
	}
	if p.Text != "" && len(p.Table) > 0 {
		sl.ReportError(p.Table, "table", "Table", "docsource", "")
	}
}

// RegisterValidations installs the document-source struct validation on
// gin's binding validator. Call once at startup, before the router binds
// its first request.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(validateDocumentPayload, DocumentPayload{})
	}
}
