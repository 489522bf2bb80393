// Copyright (C) 2025 SpecComply Systems (eng@speccomply.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package routes wires the compliance service's endpoints onto a gin
// router.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SpecComplyAI/SpecComply/services/compliance/canon"
	"github.com/SpecComplyAI/SpecComply/services/compliance/engine"
	"github.com/SpecComplyAI/SpecComply/services/compliance/handlers"
)

func SetupRoutes(router *gin.Engine, canonicalizer *canon.Canonicalizer, eng *engine.Engine) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/parse", handlers.ParseDocument(canonicalizer))
		v1.POST("/compare", handlers.CompareDocuments(canonicalizer, eng))
	}
}
