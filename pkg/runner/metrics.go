// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metrics
// =============================================================================

var (
	filesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lintbridge_files_scanned_total",
		Help: "Number of files submitted to tool adapters.",
	})

	filesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lintbridge_files_skipped_total",
		Help: "Number of files skipped because they could not be read or decoded.",
	})

	findingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintbridge_findings_total",
		Help: "Number of findings produced, after ignore and severity filtering.",
	}, []string{"severity"})

	toolFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintbridge_tool_failures_total",
		Help: "Number of tool invocations that could not run or whose output could not be parsed.",
	}, []string{"tool"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lintbridge_tool_duration_seconds",
		Help:    "Wall-clock duration of one tool invocation on one file.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"tool"})
)
