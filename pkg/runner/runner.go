// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package runner

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lintbridge/lintbridge/pkg/adapter"
	"github.com/lintbridge/lintbridge/pkg/findings"
	"github.com/lintbridge/lintbridge/pkg/logging"
)

// =============================================================================
// Runner
// =============================================================================

// Options configures a Runner. The zero value uses one worker per CPU,
// reports every severity, and logs to the default logger.
type Options struct {
	// Jobs caps concurrent files. Zero or negative means runtime.NumCPU.
	Jobs int

	// MinSeverity drops findings below this level.
	MinSeverity findings.Severity

	// Logger receives per-file warnings. Nil means logging.Default.
	Logger *logging.Logger
}

// Runner fans a fixed set of tool adapters out over files.
//
// Thread Safety: Immutable after construction; Run may be called
// concurrently, though one call already saturates Jobs workers.
type Runner struct {
	adapters []*adapter.Adapter
	jobs     int
	minSev   findings.Severity
	logger   *logging.Logger
}

// New builds a Runner over the given adapters. Adapters whose binaries
// are missing are reported and excluded up front, so a half-installed
// toolchain degrades instead of failing.
func New(adapters []*adapter.Adapter, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	available := make([]*adapter.Adapter, 0, len(adapters))
	for _, a := range adapters {
		if !a.IsAvailable() {
			logger.Warn("tool not installed, skipping", "tool", a.Name())
			continue
		}
		available = append(available, a)
	}

	return &Runner{
		adapters: available,
		jobs:     jobs,
		minSev:   opts.MinSeverity,
		logger:   logger,
	}
}

// Tools returns the names of the adapters that will actually run.
func (r *Runner) Tools() []string {
	names := make([]string, len(r.adapters))
	for i, a := range r.adapters {
		names[i] = a.Name()
	}
	return names
}

// Run analyzes every file with every adapter and returns the surviving
// findings.
//
// # Description
//
// Files are processed concurrently up to the job limit, but the result
// order is deterministic: findings appear grouped by input file, in
// input order, and within a file in adapter order then strategy-native
// order. Inline ignore directives and the minimum-severity threshold are
// applied per file. Unreadable or non-UTF-8 files are skipped with a
// warning. A tool that fails on one file is logged and counted; it does
// not abort the run.
//
// Outputs:
//
//	[]findings.Finding - Filtered findings in deterministic order
//	error - Only context cancellation aborts the run
func (r *Runner) Run(ctx context.Context, files []string) ([]findings.Finding, error) {
	slots := make([][]findings.Finding, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.jobs)
	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			slots[i] = r.runFile(groupCtx, file)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var all []findings.Finding
	for _, slot := range slots {
		all = append(all, slot...)
	}
	return all, nil
}

// runFile analyzes one file with every adapter and filters the results.
func (r *Runner) runFile(ctx context.Context, file string) []findings.Finding {
	content, err := ReadFileUTF8(file)
	if err != nil {
		filesSkipped.Inc()
		if errors.Is(err, ErrNotUTF8) {
			r.logger.Warn("skipping undecodable file", "file", file)
		} else {
			r.logger.Warn("skipping unreadable file", "file", file, "error", err)
		}
		return nil
	}
	filesScanned.Inc()
	ranges := ScanIgnoreRanges(content)

	streams := make([]*findings.Stream, 0, len(r.adapters))
	for _, a := range r.adapters {
		start := time.Now()
		stream, err := a.RunContent(ctx, file, content)
		toolDuration.WithLabelValues(a.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			toolFailures.WithLabelValues(a.Name()).Inc()
			r.logger.Error("tool run failed", "tool", a.Name(), "file", file, "error", err)
			continue
		}
		streams = append(streams, stream)
	}

	var kept []findings.Finding
	for _, f := range findings.Concat(streams...).Collect() {
		if f.Severity < r.minSev {
			continue
		}
		if Ignored(ranges, f.Origin, f.Line) {
			continue
		}
		findingsTotal.WithLabelValues(f.Severity.String()).Inc()
		kept = append(kept, f)
	}
	return kept
}
