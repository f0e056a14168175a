// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package extract turns captured tool output into findings.
//
// # Description
//
// Three interchangeable strategies are provided:
//
//   - RegexExtractor scans output text with a named-group pattern and
//     emits one finding per match.
//   - ExtractCorrected diffs the tool's rewritten file against the
//     original and emits one finding per change cluster.
//   - ExtractUnifiedDiff parses a unified diff the tool emitted directly
//     and emits one finding per hunk.
//
// Every strategy is a pure function over already-captured text and emits
// findings in its natural scan order; callers combine strategies by
// concatenating their streams. Configuration problems (a malformed
// pattern, an invalid cluster gap) surface before the first finding is
// produced, never mid-stream.
//
// # Thread Safety
//
// Extractors hold no mutable state after construction and are safe to
// use concurrently across files.
package extract

import "errors"

// Sentinel errors for the extract package.
var (
	// ErrPattern indicates the extraction regex failed to compile.
	// This is a configuration error raised at construction time.
	ErrPattern = errors.New("invalid extraction pattern")

	// ErrDiffFormat indicates malformed unified-diff input. The whole
	// parse fails; no partial finding set is ever returned.
	ErrDiffFormat = errors.New("malformed unified diff")
)
