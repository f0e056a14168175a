// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/lintbridge/lintbridge/pkg/findings"
)

// =============================================================================
// Unified-Diff Strategy
// =============================================================================

// ExtractUnifiedDiff parses unified-diff text the tool emitted directly
// and emits one finding per hunk.
//
// # Description
//
// Accepts either bare hunks (`@@ ... @@` onward) or a full diff with
// `---`/`+++` file headers; tools emit both shapes. Each hunk becomes
// exactly one patch whose line range is the hunk header's new-file
// range, and findings come back in the order the hunks appear in the
// text, top to bottom, with no re-sorting.
//
// Malformed input (non-numeric ranges, missing `@@` delimiters, stray
// lines) fails the entire parse with ErrDiffFormat. There is no
// best-effort recovery: a corrupt diff never yields a truncated finding
// set. Empty input yields an empty stream.
//
// Inputs:
//
//	origin - Tool name stamped on each finding
//	file - Path of the analyzed file
//	diffText - Captured diff output
//	severity - Severity for every emitted finding
//	message - Finding message; empty selects DefaultFixMessage
//
// Outputs:
//
//	*findings.Stream - One finding per hunk, document order
//	error - ErrDiffFormat when the diff cannot be parsed
func ExtractUnifiedDiff(origin, file, diffText string, severity findings.Severity, message string) (*findings.Stream, error) {
	if strings.TrimSpace(diffText) == "" {
		return findings.Empty(), nil
	}

	hunks, err := parseHunks(diffText)
	if err != nil {
		return nil, err
	}
	if message == "" {
		message = DefaultFixMessage
	}

	out := make([]findings.Finding, 0, len(hunks))
	for _, h := range hunks {
		start := int(h.NewStartLine)
		end := start + int(h.NewLines) - 1
		if end < start {
			end = start
		}
		p := &findings.Patch{
			StartLine: start,
			EndLine:   end,
			DiffText:  renderHunk(h),
		}
		out = append(out, findings.New(origin, file, start, severity, message).WithFix(p))
	}
	return findings.NewStream(out), nil
}

// parseHunks dispatches between full-diff and bare-hunk input. The parse
// completes before any finding is produced, keeping the all-or-nothing
// contract.
func parseHunks(diffText string) ([]*diff.Hunk, error) {
	if hasFileHeader(diffText) {
		fileDiffs, err := diff.ParseMultiFileDiff([]byte(diffText))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDiffFormat, err)
		}
		var hunks []*diff.Hunk
		for _, fd := range fileDiffs {
			hunks = append(hunks, fd.Hunks...)
		}
		return hunks, nil
	}

	hunks, err := diff.ParseHunks([]byte(diffText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiffFormat, err)
	}
	return hunks, nil
}

// hasFileHeader reports whether a "--- " file header precedes the first
// hunk header.
func hasFileHeader(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "--- ") {
			return true
		}
		if strings.HasPrefix(line, "@@ ") {
			return false
		}
	}
	return false
}

// renderHunk re-serializes a parsed hunk as patch text.
func renderHunk(h *diff.Hunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines)
	if h.Section != "" {
		header += " " + h.Section
	}
	body := string(h.Body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return header + "\n" + body
}
