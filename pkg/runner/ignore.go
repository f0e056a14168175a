// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package runner

import (
	"strings"

	"github.com/lintbridge/lintbridge/pkg/textdiff"
)

// =============================================================================
// Inline Ignore Directives
// =============================================================================

// IgnoreRange suppresses findings from the named origins within a line
// span of one file.
//
// # Description
//
// Ranges come from inline comments in the analyzed file:
//
//	// ignore mytool           suppresses this line and the next
//	// start ignoring mytool   opens a block
//	// stop ignoring           closes the most recent open block
//
// Origin lists are comma- or "and"-separated. "all", or an empty list,
// suppresses every origin. An unclosed block extends to end of file.
type IgnoreRange struct {
	// Origins are the suppressed tool names, lowercase. Empty means all.
	Origins []string

	// Start and End are 1-based inclusive line bounds.
	Start int
	End   int
}

// Covers reports whether the range suppresses origin at line.
func (r IgnoreRange) Covers(origin string, line int) bool {
	if line < r.Start || line > r.End {
		return false
	}
	if len(r.Origins) == 0 {
		return true
	}
	origin = strings.ToLower(origin)
	for _, o := range r.Origins {
		if o == "all" || o == origin {
			return true
		}
	}
	return false
}

type openBlock struct {
	origins []string
	start   int
}

// ScanIgnoreRanges extracts ignore ranges from file content.
func ScanIgnoreRanges(content string) []IgnoreRange {
	var ranges []IgnoreRange
	var open []openBlock

	lines := textdiff.SplitLines(content)
	for i, line := range lines {
		lineNo := i + 1
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "start ignoring"):
			open = append(open, openBlock{
				origins: parseOrigins(after(lower, "start ignoring")),
				start:   lineNo,
			})
		case strings.Contains(lower, "stop ignoring"):
			if n := len(open); n > 0 {
				block := open[n-1]
				open = open[:n-1]
				ranges = append(ranges, IgnoreRange{Origins: block.origins, Start: block.start, End: lineNo})
			}
		case strings.Contains(lower, "ignore "):
			// A single-line directive also shields the following line,
			// so it can sit above the code it annotates.
			ranges = append(ranges, IgnoreRange{
				Origins: parseOrigins(after(lower, "ignore ")),
				Start:   lineNo,
				End:     lineNo + 1,
			})
		}
	}

	for _, block := range open {
		ranges = append(ranges, IgnoreRange{Origins: block.origins, Start: block.start, End: len(lines)})
	}
	return ranges
}

// Ignored reports whether any range suppresses origin at line. Findings
// without a line (line 0) are never suppressed.
func Ignored(ranges []IgnoreRange, origin string, line int) bool {
	if line == 0 {
		return false
	}
	for _, r := range ranges {
		if r.Covers(origin, line) {
			return true
		}
	}
	return false
}

// after returns the text following the first occurrence of keyword.
func after(line, keyword string) string {
	idx := strings.Index(line, keyword)
	return line[idx+len(keyword):]
}

// parseOrigins splits an origin list on commas and "and", trimming
// comment closers and punctuation. An empty result means all origins.
func parseOrigins(text string) []string {
	text = strings.NewReplacer(" and ", ",", "*/", " ", "-->", " ").Replace(text)
	var origins []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimFunc(part, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-')
		})
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
