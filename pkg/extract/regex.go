// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lintbridge/lintbridge/pkg/findings"
)

// =============================================================================
// Regex Strategy
// =============================================================================

// Named capture groups the regex strategy recognises. The set is closed
// and checked once at construction; patterns may define any subset.
const (
	groupLine     = "line"
	groupSeverity = "severity"
	groupMessage  = "message"
)

// RegexConfig configures a RegexExtractor.
type RegexConfig struct {
	// Pattern is the extraction regex. It may define the named groups
	// "line", "severity", and "message"; a pattern with none of them
	// still yields one finding per match using the defaults below.
	Pattern string

	// Severities maps the tool's severity tokens (exact case, as the
	// tool emits them) to normalized severities.
	Severities findings.SeverityMap

	// DefaultSeverity is used when the severity group is absent,
	// did not participate in a match, or captured an unmapped token.
	DefaultSeverity findings.Severity

	// StaticMessage, when non-empty, overrides the message group and
	// the full-match fallback for every finding.
	StaticMessage string

	// UseMatchOffsets derives a line number from the match position in
	// the scanned text when the line group yields nothing. Without it a
	// missing or unparsable line group produces a file-level finding.
	UseMatchOffsets bool
}

// RegexExtractor emits one finding per non-overlapping pattern match.
//
// # Thread Safety
//
// Immutable after construction; safe for concurrent use.
type RegexExtractor struct {
	cfg     RegexConfig
	re      *regexp.Regexp
	lineIdx int
	sevIdx  int
	msgIdx  int
}

// NewRegexExtractor compiles the pattern and resolves its named groups.
//
// A pattern that does not compile returns ErrPattern: extraction is
// all-or-nothing with respect to configuration, so the failure happens
// here, before any text is scanned.
func NewRegexExtractor(cfg RegexConfig) (*RegexExtractor, error) {
	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPattern, err)
	}
	return &RegexExtractor{
		cfg:     cfg,
		re:      re,
		lineIdx: groupIndex(re, groupLine),
		sevIdx:  groupIndex(re, groupSeverity),
		msgIdx:  groupIndex(re, groupMessage),
	}, nil
}

// Extract scans text and returns the findings in match order.
//
// # Description
//
// Matches are found left to right, non-overlapping; that scan order is
// the emission order, with no reordering. Per match:
//
//   - message: StaticMessage if set, else the message group if it
//     captured, else the entire matched substring
//   - line: the line group parsed as an integer when present and valid;
//     otherwise the match offset via LineAt when UseMatchOffsets is set;
//     otherwise 0 (file-level)
//   - severity: the severity token resolved through the map, falling
//     back to the configured default
//
// Inputs:
//
//	origin - Tool or rule name stamped on each finding
//	file - Path of the analyzed file
//	text - Captured tool output to scan
//
// Outputs:
//
//	*findings.Stream - Single-pass stream, one finding per match
func (e *RegexExtractor) Extract(origin, file, text string) *findings.Stream {
	matches := e.re.FindAllStringSubmatchIndex(text, -1)
	out := make([]findings.Finding, 0, len(matches))
	for _, m := range matches {
		message := e.cfg.StaticMessage
		if message == "" {
			if g, ok := group(text, m, e.msgIdx); ok {
				message = g
			} else {
				message = text[m[0]:m[1]]
			}
		}

		line := 0
		if g, ok := group(text, m, e.lineIdx); ok {
			if n, err := strconv.Atoi(g); err == nil && n > 0 {
				line = n
			}
		}
		if line == 0 && e.cfg.UseMatchOffsets {
			line = LineAt(text, m[0])
		}

		token, _ := group(text, m, e.sevIdx)
		severity := e.cfg.Severities.Resolve(token, e.cfg.DefaultSeverity)

		out = append(out, findings.New(origin, file, line, severity, message))
	}
	return findings.NewStream(out)
}

// groupIndex returns the submatch index of a named group, or -1 when the
// pattern does not define it.
func groupIndex(re *regexp.Regexp, name string) int {
	for i, n := range re.SubexpNames() {
		if i > 0 && n == name {
			return i
		}
	}
	return -1
}

// group extracts a named submatch from a FindAllStringSubmatchIndex
// match. ok is false when the group is undefined or did not participate.
func group(text string, m []int, idx int) (string, bool) {
	if idx < 0 || 2*idx+1 >= len(m) {
		return "", false
	}
	start, end := m[2*idx], m[2*idx+1]
	if start < 0 {
		return "", false
	}
	return text[start:end], true
}
