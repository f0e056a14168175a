// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package findings defines the normalized result model shared by every
// extraction strategy.
//
// # Description
//
// A Finding is one normalized analysis result: where it is, what it says,
// how important it is, and optionally how to fix it. Findings are created
// by extractors, carried through streams, and consumed by the host; they
// are never mutated after creation.
//
// # Thread Safety
//
// Finding, Severity, SeverityMap, and Patch are immutable value types and
// safe to share between goroutines. Stream is single-consumer.
package findings

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// Severity
// =============================================================================

// Severity classifies how important a finding is.
//
// The three levels form a total order Info < Normal < Major. The order
// exists for threshold filtering only; nothing in this module sorts
// findings by severity.
type Severity int

const (
	// SeverityInfo is for purely informational findings.
	SeverityInfo Severity = iota

	// SeverityNormal is for findings worth fixing.
	SeverityNormal

	// SeverityMajor is for findings that should block.
	SeverityMajor
)

// String returns "INFO", "NORMAL", or "MAJOR".
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityNormal:
		return "NORMAL"
	case SeverityMajor:
		return "MAJOR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a level name into a Severity.
//
// Matching is case-insensitive. Unknown names return an error so that
// configuration typos fail loudly instead of silently downgrading.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INFO":
		return SeverityInfo, nil
	case "NORMAL":
		return SeverityNormal, nil
	case "MAJOR":
		return SeverityMajor, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize
// as their names rather than bare integers.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// =============================================================================
// Severity Map
// =============================================================================

// SeverityMap maps a tool-specific token (a letter code, a word, whatever
// the tool emits) to a normalized Severity.
//
// Lookup is exact-string and case-sensitive. Callers supply tokens in the
// tool's own vocabulary; this package never normalizes them.
type SeverityMap map[string]Severity

// Resolve returns the severity for token, or def when the token is empty
// or unmapped. Resolution always succeeds.
func (m SeverityMap) Resolve(token string, def Severity) Severity {
	if token == "" {
		return def
	}
	if sev, ok := m[token]; ok {
		return sev
	}
	return def
}

// =============================================================================
// Patch
// =============================================================================

// Patch is one contiguous, user-reviewable change to a file.
//
// StartLine and EndLine are 1-based line numbers in the original file
// spanning the changed region. For pure insertions StartLine equals
// EndLine and names the anchor line the insertion follows (clamped to 1
// for insertions at the top of the file).
//
// DiffText is the change rendered as a single unified-diff hunk, suitable
// both for display and for re-parsing.
type Patch struct {
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	DiffText  string `json:"diff_text"`
}

// =============================================================================
// Finding
// =============================================================================

// Finding is one normalized analysis result.
//
// # Description
//
// Findings are immutable once constructed. Line is 1-based; zero means
// the finding addresses the whole file rather than a specific line.
// Fix is optional and owned solely by the finding that references it.
type Finding struct {
	// ID uniquely identifies this finding within a run.
	ID string `json:"id"`

	// Origin names the tool or rule that produced the finding.
	Origin string `json:"origin"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// File is the path of the analyzed file.
	File string `json:"file"`

	// Line is the 1-based line number, or 0 for file-level findings.
	Line int `json:"line,omitempty"`

	// Severity is the normalized importance classification.
	Severity Severity `json:"severity"`

	// Fix is the optional autofix patch.
	Fix *Patch `json:"fix,omitempty"`
}

// New constructs a Finding with a fresh ID.
//
// Inputs:
//
//	origin - Tool or rule name
//	file - Path of the analyzed file
//	line - 1-based line number, 0 for file-level
//	severity - Normalized severity
//	message - Human-readable description
//
// Outputs:
//
//	Finding - The immutable finding record
func New(origin, file string, line int, severity Severity, message string) Finding {
	return Finding{
		ID:       uuid.NewString(),
		Origin:   origin,
		Message:  message,
		File:     file,
		Line:     line,
		Severity: severity,
	}
}

// WithFix returns a copy of the finding carrying the given patch.
func (f Finding) WithFix(p *Patch) Finding {
	f.Fix = p
	return f
}

// HasLine reports whether the finding is line-addressable.
func (f Finding) HasLine() bool {
	return f.Line > 0
}

// String formats the finding for logs and plain-text reports.
func (f Finding) String() string {
	if f.HasLine() {
		return fmt.Sprintf("%s:%d: [%s] %s (%s)", f.File, f.Line, f.Severity, f.Message, f.Origin)
	}
	return fmt.Sprintf("%s: [%s] %s (%s)", f.File, f.Severity, f.Message, f.Origin)
}
