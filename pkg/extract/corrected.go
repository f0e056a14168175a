// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"github.com/lintbridge/lintbridge/pkg/findings"
	"github.com/lintbridge/lintbridge/pkg/textdiff"
)

// DefaultFixMessage is used when a diff-based strategy has no
// caller-supplied message.
const DefaultFixMessage = "This can be fixed automatically."

// =============================================================================
// Corrected-File Strategy
// =============================================================================

// ExtractCorrected diffs the tool's rewritten output against the original
// file and emits one finding per change cluster.
//
// # Description
//
// The edit script between original and corrected is clustered with the
// given gap tolerance (see textdiff.ClusterScript); each cluster becomes
// one patch and one finding. Findings carry the cluster's starting
// original line and the fixed severity, and come back in ascending line
// order because clusters are discovered front to back.
//
// Identical inputs produce an empty stream. An invalid gap fails before
// any diffing, yielding no findings at all.
//
// Inputs:
//
//	origin - Tool name stamped on each finding
//	file - Path of the analyzed file
//	original - The file's lines as read from disk
//	corrected - The tool's rewritten lines
//	gap - Cluster merge tolerance, >= -1
//	severity - Severity for every emitted finding
//	message - Finding message; empty selects DefaultFixMessage
//
// Outputs:
//
//	*findings.Stream - One finding per cluster, ascending line order
//	error - textdiff.ErrInvalidGap for gap < -1
func ExtractCorrected(origin, file string, original, corrected []string, gap int, severity findings.Severity, message string) (*findings.Stream, error) {
	patches, err := textdiff.Patches(original, corrected, gap)
	if err != nil {
		return nil, err
	}
	if message == "" {
		message = DefaultFixMessage
	}
	out := make([]findings.Finding, 0, len(patches))
	for i := range patches {
		p := patches[i]
		out = append(out, findings.New(origin, file, p.StartLine, severity, message).WithFix(&p))
	}
	return findings.NewStream(out), nil
}
