// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package textdiff

import (
	"fmt"
	"strings"

	"github.com/lintbridge/lintbridge/pkg/findings"
)

// =============================================================================
// Patch Construction
// =============================================================================

// BuildPatch renders one cluster as a findings.Patch.
//
// # Description
//
// The patch's line range spans the changed original lines of the cluster.
// A pure-insertion cluster has no original lines; its range collapses to
// the anchor line the insertion follows, clamped to 1 so the range is
// always a valid file position.
//
// DiffText is a single unified-diff hunk with a `@@ -a,b +c,d @@` header.
// Pure insertions render a zero-length original range (`-a,0`) and pure
// deletions a zero-length corrected range (`+c,0`), matching standard
// unified-diff conventions.
func BuildPatch(cluster []EditOp) findings.Patch {
	oldStart, oldCount := 0, 0
	newStart, newCount := 0, 0
	anchorOld, anchorNew := -1, -1
	first, last := 0, 0

	var body strings.Builder
	for _, op := range cluster {
		switch op.Kind {
		case OpKeep:
			if oldCount == 0 {
				oldStart = op.OldLine
			}
			if newCount == 0 {
				newStart = op.NewLine
			}
			oldCount++
			newCount++
			body.WriteString(" " + chomp(op.Old) + "\n")
		case OpDelete:
			if oldCount == 0 {
				oldStart = op.OldLine
			}
			if anchorNew < 0 {
				anchorNew = op.NewLine
			}
			oldCount++
			first, last = spanChanged(first, last, op.OldLine)
			body.WriteString("-" + chomp(op.Old) + "\n")
		case OpInsert:
			if newCount == 0 {
				newStart = op.NewLine
			}
			if anchorOld < 0 {
				anchorOld = op.OldLine
			}
			newCount++
			anchor := op.OldLine
			if anchor < 1 {
				anchor = 1
			}
			first, last = spanChanged(first, last, anchor)
			body.WriteString("+" + chomp(op.New) + "\n")
		case OpReplace:
			if oldCount == 0 {
				oldStart = op.OldLine
			}
			if newCount == 0 {
				newStart = op.NewLine
			}
			oldCount++
			newCount++
			first, last = spanChanged(first, last, op.OldLine)
			body.WriteString("-" + chomp(op.Old) + "\n")
			body.WriteString("+" + chomp(op.New) + "\n")
		}
	}

	// Zero-length sides report the anchor position per unified diff
	// conventions.
	if oldCount == 0 && anchorOld >= 0 {
		oldStart = anchorOld
	}
	if newCount == 0 && anchorNew >= 0 {
		newStart = anchorNew
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	return findings.Patch{
		StartLine: first,
		EndLine:   last,
		DiffText:  header + body.String(),
	}
}

// spanChanged widens the [first, last] changed-line span.
func spanChanged(first, last, line int) (int, int) {
	if first == 0 || line < first {
		first = line
	}
	if line > last {
		last = line
	}
	return first, last
}

// Patches is the corrected-file strategy in one call: diff the two line
// sequences, cluster the changes with the given gap, and render each
// cluster as a patch.
//
// The gap is validated before any diffing so the call is all-or-nothing:
// an invalid gap never produces a partial patch list. Identical inputs
// produce an empty, non-nil-safe result.
func Patches(original, corrected []string, gap int) ([]findings.Patch, error) {
	if err := ValidateGap(gap); err != nil {
		return nil, err
	}
	clusters, err := ClusterScript(Diff(original, corrected), gap)
	if err != nil {
		return nil, err
	}
	patches := make([]findings.Patch, 0, len(clusters))
	for _, cluster := range clusters {
		patches = append(patches, BuildPatch(cluster))
	}
	return patches, nil
}
