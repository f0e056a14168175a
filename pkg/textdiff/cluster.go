// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package textdiff

import (
	"errors"
	"fmt"
)

// =============================================================================
// Clustering
// =============================================================================

// MinGap is the smallest valid cluster gap.
const MinGap = -1

// ErrInvalidGap indicates a cluster gap below MinGap. It is a
// configuration error and is raised before any diffing happens.
var ErrInvalidGap = errors.New("cluster gap must be >= -1")

// ValidateGap checks a cluster gap value eagerly.
func ValidateGap(gap int) error {
	if gap < MinGap {
		return fmt.Errorf("%w: got %d", ErrInvalidGap, gap)
	}
	return nil
}

// ClusterScript groups the change operations of an edit script into
// clusters, each of which becomes one patch.
//
// # Description
//
// A gap of N >= 0 merges changes separated by at most N unchanged lines
// into one cluster; the intervening keeps become context inside the
// cluster. A gap of 0 therefore merges only strictly adjacent changes.
// A gap of -1 never merges at all: every change operation becomes its
// own single-line cluster.
//
// Clusters come back in ascending original-line order because the script
// is walked front to back; no sorting happens here.
//
// Inputs:
//
//	script - An edit script from Diff
//	gap - Merge tolerance in unchanged lines, >= -1
//
// Outputs:
//
//	[][]EditOp - Clusters of contiguous script operations
//	error - ErrInvalidGap for gap < -1
func ClusterScript(script []EditOp, gap int) ([][]EditOp, error) {
	if err := ValidateGap(gap); err != nil {
		return nil, err
	}

	var clusters [][]EditOp

	if gap == MinGap {
		for _, op := range script {
			if op.IsChange() {
				clusters = append(clusters, []EditOp{op})
			}
		}
		return clusters, nil
	}

	var current []EditOp
	var pending []EditOp // keeps seen since the last change
	for _, op := range script {
		if op.Kind == OpKeep {
			if len(current) > 0 {
				pending = append(pending, op)
			}
			continue
		}
		if len(current) > 0 {
			if len(pending) > gap {
				clusters = append(clusters, current)
				current = nil
			} else {
				current = append(current, pending...)
			}
		}
		pending = pending[:0]
		current = append(current, op)
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters, nil
}
