// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package textdiff

// =============================================================================
// Edit Operations
// =============================================================================

// OpKind tags the variants of an edit operation.
type OpKind int

const (
	// OpKeep is an unchanged line present on both sides.
	OpKeep OpKind = iota

	// OpInsert is a line present only in the corrected sequence.
	OpInsert

	// OpDelete is a line present only in the original sequence.
	OpDelete

	// OpReplace is an original line rewritten in place.
	OpReplace
)

// String returns a short tag for the kind.
func (k OpKind) String() string {
	switch k {
	case OpKeep:
		return "keep"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// EditOp is one atomic step of an edit script.
//
// # Description
//
// Line numbers are 1-based. OldLine addresses the original sequence and
// NewLine the corrected one. For inserts, OldLine is the anchor: the
// original line the insertion follows (0 when inserting at the top).
// For deletes, NewLine is the corrected line the deletion follows
// (0 when nothing precedes it).
//
// Old carries the original-side text (empty for inserts) and New the
// corrected-side text (empty for deletes). Keeps carry the same text in
// both. Scripts are never mutated after construction.
type EditOp struct {
	Kind    OpKind
	OldLine int
	NewLine int
	Old     string
	New     string
}

// IsChange reports whether the op alters the file.
func (op EditOp) IsChange() bool {
	return op.Kind != OpKeep
}

// ReconstructOriginal rebuilds the original line sequence from a script.
// Keeps, deletes, and replaces contribute their original-side text in
// script order; the result is exactly the original input of Diff.
func ReconstructOriginal(script []EditOp) []string {
	var lines []string
	for _, op := range script {
		switch op.Kind {
		case OpKeep, OpDelete, OpReplace:
			lines = append(lines, op.Old)
		}
	}
	return lines
}

// ReconstructCorrected rebuilds the corrected line sequence from a
// script. Keeps, inserts, and replaces contribute their corrected-side
// text in script order.
func ReconstructCorrected(script []EditOp) []string {
	var lines []string
	for _, op := range script {
		switch op.Kind {
		case OpKeep, OpInsert, OpReplace:
			lines = append(lines, op.New)
		}
	}
	return lines
}
