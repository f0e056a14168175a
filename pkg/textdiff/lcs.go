// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package textdiff

// =============================================================================
// LCS Alignment
// =============================================================================

// Diff computes a minimal line-granularity edit script turning original
// into corrected.
//
// # Description
//
// The alignment is a longest-common-subsequence over whole lines. When
// several minimal scripts exist the walk breaks ties deterministically:
// equal lines are always matched at the earliest position, and deletions
// are emitted before insertions. Identical inputs on repeated runs always
// yield byte-identical scripts.
//
// Runs of adjacent deletions and insertions are coalesced pairwise into
// replace operations, so a one-line rewrite comes back as a single
// OpReplace rather than a delete/insert pair.
//
// Inputs:
//
//	original - The file's lines as read from disk
//	corrected - The tool's rewritten lines
//
// Outputs:
//
//	[]EditOp - The edit script, in original-line order
func Diff(original, corrected []string) []EditOp {
	n, m := len(original), len(corrected)

	// lcs[i][j] holds the LCS length of original[i:] vs corrected[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if original[i] == corrected[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	raw := make([]EditOp, 0, n+m)
	i, j := 0, 0
	oldLn, newLn := 0, 0 // last consumed line on each side
	for i < n || j < m {
		switch {
		case i < n && j < m && original[i] == corrected[j]:
			oldLn++
			newLn++
			raw = append(raw, EditOp{Kind: OpKeep, OldLine: oldLn, NewLine: newLn, Old: original[i], New: corrected[j]})
			i++
			j++
		case j >= m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			oldLn++
			raw = append(raw, EditOp{Kind: OpDelete, OldLine: oldLn, NewLine: newLn, Old: original[i]})
			i++
		default:
			newLn++
			raw = append(raw, EditOp{Kind: OpInsert, OldLine: oldLn, NewLine: newLn, New: corrected[j]})
			j++
		}
	}

	return coalesce(raw)
}

// coalesce pairs deletions with insertions inside each contiguous change
// run, turning them into replaces. Leftover deletions or insertions keep
// their kind. Both reconstruction orders are preserved: replaces consume
// the earliest deletions and insertions of the run first.
func coalesce(raw []EditOp) []EditOp {
	out := make([]EditOp, 0, len(raw))
	k := 0
	for k < len(raw) {
		if raw[k].Kind == OpKeep {
			out = append(out, raw[k])
			k++
			continue
		}
		start := k
		for k < len(raw) && raw[k].Kind != OpKeep {
			k++
		}
		var dels, ins []EditOp
		for _, op := range raw[start:k] {
			if op.Kind == OpDelete {
				dels = append(dels, op)
			} else {
				ins = append(ins, op)
			}
		}
		p := 0
		for ; p < len(dels) && p < len(ins); p++ {
			out = append(out, EditOp{
				Kind:    OpReplace,
				OldLine: dels[p].OldLine,
				NewLine: ins[p].NewLine,
				Old:     dels[p].Old,
				New:     ins[p].New,
			})
		}
		out = append(out, dels[p:]...)
		out = append(out, ins[p:]...)
	}
	return out
}
