// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package textdiff computes line-granularity edit scripts between an
// original and a corrected version of a file, and clusters the changes
// into reviewable patches.
//
// # Description
//
// The package is deliberately small: a longest-common-subsequence
// alignment over physical lines, a deterministic walk that turns the
// alignment into an edit script (keep / insert / delete / replace), and a
// clustering pass that merges nearby changes into unified-diff hunks.
// It is not a general diff library; it implements exactly what turning a
// tool's corrected output into patches requires.
//
// # Thread Safety
//
// All functions are pure; inputs are never mutated.
package textdiff

import "strings"

// SplitLines splits text into physical lines, keeping each line's
// terminator (readlines semantics). This makes the split lossless:
// JoinLines(SplitLines(text)) == text for every input, including text
// without a trailing newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
		if text == "" {
			break
		}
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

// chomp strips the line terminator for rendering.
func chomp(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
