// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import "strings"

// =============================================================================
// Line Mapping
// =============================================================================

// LineAt maps a byte offset into text to a 1-based line number.
//
// The result is clamped to [1, lineCount]: offsets before the start map
// to line 1, offsets at or past the end map to the last line. Empty text
// counts as a single line so the result is always a valid position.
func LineAt(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line := 1 + strings.Count(text[:offset], "\n")

	total := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		total++
	}
	if total < 1 {
		total = 1
	}
	if line > total {
		line = total
	}
	return line
}
