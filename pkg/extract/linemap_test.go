// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import "testing"

func TestLineAt(t *testing.T) {
	text := "one\ntwo\nthree\n"

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start of text", 0, 1},
		{"inside first line", 2, 1},
		{"first char of second line", 4, 2},
		{"inside third line", 9, 3},
		{"negative clamps to first line", -5, 1},
		{"past the end clamps to last line", 100, 3},
		{"at the trailing newline", len(text), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineAt(text, tt.offset); got != tt.want {
				t.Errorf("LineAt(text, %d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestLineAt_NoTrailingNewline(t *testing.T) {
	text := "one\ntwo"
	if got := LineAt(text, len(text)); got != 2 {
		t.Errorf("LineAt at end = %d, want 2", got)
	}
	if got := LineAt(text, 999); got != 2 {
		t.Errorf("LineAt past end = %d, want 2", got)
	}
}

func TestLineAt_EmptyText(t *testing.T) {
	if got := LineAt("", 0); got != 1 {
		t.Errorf("LineAt(\"\", 0) = %d, want 1", got)
	}
	if got := LineAt("", 10); got != 1 {
		t.Errorf("LineAt(\"\", 10) = %d, want 1", got)
	}
}
