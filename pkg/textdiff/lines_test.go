// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package textdiff

import "testing"

func TestSplitLines_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single line no newline", "hello"},
		{"single line with newline", "hello\n"},
		{"multiple lines", "a\nb\nc\n"},
		{"no trailing newline", "a\nb\nc"},
		{"blank lines", "\n\n\n"},
		{"crlf", "a\r\nb\r\n"},
		{"lone newline", "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinLines(SplitLines(tt.text)); got != tt.text {
				t.Errorf("JoinLines(SplitLines(%q)) = %q", tt.text, got)
			}
		})
	}
}

func TestSplitLines_KeepsTerminators(t *testing.T) {
	got := SplitLines("a\nb")
	if len(got) != 2 || got[0] != "a\n" || got[1] != "b" {
		t.Errorf("SplitLines(\"a\\nb\") = %q, want [a\\n b]", got)
	}
}

func TestSplitLines_Empty(t *testing.T) {
	if got := SplitLines(""); got != nil {
		t.Errorf("SplitLines(\"\") = %q, want nil", got)
	}
}

func TestChomp(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a\n", "a"},
		{"a\r\n", "a"},
		{"a", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := chomp(tt.in); got != tt.want {
			t.Errorf("chomp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
