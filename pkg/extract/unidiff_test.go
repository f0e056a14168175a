// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package extract

import (
	"errors"
	"testing"

	"github.com/lintbridge/lintbridge/pkg/findings"
	"github.com/lintbridge/lintbridge/pkg/textdiff"
)

const bareHunks = `@@ -2,1 +2,1 @@
-b
+B
@@ -10,2 +10,3 @@
 x
-y
+Y
+z
`

func TestExtractUnifiedDiff_BareHunks(t *testing.T) {
	stream, err := ExtractUnifiedDiff("differ", "a.go", bareHunks, findings.SeverityNormal, "")
	if err != nil {
		t.Fatal(err)
	}

	out := stream.Collect()
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}

	first := out[0]
	if first.Line != 2 || first.Fix.StartLine != 2 || first.Fix.EndLine != 2 {
		t.Errorf("first = line %d, fix %d-%d; want 2, 2-2", first.Line, first.Fix.StartLine, first.Fix.EndLine)
	}
	second := out[1]
	if second.Line != 10 || second.Fix.StartLine != 10 || second.Fix.EndLine != 12 {
		t.Errorf("second = line %d, fix %d-%d; want 10, 10-12", second.Line, second.Fix.StartLine, second.Fix.EndLine)
	}
	if first.Message != DefaultFixMessage {
		t.Errorf("message = %q, want the default fix message", first.Message)
	}
}

func TestExtractUnifiedDiff_FileHeaders(t *testing.T) {
	text := "--- a/a.go\n+++ b/a.go\n" + bareHunks
	stream, err := ExtractUnifiedDiff("differ", "a.go", text, findings.SeverityNormal, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := stream.Collect(); len(got) != 2 {
		t.Errorf("got %d findings, want 2", len(got))
	}
}

func TestExtractUnifiedDiff_DocumentOrder(t *testing.T) {
	// Hunks out of numeric order stay in document order.
	text := "@@ -10,1 +10,1 @@\n-y\n+Y\n@@ -2,1 +2,1 @@\n-b\n+B\n"
	stream, err := ExtractUnifiedDiff("differ", "a.go", text, findings.SeverityNormal, "")
	if err != nil {
		t.Fatal(err)
	}
	out := stream.Collect()
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}
	if out[0].Line != 10 || out[1].Line != 2 {
		t.Errorf("lines = %d, %d; want 10, 2 (document order)", out[0].Line, out[1].Line)
	}
}

func TestExtractUnifiedDiff_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n"} {
		stream, err := ExtractUnifiedDiff("differ", "a.go", text, findings.SeverityNormal, "")
		if err != nil {
			t.Fatalf("empty input: %v", err)
		}
		if got := stream.Collect(); len(got) != 0 {
			t.Errorf("empty input produced %d findings", len(got))
		}
	}
}

func TestExtractUnifiedDiff_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"non-numeric range", "@@ -x,1 +2,1 @@\n-b\n+B\n"},
		{"missing delimiters", "-b\n+B\n"},
		{"truncated header", "@@ -2,1\n-b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, err := ExtractUnifiedDiff("differ", "a.go", tt.text, findings.SeverityNormal, "")
			if !errors.Is(err, ErrDiffFormat) {
				t.Fatalf("err = %v, want ErrDiffFormat", err)
			}
			if stream != nil {
				t.Error("a corrupt diff must never yield partial findings")
			}
		})
	}
}

func TestExtractUnifiedDiff_RoundTripFromClusterer(t *testing.T) {
	// Patches rendered by the clusterer must re-parse as one hunk each.
	orig := doc("a", "b", "c", "d")
	corr := doc("a", "B", "c", "D")
	patches, err := textdiff.Patches(orig, corr, 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range patches {
		stream, err := ExtractUnifiedDiff("differ", "a.go", p.DiffText, findings.SeverityNormal, "")
		if err != nil {
			t.Fatalf("re-parsing %q: %v", p.DiffText, err)
		}
		out := stream.Collect()
		if len(out) != 1 {
			t.Fatalf("re-parsed %q into %d findings, want 1", p.DiffText, len(out))
		}
		if out[0].Fix.DiffText != p.DiffText {
			t.Errorf("round-trip changed the hunk:\n in: %q\nout: %q", p.DiffText, out[0].Fix.DiffText)
		}
	}
}
