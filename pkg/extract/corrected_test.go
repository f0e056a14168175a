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

func doc(ss ...string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s + "\n"
	}
	return out
}

func TestExtractCorrected_TwoClusters(t *testing.T) {
	stream, err := ExtractCorrected("fixer", "a.go",
		doc("a", "b", "c", "d"), doc("a", "B", "c", "D"),
		0, findings.SeverityNormal, "")
	if err != nil {
		t.Fatal(err)
	}

	out := stream.Collect()
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}
	if out[0].Line != 2 || out[1].Line != 4 {
		t.Errorf("finding lines = %d, %d; want 2, 4", out[0].Line, out[1].Line)
	}
	for _, f := range out {
		if f.Fix == nil {
			t.Fatalf("finding at line %d has no fix", f.Line)
		}
		if f.Message != DefaultFixMessage {
			t.Errorf("message = %q, want the default fix message", f.Message)
		}
		if f.Severity != findings.SeverityNormal {
			t.Errorf("severity = %v, want NORMAL", f.Severity)
		}
	}
}

func TestExtractCorrected_MergedCluster(t *testing.T) {
	stream, err := ExtractCorrected("fixer", "a.go",
		doc("a", "b", "c", "d"), doc("a", "B", "c", "D"),
		1, findings.SeverityMajor, "reformatted")
	if err != nil {
		t.Fatal(err)
	}

	out := stream.Collect()
	if len(out) != 1 {
		t.Fatalf("got %d findings, want 1", len(out))
	}
	f := out[0]
	if f.Line != 2 || f.Fix.StartLine != 2 || f.Fix.EndLine != 4 {
		t.Errorf("finding = line %d, fix %d-%d; want 2, 2-4", f.Line, f.Fix.StartLine, f.Fix.EndLine)
	}
	if f.Message != "reformatted" {
		t.Errorf("message = %q, want the caller's message", f.Message)
	}
}

func TestExtractCorrected_Identity(t *testing.T) {
	original := doc("a", "b")
	stream, err := ExtractCorrected("fixer", "a.go", original, original,
		0, findings.SeverityNormal, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := stream.Collect(); len(got) != 0 {
		t.Errorf("identity input produced %d findings", len(got))
	}
}

func TestExtractCorrected_InvalidGap(t *testing.T) {
	stream, err := ExtractCorrected("fixer", "a.go",
		doc("a"), doc("b"), -2, findings.SeverityNormal, "")
	if !errors.Is(err, textdiff.ErrInvalidGap) {
		t.Fatalf("err = %v, want ErrInvalidGap", err)
	}
	if stream != nil {
		t.Error("an invalid gap must yield no findings at all")
	}
}

func TestExtractCorrected_EachFindingOwnsItsFix(t *testing.T) {
	stream, err := ExtractCorrected("fixer", "a.go",
		doc("a", "b", "c", "d"), doc("a", "B", "c", "D"),
		0, findings.SeverityNormal, "")
	if err != nil {
		t.Fatal(err)
	}
	out := stream.Collect()
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}
	if out[0].Fix == out[1].Fix {
		t.Error("findings must not share a fix pointer")
	}
	if out[0].Fix.DiffText == out[1].Fix.DiffText {
		t.Error("the two clusters must render distinct diffs")
	}
}
