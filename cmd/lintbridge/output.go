// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lintbridge/lintbridge/pkg/findings"
)

// useJSON decides the output format: JSON when forced by flag or when
// stdout is not a terminal, human-readable text otherwise.
func useJSON() bool {
	if jsonOutput {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printFindings writes results to w in the selected format.
func printFindings(w io.Writer, results []findings.Finding) error {
	if useJSON() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, f := range results {
		location := f.File
		if f.HasLine() {
			location = fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		fmt.Fprintf(w, "%-6s %s  [%s] %s\n", f.Severity, location, f.Origin, f.Message)
		if f.Fix != nil {
			fmt.Fprint(w, f.Fix.DiffText)
		}
	}
	fmt.Fprintf(w, "\n%d finding(s)\n", len(results))
	return nil
}
