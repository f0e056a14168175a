// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lintbridge/lintbridge/pkg/findings"
)

// runRun executes every configured tool against the collected files once
// and prints the findings. The process exits 1 when findings at or above
// the --fail-on severity exist, so CI can gate on it.
func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Close()

	adapters, err := loadAdapters(logger)
	if err != nil {
		logger.Error("loading tool definitions failed", "config", configPath, "error", err)
		return err
	}
	r, err := newRunner(adapters, logger)
	if err != nil {
		return err
	}

	files, err := collectArgs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no files matched", "globs", args)
	}

	results, err := r.Run(cmd.Context(), files)
	if err != nil {
		return err
	}
	if err := printFindings(os.Stdout, results); err != nil {
		return err
	}

	threshold, err := findings.ParseSeverity(failOn)
	if err != nil {
		return fmt.Errorf("--fail-on: %w", err)
	}
	for _, f := range results {
		if f.Severity >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
