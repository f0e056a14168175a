// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath  string
	jobs        int
	minSeverity string
	failOn      string
	logLevel    string
	quiet       bool
	jsonOutput  bool
	ignoreList  []string
	metricsAddr string

	rootCmd = &cobra.Command{
		Use:   "lintbridge",
		Short: "Run external analysis tools and normalize their findings",
		Long: `Lintbridge wraps command-line analysis tools behind a single
configuration file, turning their raw textual output into uniform
findings via pattern extraction, corrected-file diffing, or
unified-diff parsing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd = &cobra.Command{
		Use:   "run [globs...]",
		Short: "Analyze files once and print the findings",
		RunE:  runRun, // Defined in cmd_run.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch [globs...]",
		Short: "Re-run analysis whenever a matched file changes",
		RunE:  runWatch, // Defined in cmd_watch.go
	}

	toolsCmd = &cobra.Command{
		Use:   "tools",
		Short: "List configured tools and whether they are installed",
		RunE:  runTools, // Defined in cmd_tools.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lintbridge.yaml", "tool definition file")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "concurrent files (0 = CPU count)")
	rootCmd.PersistentFlags().StringVar(&minSeverity, "min-severity", "info", "drop findings below this severity (info|normal|major)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	rootCmd.PersistentFlags().StringSliceVar(&ignoreList, "ignore", nil, "glob patterns to exclude from collection")

	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "force JSON output even on a terminal")
	runCmd.Flags().StringVar(&failOn, "fail-on", "normal", "exit non-zero when findings at or above this severity exist")

	watchCmd.Flags().BoolVar(&jsonOutput, "json", false, "force JSON output even on a terminal")
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9143)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(toolsCmd)
}
