// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/lintbridge/lintbridge/pkg/adapter"
	"github.com/lintbridge/lintbridge/pkg/findings"
	"github.com/lintbridge/lintbridge/pkg/logging"
	"github.com/lintbridge/lintbridge/pkg/runner"
)

// defaultGlobs applies when no positional patterns are given.
var defaultGlobs = []string{"**/*"}

// newLogger builds the CLI logger from the persistent flags.
func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(logLevel),
		Service: "lintbridge",
		Quiet:   quiet,
	})
}

// loadAdapters reads the tool definition file and builds one adapter per
// tool. Any invalid definition fails the whole load.
func loadAdapters(logger *logging.Logger) ([]*adapter.Adapter, error) {
	tools, err := adapter.LoadTools(configPath)
	if err != nil {
		return nil, err
	}
	adapters := make([]*adapter.Adapter, 0, len(tools))
	for _, tool := range tools {
		a, err := adapter.New(tool, adapter.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// newRunner assembles the runner from flags and the loaded adapters.
func newRunner(adapters []*adapter.Adapter, logger *logging.Logger) (*runner.Runner, error) {
	threshold, err := findings.ParseSeverity(minSeverity)
	if err != nil {
		return nil, fmt.Errorf("--min-severity: %w", err)
	}
	return runner.New(adapters, runner.Options{
		Jobs:        jobs,
		MinSeverity: threshold,
		Logger:      logger,
	}), nil
}

// collectArgs resolves the positional globs, falling back to the default
// pattern when none are given.
func collectArgs(args []string) ([]string, error) {
	globs := args
	if len(globs) == 0 {
		globs = defaultGlobs
	}
	return runner.CollectFiles(globs, ignoreList)
}
