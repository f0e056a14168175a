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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lintbridge/lintbridge/pkg/adapter"
)

// runTools lists the configured tools with their strategy and whether
// the binary is installed.
func runTools(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Close()

	tools, err := adapter.LoadTools(configPath)
	if err != nil {
		logger.Error("loading tool definitions failed", "config", configPath, "error", err)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXECUTABLE\tSTRATEGY\tAVAILABLE")
	for _, tool := range tools {
		a, err := adapter.New(tool, adapter.WithLogger(logger))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", tool.Name, tool.Executable, tool.Strategy, a.IsAvailable())
	}
	return w.Flush()
}
