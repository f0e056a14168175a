// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors for the adapter package.
var (
	// ErrToolNotInstalled indicates the tool binary was not found in PATH.
	ErrToolNotInstalled = errors.New("tool not installed")

	// ErrToolFailed indicates the tool process could not be executed.
	// A tool exiting non-zero is not a failure; lint tools do that when
	// they find something.
	ErrToolFailed = errors.New("tool execution failed")

	// ErrInvalidTool indicates an invalid tool definition.
	ErrInvalidTool = errors.New("invalid tool definition")

	// ErrInvalidInput indicates invalid input to an adapter function.
	ErrInvalidInput = errors.New("invalid input")
)

// ToolError wraps errors from a specific tool with context.
//
// Thread Safety: Immutable after creation.
type ToolError struct {
	// Tool is the name of the tool that failed.
	Tool string

	// Err is the underlying error.
	Err error

	// Output contains any stderr output from the tool.
	Output string
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a ToolError for the given tool.
func NewToolError(tool string, err error) *ToolError {
	return &ToolError{Tool: tool, Err: err}
}

// WithOutput returns a copy of the error with stderr output attached.
func (e *ToolError) WithOutput(output string) *ToolError {
	return &ToolError{Tool: e.Tool, Err: e.Err, Output: output}
}
