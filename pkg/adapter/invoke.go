// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// =============================================================================
// Process Invocation
// =============================================================================

// Invoker runs one command and captures its output.
//
// # Description
//
// Implementations execute argv with a caller-fixed working directory and
// environment and return both captured streams plus the exit status.
// A non-zero exit status is data, not an error: analysis tools routinely
// exit non-zero when they find something. err is non-nil only when the
// process could not be run at all.
type Invoker interface {
	Invoke(ctx context.Context, argv []string) (stdout, stderr []byte, exitCode int, err error)
}

// ExecInvoker runs commands via os/exec.
//
// Thread Safety: Safe for concurrent use; each Invoke builds its own
// exec.Cmd.
type ExecInvoker struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is the process environment. Nil inherits the parent's.
	Env []string
}

// Invoke executes argv and captures both streams.
func (iv *ExecInvoker) Invoke(ctx context.Context, argv []string) ([]byte, []byte, int, error) {
	if ctx == nil {
		return nil, nil, -1, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if len(argv) == 0 {
		return nil, nil, -1, fmt.Errorf("%w: argv must not be empty", ErrInvalidInput)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = iv.Dir
	if iv.Env != nil {
		cmd.Env = iv.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctx.Err() != nil {
		return nil, nil, -1, ctx.Err()
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, nil, -1, fmt.Errorf("%w: %v", ErrToolFailed, runErr)
	}
	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

// =============================================================================
// Scoped Temp Files
// =============================================================================

// MaterializeTempFile writes content to a fresh temp file and returns its
// path together with a cleanup function that removes it. The cleanup
// function never fails loudly; a vanished file is fine.
//
// Inputs:
//
//	content - File content to write
//	pattern - os.CreateTemp name pattern, e.g. "lintbridge-*.cfg"
//
// Outputs:
//
//	string - Path of the created file
//	func() - Removes the file; always safe to call
//	error - Non-nil if the file could not be created or written
func MaterializeTempFile(content, pattern string) (string, func(), error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := file.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}
	return path, cleanup, nil
}
