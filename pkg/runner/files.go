// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package runner orchestrates tool adapters across a set of files:
// collection, inline ignore directives, bounded parallelism, and
// severity filtering. The extraction strategies themselves stay
// single-threaded and pure; all concurrency lives here.
package runner

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotUTF8 indicates a file whose bytes are not valid UTF-8. Such
// files are skipped, not fatal.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// CollectFiles resolves include globs against the filesystem and drops
// anything matching an ignore glob.
//
// # Description
//
// Globs use doublestar syntax, so `src/**/*.go` works. A path given
// verbatim (no meta characters) matches itself when it exists. The
// result is sorted and de-duplicated; only regular files are returned.
//
// Inputs:
//
//	globs - Include patterns
//	ignoreGlobs - Exclude patterns, matched against the resolved paths
//
// Outputs:
//
//	[]string - Sorted unique file paths
//	error - Non-nil on an unparsable pattern
func CollectFiles(globs, ignoreGlobs []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, pattern := range globs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
	next:
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			for _, ignore := range ignoreGlobs {
				ok, err := doublestar.PathMatch(ignore, match)
				if err != nil {
					return nil, fmt.Errorf("ignore glob %q: %w", ignore, err)
				}
				if ok {
					continue next
				}
			}
			seen[match] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}

// ReadFileUTF8 reads a file and verifies it decodes as UTF-8.
//
// Outputs:
//
//	string - The file content
//	error - ErrNotUTF8 (wrapped) for undecodable files, or the read error
func ReadFileUTF8(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotUTF8, path)
	}
	return string(data), nil
}
