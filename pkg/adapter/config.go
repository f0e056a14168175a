// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package adapter

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Tool Definitions
// =============================================================================

// MaxConfigFileSize is the maximum allowed tool-definition file size.
// Prevents memory issues from accidentally pointing at a large file.
const MaxConfigFileSize = 1024 * 1024

// StrategyKind selects how a tool's output is interpreted.
type StrategyKind string

const (
	// StrategyRegex extracts findings by pattern matching the output.
	StrategyRegex StrategyKind = "regex"

	// StrategyCorrected treats the output as a rewritten copy of the
	// input file and diffs it against the original.
	StrategyCorrected StrategyKind = "corrected"

	// StrategyUnifiedDiff parses the output as a unified diff.
	StrategyUnifiedDiff StrategyKind = "unified-diff"
)

// ToolConfig defines one external analysis tool.
//
// # Description
//
// Args may contain the placeholders {file} (the analyzed file's path)
// and {config} (the path of the materialized temp config file, when
// ConfigTemplate is set). Stream capture defaults to stdout only; the
// cross product of UseStdout and UseStderr is supported, and enabling
// both concatenates stdout before stderr.
type ToolConfig struct {
	// Name identifies the tool; stamped on findings as the origin.
	Name string `yaml:"name" validate:"required"`

	// Executable is the binary looked up in PATH.
	Executable string `yaml:"executable" validate:"required"`

	// Args is the argument template, without the executable itself.
	Args []string `yaml:"args"`

	// ConfigTemplate, when non-empty, is materialized to a scoped temp
	// file whose path replaces {config} in Args.
	ConfigTemplate string `yaml:"config_template"`

	// UseStdout enables capturing stdout. Nil defaults to true.
	UseStdout *bool `yaml:"use_stdout"`

	// UseStderr enables capturing stderr. Defaults to false.
	UseStderr bool `yaml:"use_stderr"`

	// Strategy selects the output interpretation.
	Strategy StrategyKind `yaml:"strategy" validate:"required,oneof=regex corrected unified-diff"`

	// Pattern is the extraction regex (regex strategy only). It may
	// define the named groups "line", "severity", and "message".
	Pattern string `yaml:"pattern"`

	// Severities maps tool severity tokens to INFO/NORMAL/MAJOR.
	Severities map[string]string `yaml:"severities"`

	// DefaultSeverity applies when a token is missing or unmapped.
	// Empty means NORMAL.
	DefaultSeverity string `yaml:"default_severity"`

	// Message overrides the per-finding message for every strategy.
	Message string `yaml:"message"`

	// UseMatchOffsets derives line numbers from match positions when
	// the pattern has no usable line group (regex strategy only).
	UseMatchOffsets bool `yaml:"use_match_offsets"`

	// Gap is the cluster merge tolerance for the corrected strategy.
	Gap int `yaml:"gap" validate:"gte=-1"`

	// Timeout bounds one tool invocation. Zero means 30s.
	Timeout time.Duration `yaml:"timeout"`
}

// configFile is the root of a tool-definition YAML document.
type configFile struct {
	Tools []ToolConfig `yaml:"tools" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadTools reads tool definitions from a YAML file.
//
// # Description
//
// Definitions are validated structurally (required fields, known
// strategy, gap bounds) before any tool runs; a bad definition fails the
// load, never a later extraction.
//
// Inputs:
//
//	path - The YAML file, shaped {tools: [...]}
//
// Outputs:
//
//	[]ToolConfig - The validated definitions, file order preserved
//	error - ErrInvalidTool (wrapped) on structural problems
func LoadTools(path string) ([]ToolConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat tool config: %w", err)
	}
	if info.Size() > MaxConfigFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidTool, path, MaxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tool config: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidTool, path, err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTool, err)
	}
	for _, tool := range file.Tools {
		if tool.Strategy == StrategyRegex && tool.Pattern == "" {
			return nil, fmt.Errorf("%w: tool %q uses the regex strategy but has no pattern", ErrInvalidTool, tool.Name)
		}
	}
	return file.Tools, nil
}
