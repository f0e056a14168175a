// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package adapter runs external command-line analysis tools and hands
// their captured output to the extraction strategies.
//
// # Description
//
// An Adapter owns everything around one tool: building the command line
// from an argument template, materializing an optional scoped config
// file, checking the binary exists, invoking the process, selecting
// which streams to capture, and dispatching to the configured
// interpretation strategy. Extraction itself lives in pkg/extract; this
// package is the plumbing the strategies deliberately exclude.
//
// # Thread Safety
//
// Adapters are immutable after construction and safe for concurrent use
// across files.
package adapter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/lintbridge/lintbridge/pkg/extract"
	"github.com/lintbridge/lintbridge/pkg/findings"
	"github.com/lintbridge/lintbridge/pkg/logging"
	"github.com/lintbridge/lintbridge/pkg/textdiff"
)

// DefaultTimeout bounds a single tool invocation when the definition
// does not say otherwise.
const DefaultTimeout = 30 * time.Second

// =============================================================================
// Adapter
// =============================================================================

// Adapter executes one configured tool against single files.
type Adapter struct {
	cfg       ToolConfig
	invoker   Invoker
	logger    *logging.Logger
	regex     *extract.RegexExtractor
	sevMap    findings.SeverityMap
	severity  findings.Severity
	useStdout bool

	availOnce sync.Once
	available bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithInvoker replaces the process invoker; tests use this to fake tool
// output.
func WithInvoker(iv Invoker) Option {
	return func(a *Adapter) { a.invoker = iv }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// New builds an Adapter from a tool definition.
//
// # Description
//
// All configuration is validated here, before any tool runs: structural
// checks on the definition, severity-name parsing, and compilation of
// the extraction pattern for the regex strategy. Extraction is therefore
// all-or-nothing with respect to configuration errors.
//
// Inputs:
//
//	cfg - The tool definition
//	opts - Optional invoker/logger overrides
//
// Outputs:
//
//	*Adapter - Ready to run
//	error - ErrInvalidTool or extract.ErrPattern (wrapped) on bad config
func New(cfg ToolConfig, opts ...Option) (*Adapter, error) {
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTool, err)
	}
	if cfg.Strategy == StrategyRegex && cfg.Pattern == "" {
		return nil, fmt.Errorf("%w: tool %q uses the regex strategy but has no pattern", ErrInvalidTool, cfg.Name)
	}
	if err := textdiff.ValidateGap(cfg.Gap); err != nil {
		return nil, err
	}

	severity := findings.SeverityNormal
	if cfg.DefaultSeverity != "" {
		parsed, err := findings.ParseSeverity(cfg.DefaultSeverity)
		if err != nil {
			return nil, fmt.Errorf("%w: tool %q: %v", ErrInvalidTool, cfg.Name, err)
		}
		severity = parsed
	}

	sevMap := make(findings.SeverityMap, len(cfg.Severities))
	for token, name := range cfg.Severities {
		parsed, err := findings.ParseSeverity(name)
		if err != nil {
			return nil, fmt.Errorf("%w: tool %q: severity for token %q: %v", ErrInvalidTool, cfg.Name, token, err)
		}
		sevMap[token] = parsed
	}

	a := &Adapter{
		cfg:       cfg,
		invoker:   &ExecInvoker{},
		logger:    logging.Default(),
		sevMap:    sevMap,
		severity:  severity,
		useStdout: cfg.UseStdout == nil || *cfg.UseStdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.Strategy == StrategyRegex {
		re, err := extract.NewRegexExtractor(extract.RegexConfig{
			Pattern:         cfg.Pattern,
			Severities:      sevMap,
			DefaultSeverity: severity,
			StaticMessage:   cfg.Message,
			UseMatchOffsets: cfg.UseMatchOffsets,
		})
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", cfg.Name, err)
		}
		a.regex = re
	}

	return a, nil
}

// Name returns the tool's configured name.
func (a *Adapter) Name() string {
	return a.cfg.Name
}

// IsAvailable reports whether the tool binary can be found in PATH.
// The lookup result is cached for the adapter's lifetime.
func (a *Adapter) IsAvailable() bool {
	a.availOnce.Do(func() {
		_, err := exec.LookPath(a.cfg.Executable)
		a.available = err == nil
	})
	return a.available
}

// Run executes the tool once against filePath and returns the findings.
//
// For the corrected strategy the original file is read from disk; use
// RunContent when the caller already holds the content.
func (a *Adapter) Run(ctx context.Context, filePath string) (*findings.Stream, error) {
	var content string
	if a.cfg.Strategy == StrategyCorrected {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filePath, err)
		}
		content = string(data)
	}
	return a.RunContent(ctx, filePath, content)
}

// RunContent executes the tool once against filePath, using content as
// the original file text for the corrected strategy.
//
// # Description
//
// The invocation pipeline: materialize the optional config file, expand
// the argument template, invoke the process under the configured
// timeout, select the captured streams, and dispatch to the strategy.
// A non-zero tool exit is logged and otherwise treated as normal.
//
// Outputs:
//
//	*findings.Stream - The strategy's findings, strategy-native order
//	error - ToolError for missing binaries or failed invocations,
//	        extract.ErrDiffFormat for corrupt unified-diff output
func (a *Adapter) RunContent(ctx context.Context, filePath, content string) (*findings.Stream, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if filePath == "" {
		return nil, fmt.Errorf("%w: filePath must not be empty", ErrInvalidInput)
	}
	if !a.IsAvailable() {
		return nil, NewToolError(a.cfg.Name, ErrToolNotInstalled)
	}

	timeout := a.cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	configPath := ""
	if a.cfg.ConfigTemplate != "" {
		path, cleanup, err := MaterializeTempFile(expand(a.cfg.ConfigTemplate, filePath, ""), "lintbridge-*.cfg")
		if err != nil {
			return nil, NewToolError(a.cfg.Name, err)
		}
		defer cleanup()
		configPath = path
	}

	argv := make([]string, 0, len(a.cfg.Args)+1)
	argv = append(argv, a.cfg.Executable)
	for _, arg := range a.cfg.Args {
		argv = append(argv, expand(arg, filePath, configPath))
	}

	stdout, stderr, exitCode, err := a.invoker.Invoke(cmdCtx, argv)
	if err != nil {
		return nil, NewToolError(a.cfg.Name, err).WithOutput(string(stderr))
	}
	a.logger.Debug("tool finished",
		"tool", a.cfg.Name,
		"file", filePath,
		"exit", exitCode,
		"stdout_bytes", len(stdout),
		"stderr_bytes", len(stderr),
	)

	text := a.capture(stdout, stderr)

	switch a.cfg.Strategy {
	case StrategyRegex:
		return a.regex.Extract(a.cfg.Name, filePath, text), nil
	case StrategyCorrected:
		original := textdiff.SplitLines(content)
		corrected := textdiff.SplitLines(text)
		return extract.ExtractCorrected(a.cfg.Name, filePath, original, corrected, a.cfg.Gap, a.severity, a.cfg.Message)
	case StrategyUnifiedDiff:
		return extract.ExtractUnifiedDiff(a.cfg.Name, filePath, text, a.severity, a.cfg.Message)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidTool, a.cfg.Strategy)
	}
}

// capture selects the enabled streams, stdout before stderr.
func (a *Adapter) capture(stdout, stderr []byte) string {
	var sb strings.Builder
	if a.useStdout {
		sb.Write(stdout)
	}
	if a.cfg.UseStderr {
		sb.Write(stderr)
	}
	return sb.String()
}

// expand substitutes the {file} and {config} placeholders.
func expand(s, file, config string) string {
	s = strings.ReplaceAll(s, "{file}", file)
	return strings.ReplaceAll(s, "{config}", config)
}
