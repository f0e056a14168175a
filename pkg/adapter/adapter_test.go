// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintbridge/lintbridge/pkg/extract"
	"github.com/lintbridge/lintbridge/pkg/findings"
	"github.com/lintbridge/lintbridge/pkg/textdiff"
)

// fakeInvoker returns canned output and records the argv it was given.
type fakeInvoker struct {
	stdout string
	stderr string
	exit   int
	err    error

	gotArgv []string
	// configSeen captures the {config} temp file's content while it
	// still exists.
	configSeen string
}

func (f *fakeInvoker) Invoke(ctx context.Context, argv []string) ([]byte, []byte, int, error) {
	f.gotArgv = argv
	for _, arg := range argv[1:] {
		if data, err := os.ReadFile(arg); err == nil {
			f.configSeen = string(data)
		}
	}
	if f.err != nil {
		return nil, nil, -1, f.err
	}
	return []byte(f.stdout), []byte(f.stderr), f.exit, nil
}

// fakeTool creates an executable file so IsAvailable succeeds without
// depending on the host's PATH.
func fakeTool(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faketool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func regexTool(t *testing.T) ToolConfig {
	t.Helper()
	return ToolConfig{
		Name:       "mylint",
		Executable: fakeTool(t),
		Args:       []string{"{file}"},
		Strategy:   StrategyRegex,
		Pattern:    `(?P<line>\d+): (?P<severity>\w+) (?P<message>.*)`,
		Severities: map[string]string{"WARN": "normal", "ERR": "major"},
	}
}

func TestNew_InvalidDefinitions(t *testing.T) {
	base := regexTool(t)

	tests := []struct {
		name   string
		mutate func(*ToolConfig)
		want   error
	}{
		{"missing name", func(c *ToolConfig) { c.Name = "" }, ErrInvalidTool},
		{"unknown strategy", func(c *ToolConfig) { c.Strategy = "telepathy" }, ErrInvalidTool},
		{"regex without pattern", func(c *ToolConfig) { c.Pattern = "" }, ErrInvalidTool},
		{"bad pattern", func(c *ToolConfig) { c.Pattern = "(unclosed" }, extract.ErrPattern},
		{"bad severity name", func(c *ToolConfig) { c.Severities = map[string]string{"W": "critical"} }, ErrInvalidTool},
		{"bad default severity", func(c *ToolConfig) { c.DefaultSeverity = "loud" }, ErrInvalidTool},
		{"gap below minimum", func(c *ToolConfig) { c.Gap = -2 }, textdiff.ErrInvalidGap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			a, err := New(cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if a != nil {
				t.Error("invalid definition must not return an adapter")
			}
		})
	}
}

func TestAdapter_NotInstalled(t *testing.T) {
	cfg := regexTool(t)
	cfg.Executable = filepath.Join(t.TempDir(), "does-not-exist")
	a, err := New(cfg, WithInvoker(&fakeInvoker{}))
	if err != nil {
		t.Fatal(err)
	}

	if a.IsAvailable() {
		t.Error("IsAvailable must be false for a missing binary")
	}
	_, err = a.RunContent(context.Background(), "a.go", "")
	if !errors.Is(err, ErrToolNotInstalled) {
		t.Errorf("err = %v, want ErrToolNotInstalled", err)
	}
}

func TestAdapter_RegexStrategy(t *testing.T) {
	fake := &fakeInvoker{stdout: "3: WARN overflow\n7: ERR null deref\n", exit: 1}
	a, err := New(regexTool(t), WithInvoker(fake))
	if err != nil {
		t.Fatal(err)
	}

	stream, err := a.RunContent(context.Background(), "a.go", "")
	if err != nil {
		t.Fatal(err)
	}
	out := stream.Collect()
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}
	if out[0].Line != 3 || out[0].Severity != findings.SeverityNormal {
		t.Errorf("first finding = %+v", out[0])
	}
	if out[1].Line != 7 || out[1].Severity != findings.SeverityMajor {
		t.Errorf("second finding = %+v", out[1])
	}

	// {file} must be substituted into the argv.
	if len(fake.gotArgv) != 2 || fake.gotArgv[1] != "a.go" {
		t.Errorf("argv = %v, want [exe a.go]", fake.gotArgv)
	}
}

func TestAdapter_StreamSelection(t *testing.T) {
	useStdout := func(b bool) *bool { return &b }

	tests := []struct {
		name      string
		useStdout *bool
		useStderr bool
		want      int
	}{
		{"stdout only (default)", nil, false, 1},
		{"stdout explicitly", useStdout(true), false, 1},
		{"stderr only", useStdout(false), true, 1},
		{"both streams", useStdout(true), true, 2},
		{"neither stream", useStdout(false), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := regexTool(t)
			cfg.UseStdout = tt.useStdout
			cfg.UseStderr = tt.useStderr

			fake := &fakeInvoker{stdout: "1: WARN out\n", stderr: "2: ERR err\n"}
			a, err := New(cfg, WithInvoker(fake))
			if err != nil {
				t.Fatal(err)
			}
			stream, err := a.RunContent(context.Background(), "a.go", "")
			if err != nil {
				t.Fatal(err)
			}
			out := stream.Collect()
			if len(out) != tt.want {
				t.Fatalf("got %d findings, want %d", len(out), tt.want)
			}
			if tt.want == 2 && (out[0].Line != 1 || out[1].Line != 2) {
				t.Error("stdout findings must precede stderr findings")
			}
		})
	}
}

func TestAdapter_ConfigTemplate(t *testing.T) {
	cfg := regexTool(t)
	cfg.Args = []string{"--config", "{config}", "{file}"}
	cfg.ConfigTemplate = "target = {file}\nstrict = true\n"

	fake := &fakeInvoker{}
	a, err := New(cfg, WithInvoker(fake))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.RunContent(context.Background(), "a.go", ""); err != nil {
		t.Fatal(err)
	}

	if fake.configSeen != "target = a.go\nstrict = true\n" {
		t.Errorf("config file content = %q", fake.configSeen)
	}
	// The temp file is removed once the run ends.
	configPath := fake.gotArgv[2]
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Errorf("temp config %s still exists after the run", configPath)
	}
}

func TestAdapter_CorrectedStrategy(t *testing.T) {
	cfg := ToolConfig{
		Name:       "myfmt",
		Executable: fakeTool(t),
		Args:       []string{"{file}"},
		Strategy:   StrategyCorrected,
		Gap:        0,
	}
	fake := &fakeInvoker{stdout: "a\nB\nc\nD\n"}
	a, err := New(cfg, WithInvoker(fake))
	if err != nil {
		t.Fatal(err)
	}

	stream, err := a.RunContent(context.Background(), "a.go", "a\nb\nc\nd\n")
	if err != nil {
		t.Fatal(err)
	}
	out := stream.Collect()
	if len(out) != 2 {
		t.Fatalf("got %d findings, want 2", len(out))
	}
	if out[0].Line != 2 || out[1].Line != 4 {
		t.Errorf("lines = %d, %d; want 2, 4", out[0].Line, out[1].Line)
	}
	if out[0].Fix == nil || out[1].Fix == nil {
		t.Error("corrected-strategy findings must carry fixes")
	}
}

func TestAdapter_UnifiedDiffStrategy(t *testing.T) {
	cfg := ToolConfig{
		Name:       "differ",
		Executable: fakeTool(t),
		Args:       []string{"{file}"},
		Strategy:   StrategyUnifiedDiff,
	}

	t.Run("well-formed", func(t *testing.T) {
		fake := &fakeInvoker{stdout: "@@ -2,1 +2,1 @@\n-b\n+B\n"}
		a, err := New(cfg, WithInvoker(fake))
		if err != nil {
			t.Fatal(err)
		}
		stream, err := a.RunContent(context.Background(), "a.go", "")
		if err != nil {
			t.Fatal(err)
		}
		out := stream.Collect()
		if len(out) != 1 || out[0].Line != 2 {
			t.Errorf("findings = %+v, want one at line 2", out)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		fake := &fakeInvoker{stdout: "@@ garbage @@\n"}
		a, err := New(cfg, WithInvoker(fake))
		if err != nil {
			t.Fatal(err)
		}
		_, err = a.RunContent(context.Background(), "a.go", "")
		if !errors.Is(err, extract.ErrDiffFormat) {
			t.Errorf("err = %v, want ErrDiffFormat", err)
		}
	})
}

func TestAdapter_InvokerFailure(t *testing.T) {
	fake := &fakeInvoker{err: errors.New("fork bomb containment")}
	a, err := New(regexTool(t), WithInvoker(fake))
	if err != nil {
		t.Fatal(err)
	}

	_, err = a.RunContent(context.Background(), "a.go", "")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("err = %T, want *ToolError", err)
	}
	if toolErr.Tool != "mylint" {
		t.Errorf("ToolError.Tool = %q, want mylint", toolErr.Tool)
	}
}

func TestAdapter_InvalidInput(t *testing.T) {
	a, err := New(regexTool(t), WithInvoker(&fakeInvoker{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.RunContent(context.Background(), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty file path: err = %v, want ErrInvalidInput", err)
	}
}

func TestExecInvoker_RealProcess(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	iv := &ExecInvoker{}
	stdout, stderr, exit, err := iv.Invoke(context.Background(),
		[]string{"/bin/sh", "-c", "echo out; echo err 1>&2; exit 3"})
	if err != nil {
		t.Fatal(err)
	}
	if exit != 3 {
		t.Errorf("exit = %d, want 3 (non-zero exit is data, not an error)", exit)
	}
	if string(stdout) != "out\n" || string(stderr) != "err\n" {
		t.Errorf("streams = %q / %q", stdout, stderr)
	}
}

func TestMaterializeTempFile(t *testing.T) {
	path, cleanup, err := MaterializeTempFile("content", "lintbridge-test-*.cfg")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content" {
		t.Errorf("temp file content = %q", data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cleanup must remove the file")
	}
	cleanup() // calling twice is safe
}
