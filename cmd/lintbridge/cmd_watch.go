// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// debounceDelay batches filesystem event bursts (editors often fire
// several events per save) into one analysis pass.
const debounceDelay = 300 * time.Millisecond

// runWatch re-runs analysis whenever a matched file changes, until
// interrupted.
func runWatch(cmd *cobra.Command, args []string) error {
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			logger.Info("serving metrics", "addr", metricsAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	analyze := func() {
		files, err := collectArgs(args)
		if err != nil {
			logger.Error("file collection failed", "error", err)
			return
		}
		results, err := r.Run(ctx, files)
		if err != nil {
			logger.Error("analysis failed", "error", err)
			return
		}
		if err := printFindings(os.Stdout, results); err != nil {
			logger.Error("writing findings failed", "error", err)
		}
	}

	// Watch the directories of the currently matched files; fsnotify
	// watches directories, not globs.
	files, err := collectArgs(args)
	if err != nil {
		return err
	}
	dirs := make(map[string]struct{})
	dirs["."] = struct{}{}
	for _, file := range files {
		dirs[filepath.Dir(file)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	analyze()
	logger.Info("watching for changes", "dirs", len(dirs))

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, analyze)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
