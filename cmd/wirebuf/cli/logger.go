// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/wirebuf/lib/config"
	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger on stderr from the log
// section of the configuration. Format "auto" selects slog.TextHandler
// when stderr is a terminal and slog.JSONHandler when it is piped or
// redirected (CI, scripts).
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "store/put", "root", store.Root())
func NewCommandLogger(logConfig config.LogConfig) (*slog.Logger, error) {
	return newLogger(os.Stderr, logConfig, term.IsTerminal(int(os.Stderr.Fd())))
}

func newLogger(w io.Writer, logConfig config.LogConfig, terminal bool) (*slog.Logger, error) {
	level, err := logConfig.SlogLevel()
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch logConfig.Format {
	case "text":
		handler = slog.NewTextHandler(w, options)
	case "json":
		handler = slog.NewJSONHandler(w, options)
	case "auto", "":
		if terminal {
			handler = slog.NewTextHandler(w, options)
		} else {
			handler = slog.NewJSONHandler(w, options)
		}
	default:
		return nil, fmt.Errorf("log.format %q must be one of auto, text, json", logConfig.Format)
	}
	return slog.New(handler), nil
}
