// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog loggers used by paperchat.
//
// The TUI owns the terminal, so it logs nowhere unless a log file is
// configured. Line-mode commands log warnings to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where and how much to log.
type Options struct {
	// Level is a zerolog level name. Empty uses DefaultLevel.
	Level string
	// DefaultLevel applies when Level is empty.
	DefaultLevel zerolog.Level
	// File, when set, receives JSON lines through a rotating writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Console writes human-readable output to Stderr when no File is set.
	Console bool
	Stderr  io.Writer
}

// ParseLevel converts a level name into a zerolog.Level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger and a close function for its sink.
// With neither File nor Console set the logger discards everything.
func New(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := opts.DefaultLevel
	if opts.Level != "" {
		l, err := ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), noop, err
		}
		level = l
	}

	switch {
	case opts.File != "":
		rot := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		logger := zerolog.New(rot).Level(level).With().Timestamp().Logger()
		return logger, rot.Close, nil

	case opts.Console:
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		logger := zerolog.New(cw).Level(level).With().Timestamp().Logger()
		return logger, noop, nil

	default:
		return zerolog.Nop(), noop, nil
	}
}
