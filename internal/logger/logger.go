// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger used as the
// opt-in diagnostics channel of the schema/env engine.
//
// Diagnostics are trace-level, human-readable records of name derivation,
// parse attempts and failures, and discovery decisions. They never affect
// results; the engine defaults to Nop and callers opt in by supplying a
// zerolog logger.
package logger

import (
	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// engine to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// Wrap adapts a caller-supplied zerolog logger.
func Wrap(zl zerolog.Logger) *Logger {
	return &Logger{zl}
}

// Nop returns a *Logger that discards all output. It is the default for
// both public operations and is intended for tests as well.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a new *Logger that inherits all fields of the receiver and
// adds a component field for the given sub-component.
func (l *Logger) Child(component string) *Logger {
	return &Logger{l.With().Str("component", component).Logger()}
}
