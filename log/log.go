// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a minimal leveled logger used by the iges core to report
// diagnostics without aborting the caller's process, small enough to vendor
// rather than pulling in a full logging framework for a handful of call
// sites.
package log

import "context"

// Logger is the sink every diagnostic message is written through.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// logger adapts a plain function into a Logger.
type logger struct {
	log func(level Level, keyvals ...interface{}) error
}

func (l *logger) Log(level Level, keyvals ...interface{}) error {
	return l.log(level, keyvals...)
}

// NewLogger wraps a log function as a Logger.
func NewLogger(log func(level Level, keyvals ...interface{}) error) Logger {
	return &logger{log: log}
}

type contextKey struct{}

// NewContext returns a new context with the logger attached.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger attached to ctx and whether one was
// attached.
func FromContext(ctx context.Context) (Logger, bool) {
	l, ok := ctx.Value(contextKey{}).(Logger)
	return l, ok
}
