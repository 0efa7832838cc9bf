// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import "fmt"

// Helper wraps a Logger with convenience printf-style methods, the way
// callers throughout the core reach for pe.logger.Errorf/Warnf/Debugf.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugf logs at debug level.
func (h *Helper) Debugf(format string, a ...interface{}) {
	_ = h.logger.Log(LevelDebug, "msg", fmt.Sprintf(format, a...))
}

// Infof logs at info level.
func (h *Helper) Infof(format string, a ...interface{}) {
	_ = h.logger.Log(LevelInfo, "msg", fmt.Sprintf(format, a...))
}

// Warnf logs at warn level.
func (h *Helper) Warnf(format string, a ...interface{}) {
	_ = h.logger.Log(LevelWarn, "msg", fmt.Sprintf(format, a...))
}

// Errorf logs at error level.
func (h *Helper) Errorf(format string, a ...interface{}) {
	_ = h.logger.Log(LevelError, "msg", fmt.Sprintf(format, a...))
}

// Fatalf logs at fatal level. It does not terminate the process; the core
// never aborts on its own.
func (h *Helper) Fatalf(format string, a ...interface{}) {
	_ = h.logger.Log(LevelFatal, "msg", fmt.Sprintf(format, a...))
}
