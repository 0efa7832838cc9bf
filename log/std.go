// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import (
	"io"
	"log"
	"os"
	"sync"
)

type stdLogger struct {
	log  *log.Logger
	pool *sync.Pool
}

// NewStdLogger creates a Logger backed by the standard library log.Logger,
// writing to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{
		log: log.New(w, "", log.LstdFlags),
		pool: &sync.Pool{
			New: func() interface{} {
				return new([]interface{})
			},
		},
	}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	if len(keyvals) == 0 {
		return nil
	}
	buf := l.pool.Get().(*[]interface{})
	*buf = append(*buf, "level", level.String())
	*buf = append(*buf, keyvals...)
	l.log.Print(*buf...)
	*buf = (*buf)[:0]
	l.pool.Put(buf)
	return nil
}

// NewStdoutLogger is a convenience constructor writing to os.Stdout.
func NewStdoutLogger() Logger {
	return NewStdLogger(os.Stdout)
}
