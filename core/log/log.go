// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides context-carried leveled logging. Messages are built
// from the handler, filter, tag, trace and values stored on a
// context.Context and delivered to a Handler, normally one backed by
// log/slog.
package log

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Logger holds the logging state captured from a context.
type Logger struct {
	handler Handler
	filter  Filter
	clock   Clock
	tag     string
	trace   []string
	values  *values
}

// From returns a new Logger from the context ctx.
func From(ctx context.Context) *Logger {
	return &Logger{
		handler: GetHandler(ctx),
		filter:  GetFilter(ctx),
		clock:   GetClock(ctx),
		tag:     GetTag(ctx),
		trace:   GetTrace(ctx),
		values:  getValues(ctx),
	}
}

// Bind returns a new Logger from the context ctx with the additional values in
// v.
func Bind(ctx context.Context, v V) *Logger {
	return From(v.Bind(ctx))
}

// D logs a debug message to the logging target.
func D(ctx context.Context, fmt string, args ...interface{}) { From(ctx).D(fmt, args...) }

// I logs a info message to the logging target.
func I(ctx context.Context, fmt string, args ...interface{}) { From(ctx).I(fmt, args...) }

// W logs a warning message to the logging target.
func W(ctx context.Context, fmt string, args ...interface{}) { From(ctx).W(fmt, args...) }

// E logs a error message to the logging target.
func E(ctx context.Context, fmt string, args ...interface{}) { From(ctx).E(fmt, args...) }

// D logs a debug message to the logging target.
func (l *Logger) D(fmt string, args ...interface{}) { l.Logf(Debug, fmt, args...) }

// I logs a info message to the logging target.
func (l *Logger) I(fmt string, args ...interface{}) { l.Logf(Info, fmt, args...) }

// W logs a warning message to the logging target.
func (l *Logger) W(fmt string, args ...interface{}) { l.Logf(Warning, fmt, args...) }

// E logs a error message to the logging target.
func (l *Logger) E(fmt string, args ...interface{}) { l.Logf(Error, fmt, args...) }

// Enabled returns true if a message at severity s would reach the handler.
func (l *Logger) Enabled(s Severity) bool {
	return l.handler != nil && (l.filter == nil || l.filter.ShowSeverity(s))
}

// Logf logs a printf-style message at severity s to the logging target.
func (l *Logger) Logf(s Severity, text string, args ...interface{}) {
	if !l.Enabled(s) {
		return
	}
	l.handler.Handle(l.Messagef(s, text, args...))
}

// Messagef returns a new Message with the given severity and text.
func (l *Logger) Messagef(s Severity, text string, args ...interface{}) *Message {
	return l.Message(s, fmt.Sprintf(text, args...))
}

// Message returns a new Message with the given severity and text.
func (l *Logger) Message(s Severity, text string) *Message {
	t := time.Now()
	if l.clock != nil {
		t = l.clock.Time()
	}
	m := &Message{
		Text:     text,
		Time:     t,
		Severity: s,
		Tag:      l.tag,
		Trace:    l.trace,
	}
	seen := map[string]bool{}
	for n := l.values; n != nil; n = n.parent {
		for name, value := range n.v {
			if !seen[name] {
				seen[name] = true
				m.Values = append(m.Values, &Value{Name: name, Value: value})
			}
		}
	}
	sort.Sort(m.Values)
	return m
}
