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

package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Handler is the handler of log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

type handler struct {
	handle func(*Message)
	close  func()
}

func (h handler) Handle(m *Message) { h.handle(m) }

func (h handler) Close() {
	if h.close != nil {
		h.close()
	}
}

// NewHandler returns a Handler that calls handle for each message and close
// when the handler is closed. close may be nil.
func NewHandler(handle func(*Message), close func()) Handler {
	return handler{handle, close}
}

// Slog returns a Handler that forwards each message to the slog handler h.
// The tag, trace and values of the message become record attributes.
func Slog(h slog.Handler) Handler {
	var mu sync.Mutex
	return NewHandler(func(m *Message) {
		level := m.Severity.Level()
		if !h.Enabled(context.Background(), level) {
			return
		}
		rec := slog.NewRecord(m.Time, level, m.Text, 0)
		if m.Tag != "" {
			rec.AddAttrs(slog.String("tag", m.Tag))
		}
		if len(m.Trace) > 0 {
			rec.AddAttrs(slog.String("trace", strings.Join(m.Trace, "→")))
		}
		for _, v := range m.Values {
			rec.AddAttrs(slog.Any(v.Name, v.Value))
		}
		mu.Lock()
		defer mu.Unlock()
		h.Handle(context.Background(), rec)
	}, nil)
}

// Writer returns a Handler that writes logfmt style text lines to w, showing
// every severity that passes the context's Filter.
func Writer(w io.Writer) Handler {
	return Slog(slog.NewTextHandler(w, &slog.HandlerOptions{Level: Verbose.Level()}))
}

// RotatingFile holds the settings of a size-rotated log file.
type RotatingFile struct {
	// Path of the active log file.
	Path string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
	// Compress gzips rotated files.
	Compress bool
}

// Handler returns a Handler writing JSON records to the rotated file. Close
// the handler to release the file.
func (f RotatingFile) Handler() Handler {
	out := &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		Compress:   f.Compress,
	}
	h := Slog(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: Verbose.Level()}))
	return NewHandler(h.Handle, func() { out.Close() })
}

// Fork returns a Handler that sends each message to all of handlers.
func Fork(handlers ...Handler) Handler {
	return NewHandler(func(m *Message) {
		for _, h := range handlers {
			h.Handle(m)
		}
	}, func() {
		for _, h := range handlers {
			h.Close()
		}
	})
}

// Buffer is a Handler that records every message it is given.
type Buffer struct {
	mu       sync.Mutex
	messages []*Message
}

// Handle appends m to the buffer.
func (b *Buffer) Handle(m *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, m)
}

// Close is a no-op.
func (b *Buffer) Close() {}

// Messages returns a copy of the recorded messages.
func (b *Buffer) Messages() []*Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Message(nil), b.messages...)
}
