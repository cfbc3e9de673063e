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

// Package endian implements binary.Reader and binary.Writer over a chosen
// byte order.
package endian

import (
	eb "encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/binary"
	"github.com/google/texdecode/core/math/f16"
)

// Reader creates a binary.Reader that reads from r with the given byte order.
func Reader(r io.Reader, order eb.ByteOrder) binary.Reader {
	return &reader{reader: r, order: order}
}

// Writer creates a binary.Writer that writes to w with the given byte order.
func Writer(w io.Writer, order eb.ByteOrder) binary.Writer {
	return &writer{writer: w, order: order}
}

type reader struct {
	reader io.Reader
	order  eb.ByteOrder
	tmp    [8]byte
	offset int64
	err    error
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.offset += int64(n)
	return n, err
}

func (r *reader) fill(n int) []byte {
	b := r.tmp[:n]
	if r.err != nil {
		for i := range b {
			b[i] = 0
		}
		return b
	}
	r.Data(b)
	return b
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.reader, p)
	r.offset += int64(n)
	if err != nil {
		r.err = errors.Wrapf(err, "reading %d bytes at offset %d", len(p), r.offset-int64(n))
		for i := range p {
			p[i] = 0
		}
	}
}

func (r *reader) Skip(n int64) {
	if r.err != nil {
		return
	}
	got, err := io.CopyN(io.Discard, r.reader, n)
	r.offset += got
	if err != nil {
		r.err = errors.Wrapf(err, "skipping %d bytes", n)
	}
}

func (r *reader) Uint8() uint8 {
	return r.fill(1)[0]
}

func (r *reader) Uint16() uint16 {
	return r.order.Uint16(r.fill(2))
}

func (r *reader) Uint32() uint32 {
	return r.order.Uint32(r.fill(4))
}

func (r *reader) Uint64() uint64 {
	return r.order.Uint64(r.fill(8))
}

func (r *reader) Float16() f16.Number {
	return f16.Number(r.Uint16())
}

func (r *reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (r *reader) Offset() int64 {
	return r.offset
}

func (r *reader) Error() error {
	return r.err
}

func (r *reader) SetError(err error) {
	if r.err == nil {
		r.err = err
	}
}

type writer struct {
	writer io.Writer
	order  eb.ByteOrder
	tmp    [8]byte
	err    error
}

func (w *writer) Data(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.writer.Write(data)
	switch {
	case err != nil:
		w.err = err
	case n != len(data):
		w.err = io.ErrShortWrite
	}
}

func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (w *writer) Uint16(v uint16) {
	w.order.PutUint16(w.tmp[:], v)
	w.Data(w.tmp[:2])
}

func (w *writer) Uint32(v uint32) {
	w.order.PutUint32(w.tmp[:], v)
	w.Data(w.tmp[:4])
}

func (w *writer) Uint64(v uint64) {
	w.order.PutUint64(w.tmp[:], v)
	w.Data(w.tmp[:8])
}

func (w *writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

func (w *writer) Error() error { return w.err }

func (w *writer) SetError(err error) {
	if w.err == nil {
		w.err = err
	}
}
