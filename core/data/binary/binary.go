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

// Package binary holds the bit and byte level primitives used to pull fields
// out of compressed blocks and container headers.
package binary

import (
	"io"

	"github.com/google/texdecode/core/math/f16"
)

// Reader decodes fixed-size values from a byte stream.
//
// If there is an error reading any input, all further reads return the zero
// value of the type read and Error returns the error that stopped reading.
type Reader interface {
	io.Reader
	// Data reads len(p) bytes in their entirety.
	Data(p []byte)
	// Skip discards n bytes.
	Skip(n int64)
	Uint8() uint8
	Uint16() uint16
	Uint32() uint32
	Uint64() uint64
	Float16() f16.Number
	Float32() float32
	// Offset returns the number of bytes consumed so far.
	Offset() int64
	Error() error
	// SetError sets the error state and stops reading from the stream.
	SetError(error)
}

// Writer encodes fixed-size values to a byte stream.
//
// Once a write fails all further writes are dropped and Error returns the
// first failure.
type Writer interface {
	// Data writes the data bytes in their entirety.
	Data([]byte)
	Uint8(uint8)
	Uint16(uint16)
	Uint32(uint32)
	Uint64(uint64)
	Float32(float32)
	Error() error
	SetError(error)
}
