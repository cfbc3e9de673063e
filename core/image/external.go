// Copyright (C) 2026 Google Inc.
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

package image

import (
	"fmt"
	"sync"
)

// BlockDecoder decodes single blocks of formats that are not decoded by this
// package. dst holds one block of pixels in the canonical layout of f,
// x-fastest then y then z; src holds one packed block.
type BlockDecoder interface {
	DecodeBlock(f Format, dst, src []byte)
}

// BlockDecoderFunc adapts a function to a BlockDecoder.
type BlockDecoderFunc func(f Format, dst, src []byte)

// DecodeBlock calls d(f, dst, src).
func (d BlockDecoderFunc) DecodeBlock(f Format, dst, src []byte) { d(f, dst, src) }

var (
	externalMu       sync.RWMutex
	externalDecoders = map[Format]BlockDecoder{}
)

// RegisterExternal installs the decoder for the external format f. It panics
// if f is decoded by this package or already has a decoder.
func RegisterExternal(f Format, d BlockDecoder) {
	if !f.External() {
		panic(fmt.Errorf("%v is not an external format", f))
	}
	externalMu.Lock()
	defer externalMu.Unlock()
	if _, found := externalDecoders[f]; found {
		panic(fmt.Errorf("Decoder for %v already registered", f))
	}
	externalDecoders[f] = d
}

// HasDecoder returns true if blocks of f can be decoded.
func HasDecoder(f Format) bool {
	return f.Valid() && decoderFor(f) != nil
}

func externalDecoder(f Format) BlockDecoder {
	if !f.External() {
		return nil
	}
	externalMu.RLock()
	defer externalMu.RUnlock()
	return externalDecoders[f]
}
