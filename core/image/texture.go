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

	"github.com/google/texdecode/core/fault"
)

// CompressedTexture owns the packed blocks of one image together with its
// format and extent. The length of Bytes is always Format.Size of the extent.
type CompressedTexture struct {
	Format Format
	Width  int
	Height int
	Depth  int
	Bytes  []byte
}

// NewCompressedTexture returns a zero-filled texture of the given format and
// extent.
func NewCompressedTexture(f Format, width, height, depth int) *CompressedTexture {
	t := &CompressedTexture{Format: f}
	t.SetStorage(width, height, depth)
	return t
}

// SetStorage reinitialises the texture to the given extent, replacing the
// packed bytes with a zero-filled buffer of the matching size.
func (t *CompressedTexture) SetStorage(width, height, depth int) {
	if !t.Format.Valid() {
		fault.Panicf(ErrUnknownFormat, "%v", t.Format)
	}
	if width <= 0 || height <= 0 || depth <= 0 {
		fault.Panicf(ErrBadExtent, "%dx%dx%d", width, height, depth)
	}
	t.Width, t.Height, t.Depth = width, height, depth
	t.Bytes = make([]byte, t.Format.Size(width, height, depth))
}

// Blocks returns the number of blocks along each axis.
func (t *CompressedTexture) Blocks() (bx, by, bz int) {
	return t.Format.Footprint().Blocks(t.Width, t.Height, t.Depth)
}

// Block returns the packed bytes of the block at (bx, by, bz).
func (t *CompressedTexture) Block(bx, by, bz int) []byte {
	nx, ny, _ := t.Blocks()
	size := t.Format.Footprint().Bytes
	i := (bz*ny+by)*nx + bx
	return t.Bytes[i*size : (i+1)*size]
}

// Check returns an error if the length of Bytes does not match the extent.
func (t *CompressedTexture) Check() error {
	if want := t.Format.Size(t.Width, t.Height, t.Depth); len(t.Bytes) != want {
		return fault.Violation{Kind: ErrSourceSize, Detail: fmt.Sprintf("%v has %d bytes, want %d", t, len(t.Bytes), want)}
	}
	return nil
}

// NewPixelBuffer returns a zero-filled destination for decoding t.
func (t *CompressedTexture) NewPixelBuffer() *PixelBuffer {
	return NewPixelBuffer(t.Format.Layout(), t.Width, t.Height, t.Depth)
}

// DecompressTo decodes t into dst. See Decompress.
func (t *CompressedTexture) DecompressTo(dst *PixelBuffer) {
	Decompress(dst, t.Format, t.Bytes)
}

// Decompress decodes t into a new buffer in the canonical layout.
func (t *CompressedTexture) Decompress() *PixelBuffer {
	dst := t.NewPixelBuffer()
	Decompress(dst, t.Format, t.Bytes)
	return dst
}

// DecompressParallel decodes t into a new buffer using workers goroutines.
func (t *CompressedTexture) DecompressParallel(workers int) *PixelBuffer {
	dst := t.NewPixelBuffer()
	DecompressParallel(dst, t.Format, t.Bytes, workers)
	return dst
}

func (t *CompressedTexture) String() string {
	return fmt.Sprintf("%v %dx%dx%d", t.Format, t.Width, t.Height, t.Depth)
}
