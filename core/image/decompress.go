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
	"runtime"
	"sync"

	"github.com/google/texdecode/core/fault"
	"github.com/google/texdecode/core/math/sint"
)

// Precondition violations raised by Decompress.
const (
	ErrUnknownFormat   = fault.Const("unknown compressed format")
	ErrBadExtent       = fault.Const("image extent must be positive")
	ErrLayoutMismatch  = fault.Const("destination layout is not the canonical layout of the format")
	ErrSourceSize      = fault.Const("source length does not match the block count")
	ErrDestinationSize = fault.Const("destination buffer is smaller than its extent")
	ErrNoDecoder       = fault.Const("no decoder registered for format")
)

// decodeFunc decodes one packed block into a scratch block holding the
// block's pixels in the canonical layout, x-fastest then y then z.
type decodeFunc func(dst, src []byte)

func decoderFor(f Format) decodeFunc {
	switch f {
	case ETC1_RGB_U8_NORM:
		return decodeETC1
	case ETC2_RGB_U8_NORM, ETC2_SRGB_U8_NORM:
		return decodeETC2RGB
	case ETC2_RGBA_U8U8U8U1_NORM, ETC2_SRGBA_U8U8U8U1_NORM:
		return decodeETC2RGBA1
	case ETC2_RGBA_U8_NORM, ETC2_SRGBA_U8_NORM:
		return decodeETC2RGBA8
	case ETC2_R_U11_NORM:
		return decodeEACR11
	case ETC2_R_S11_NORM:
		return decodeEACR11Signed
	case ETC2_RG_U11_NORM:
		return decodeEACRG11
	case ETC2_RG_S11_NORM:
		return decodeEACRG11Signed
	case S3_DXT1_RGB, S3_DXT1_SRGB:
		return decodeBC1RGB
	case S3_DXT1_RGBA, S3_DXT1_SRGBA:
		return decodeBC1RGBA
	case S3_DXT3_RGBA, S3_DXT3_SRGBA:
		return decodeBC2
	case S3_DXT5_RGBA, S3_DXT5_SRGBA:
		return decodeBC3
	case RGTC1_BC4_R_U8_NORM:
		return decodeBC4
	case RGTC1_BC4_R_S8_NORM:
		return decodeBC4Signed
	case RGTC2_BC5_RG_U8_NORM:
		return decodeBC5
	case RGTC2_BC5_RG_S8_NORM:
		return decodeBC5Signed
	case BPTC_BC6H_RGB_UFLOAT:
		return decodeBC6HUnsigned
	case BPTC_BC6H_RGB_SFLOAT:
		return decodeBC6HSigned
	case BPTC_BC7_RGBA_U8_NORM, BPTC_BC7_SRGBA_U8_NORM:
		return decodeBC7
	}
	if d := externalDecoder(f); d != nil {
		return func(dst, src []byte) { d.DecodeBlock(f, dst, src) }
	}
	return nil
}

// Check returns the precondition violation Decompress would panic with, or
// nil if dst, format and src are consistent.
func Check(dst *PixelBuffer, format Format, src []byte) error {
	return fault.Catch(func() { prepare(dst, format, src) })
}

func prepare(dst *PixelBuffer, format Format, src []byte) decodeFunc {
	if !format.Valid() {
		fault.Panicf(ErrUnknownFormat, "%v", format)
	}
	if dst.Width <= 0 || dst.Height <= 0 || dst.Depth <= 0 {
		fault.Panicf(ErrBadExtent, "%dx%dx%d", dst.Width, dst.Height, dst.Depth)
	}
	if dst.Layout != format.Layout() {
		fault.Panicf(ErrLayoutMismatch, "%v decodes to %v, destination is %v", format, format.Layout(), dst.Layout)
	}
	if want := format.Size(dst.Width, dst.Height, dst.Depth); len(src) != want {
		fault.Panicf(ErrSourceSize, "%v %dx%dx%d needs %d bytes, got %d",
			format, dst.Width, dst.Height, dst.Depth, want, len(src))
	}
	if want := dst.Layout.Size(dst.Width, dst.Height, dst.Depth); len(dst.Data) < want {
		fault.Panicf(ErrDestinationSize, "%v needs %d bytes, got %d", dst, want, len(dst.Data))
	}
	decode := decoderFor(format)
	if decode == nil {
		fault.Panicf(ErrNoDecoder, "%v", format)
	}
	return decode
}

// Decompress decodes the packed blocks of src into dst, which must already be
// allocated in the canonical layout of format with the unclipped image
// extent. Blocks are visited x-fastest, then y, then z. Pixels of edge blocks
// that fall outside dst are decoded and discarded.
//
// Decompress panics with a fault.Violation if the arguments are inconsistent.
func Decompress(dst *PixelBuffer, format Format, src []byte) {
	decode := prepare(dst, format, src)
	t := newTiler(dst, format, src, decode)
	t.rows(0, t.by*t.bz, t.scratch())
}

// DecompressParallel is Decompress with the block rows shared between workers
// goroutines. A non-positive workers uses GOMAXPROCS. The output is identical
// to Decompress.
func DecompressParallel(dst *PixelBuffer, format Format, src []byte, workers int) {
	decode := prepare(dst, format, src)
	t := newTiler(dst, format, src, decode)
	total := t.by * t.bz
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = sint.Min(workers, total)
	if workers <= 1 {
		t.rows(0, total, t.scratch())
		return
	}

	var wg sync.WaitGroup
	var failed fault.One
	per := sint.DivUp(total, workers)
	for start := 0; start < total; start += per {
		end := sint.Min(start+per, total)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					failed.Collect(fault.From(r))
				}
			}()
			t.rows(start, end, t.scratch())
		}(start, end)
	}
	wg.Wait()
	if err := failed.First(); err != nil {
		panic(err)
	}
}

// tiler walks the block grid of one decode.
type tiler struct {
	dst        *PixelBuffer
	src        []byte
	decode     decodeFunc
	fp         Footprint
	pixelSize  int
	bx, by, bz int
}

func newTiler(dst *PixelBuffer, format Format, src []byte, decode decodeFunc) *tiler {
	fp := format.Footprint()
	bx, by, bz := fp.Blocks(dst.Width, dst.Height, dst.Depth)
	return &tiler{
		dst:       dst,
		src:       src,
		decode:    decode,
		fp:        fp,
		pixelSize: dst.Layout.PixelSize(),
		bx:        bx,
		by:        by,
		bz:        bz,
	}
}

func (t *tiler) scratch() []byte {
	return make([]byte, t.fp.Pixels()*t.pixelSize)
}

// rows decodes the block rows [start, end). Row r is block row r%by of block
// slice r/by.
func (t *tiler) rows(start, end int, scratch []byte) {
	for row := start; row < end; row++ {
		by, bz := row%t.by, row/t.by
		for bx := 0; bx < t.bx; bx++ {
			i := (bz*t.by+by)*t.bx + bx
			t.decode(scratch, t.src[i*t.fp.Bytes:(i+1)*t.fp.Bytes])
			t.place(scratch, bx, by, bz)
		}
	}
}

// place copies the part of the decoded block that lies inside dst.
func (t *tiler) place(scratch []byte, bx, by, bz int) {
	x0 := bx * t.fp.Width
	span := sint.Min(t.fp.Width, t.dst.Width-x0) * t.pixelSize
	rowBytes := t.fp.Width * t.pixelSize
	for dz := 0; dz < t.fp.Depth; dz++ {
		z := bz*t.fp.Depth + dz
		if z >= t.dst.Depth {
			break
		}
		for dy := 0; dy < t.fp.Height; dy++ {
			y := by*t.fp.Height + dy
			if y >= t.dst.Height {
				break
			}
			from := (dz*t.fp.Height + dy) * rowBytes
			copy(t.dst.Data[t.dst.Offset(x0, y, z):], scratch[from:from+span])
		}
	}
}
