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

package image_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/texdecode/core/fault"
	"github.com/google/texdecode/core/image"
)

// randomTexture returns a texture of format f filled with random blocks.
func randomTexture(f image.Format, w, h, d int, seed int64) *image.CompressedTexture {
	t := image.NewCompressedTexture(f, w, h, d)
	rand.New(rand.NewSource(seed)).Read(t.Bytes)
	return t
}

var coreFormats = []image.Format{
	image.ETC1_RGB_U8_NORM,
	image.ETC2_RGB_U8_NORM,
	image.ETC2_RGBA_U8U8U8U1_NORM,
	image.ETC2_RGBA_U8_NORM,
	image.ETC2_R_U11_NORM,
	image.ETC2_RG_S11_NORM,
	image.S3_DXT1_RGB,
	image.S3_DXT1_RGBA,
	image.S3_DXT3_RGBA,
	image.S3_DXT5_SRGBA,
	image.RGTC1_BC4_R_S8_NORM,
	image.RGTC2_BC5_RG_U8_NORM,
	image.BPTC_BC6H_RGB_UFLOAT,
	image.BPTC_BC6H_RGB_SFLOAT,
	image.BPTC_BC7_RGBA_U8_NORM,
}

func TestDecompressClipping(t *testing.T) {
	for _, f := range coreFormats {
		full := randomTexture(f, 16, 16, 2, 1)
		want := full.Decompress()

		clipped := *full
		clipped.Width, clipped.Height = 13, 14
		got := clipped.Decompress()
		for z := 0; z < 2; z++ {
			for y := 0; y < 14; y++ {
				for x := 0; x < 13; x++ {
					require.Equal(t, want.Pixel(x, y, z), got.Pixel(x, y, z), "%v (%d, %d, %d)", f, x, y, z)
				}
			}
		}
	}
}

func TestDecompressDeterministic(t *testing.T) {
	for _, f := range coreFormats {
		tex := randomTexture(f, 9, 7, 1, 2)
		assert.Equal(t, tex.Decompress().Data, tex.Decompress().Data, "%v", f)
	}
}

func TestDecompressParallel(t *testing.T) {
	for _, f := range coreFormats {
		tex := randomTexture(f, 37, 21, 3, 3)
		want := tex.Decompress()
		for _, workers := range []int{0, 1, 2, 5, 64} {
			assert.Equal(t, want.Data, tex.DecompressParallel(workers).Data, "%v with %d workers", f, workers)
		}
	}
}

func TestCheck(t *testing.T) {
	bc1 := make([]byte, 8*4) // 8x8 pixels
	for _, test := range []struct {
		name   string
		dst    *image.PixelBuffer
		format image.Format
		src    []byte
		want   error
	}{
		{"ok", image.NewPixelBuffer(image.RGBA_U8_NORM, 8, 8, 1), image.S3_DXT1_RGB, bc1, nil},
		{"ok clipped", image.NewPixelBuffer(image.RGBA_U8_NORM, 5, 7, 1), image.S3_DXT1_RGB, bc1, nil},
		{"unknown format", image.NewPixelBuffer(image.RGBA_U8_NORM, 8, 8, 1), image.FormatUnknown, bc1, image.ErrUnknownFormat},
		{"empty extent", image.NewPixelBuffer(image.RGBA_U8_NORM, 0, 8, 1), image.S3_DXT1_RGB, bc1, image.ErrBadExtent},
		{"layout", image.NewPixelBuffer(image.RGB_U8_NORM, 8, 8, 1), image.S3_DXT1_RGB, bc1, image.ErrLayoutMismatch},
		{"short source", image.NewPixelBuffer(image.RGBA_U8_NORM, 8, 8, 1), image.S3_DXT1_RGB, bc1[:24], image.ErrSourceSize},
		{"long source", image.NewPixelBuffer(image.RGBA_U8_NORM, 8, 4, 1), image.S3_DXT1_RGB, bc1, image.ErrSourceSize},
		{"short destination", &image.PixelBuffer{Layout: image.RGBA_U8_NORM, Width: 8, Height: 8, Depth: 1, Data: make([]byte, 10)},
			image.S3_DXT1_RGB, bc1, image.ErrDestinationSize},
		{"no decoder", image.NewPixelBuffer(image.RGBA_F16, 12, 12, 1), image.ASTC_12x12_RGBA, make([]byte, 16), image.ErrNoDecoder},
	} {
		err := image.Check(test.dst, test.format, test.src)
		if test.want == nil {
			assert.NoError(t, err, test.name)
			continue
		}
		assert.True(t, errors.Is(err, test.want), "%s: got %v", test.name, err)
		assert.Equal(t, err, fault.Catch(func() { image.Decompress(test.dst, test.format, test.src) }), test.name)
	}
}

func TestDecompressParallelPropagatesPanics(t *testing.T) {
	dst := image.NewPixelBuffer(image.RGB_U8_NORM, 8, 8, 1)
	err := fault.Catch(func() { image.DecompressParallel(dst, image.S3_DXT1_RGB, make([]byte, 32), 4) })
	assert.True(t, errors.Is(err, image.ErrLayoutMismatch))
}

func TestExternalDecoder(t *testing.T) {
	f := image.ASTC_6x5_SRGBA
	assert.False(t, image.HasDecoder(f))
	assert.True(t, image.HasDecoder(image.BPTC_BC7_RGBA_U8_NORM))

	calls := 0
	image.RegisterExternal(f, image.BlockDecoderFunc(func(got image.Format, dst, src []byte) {
		assert.Equal(t, f, got)
		assert.Len(t, dst, 6*5*4)
		assert.Len(t, src, 16)
		for i := range dst {
			dst[i] = src[0]
		}
		calls++
	}))
	assert.True(t, image.HasDecoder(f))
	assert.Panics(t, func() { image.RegisterExternal(f, image.BlockDecoderFunc(nil)) }, "duplicate")
	assert.Panics(t, func() { image.RegisterExternal(image.S3_DXT1_RGB, image.BlockDecoderFunc(nil)) }, "core format")

	tex := image.NewCompressedTexture(f, 7, 6, 1)
	for i := range tex.Bytes {
		tex.Bytes[i] = 0x42
	}
	out := tex.Decompress()
	assert.Equal(t, 4, calls)
	assert.Equal(t, []byte{0x42, 0x42, 0x42, 0x42}, out.Pixel(6, 5, 0))
}

func TestCompressedTexture(t *testing.T) {
	tex := image.NewCompressedTexture(image.BPTC_BC7_RGBA_U8_NORM, 9, 5, 2)
	assert.Len(t, tex.Bytes, 3*2*2*16)
	bx, by, bz := tex.Blocks()
	assert.Equal(t, []int{3, 2, 2}, []int{bx, by, bz})
	tex.Bytes[(1*2*3+1*3+2)*16] = 0xAB
	assert.Equal(t, byte(0xAB), tex.Block(2, 1, 1)[0])
	assert.NoError(t, tex.Check())

	tex.SetStorage(4, 4, 1)
	assert.Equal(t, make([]byte, 16), tex.Bytes)

	tex.Bytes = tex.Bytes[:8]
	assert.True(t, errors.Is(tex.Check(), image.ErrSourceSize))

	assert.Panics(t, func() { tex.SetStorage(0, 1, 1) })
	assert.Panics(t, func() { image.NewCompressedTexture(image.FormatUnknown, 4, 4, 1) })
	assert.Equal(t, "BPTC_BC7_RGBA_U8_NORM 4x4x1", tex.String())
}
