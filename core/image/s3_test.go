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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/google/texdecode/core/image"
)

func fill(b *image.PixelBuffer, px ...byte) []byte {
	out := make([]byte, 0, len(b.Data))
	for i := 0; i < len(b.Data); i += len(px) {
		out = append(out, px...)
	}
	return out
}

func TestBC1EndpointOrder(t *testing.T) {
	// White then black, all indices 0: opaque white.
	out := decodeBlock(image.S3_DXT1_RGBA, 0xFF, 0xFF, 0x00, 0x00, 0, 0, 0, 0)
	assert.Equal(t, fill(out, 0xFF, 0xFF, 0xFF, 0xFF), out.Data)
	// Swapped: three-colour mode, but index 0 is still endpoint 0.
	out = decodeBlock(image.S3_DXT1_RGBA, 0x00, 0x00, 0xFF, 0xFF, 0, 0, 0, 0)
	assert.Equal(t, fill(out, 0x00, 0x00, 0x00, 0xFF), out.Data)
}

func TestBC1ThreeColour(t *testing.T) {
	out := decodeBlock(image.S3_DXT1_RGBA, 0x00, 0x00, 0xFF, 0xFF, 0xAA, 0xAA, 0xAA, 0xAA)
	assert.Equal(t, fill(out, 0x80, 0x80, 0x80, 0xFF), out.Data)
	out = decodeBlock(image.S3_DXT1_RGBA, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	assert.Equal(t, fill(out, 0, 0, 0, 0), out.Data, "transparent")
	out = decodeBlock(image.S3_DXT1_RGB, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	assert.Equal(t, fill(out, 0, 0, 0, 0xFF), out.Data, "opaque black")
}

func TestBC1FourColour(t *testing.T) {
	// Red (0xF800) then blue (0x001F), indices 2 then 3 alternating.
	out := decodeBlock(image.S3_DXT1_RGB, 0x00, 0xF8, 0x1F, 0x00, 0xEE, 0xEE, 0xEE, 0xEE)
	assert.Equal(t, []byte{170, 0, 85, 0xFF}, texel(out, 0, 0))
	assert.Equal(t, []byte{85, 0, 170, 0xFF}, texel(out, 1, 0))
}

func TestBC2(t *testing.T) {
	out := decodeBlock(image.S3_DXT3_RGBA,
		0x8F, 0, 0, 0, 0, 0, 0, 0,
		0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	// Four colours even though c0 < c1.
	assert.Equal(t, []byte{170, 170, 170, 0xFF}, texel(out, 0, 0))
	assert.Equal(t, []byte{170, 170, 170, 0x88}, texel(out, 1, 0))
	assert.Equal(t, []byte{170, 170, 170, 0x00}, texel(out, 2, 0))
}

func TestBC3(t *testing.T) {
	out := decodeBlock(image.S3_DXT5_RGBA,
		0xFF, 0x00, 0x02, 0, 0, 0, 0, 0,
		0xFF, 0xFF, 0x00, 0x00, 0, 0, 0, 0)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 219}, texel(out, 0, 0))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, texel(out, 1, 0))
}

func TestBC4(t *testing.T) {
	// Texel 0 index 2, texel 1 index 7, texel 2 index 6.
	indices := []byte{0xBA, 0x01, 0, 0, 0, 0}
	out := decodeBlock(image.RGTC1_BC4_R_U8_NORM, append([]byte{0, 255}, indices...)...)
	assert.Equal(t, []byte{51, 255, 0, 0}, out.Data[:4])

	out = decodeBlock(image.RGTC1_BC4_R_S8_NORM, append([]byte{0x81, 0x7F}, indices...)...)
	assert.Equal(t, []int8{-76, 127, -127, -127}, []int8{
		int8(out.Data[0]), int8(out.Data[1]), int8(out.Data[2]), int8(out.Data[3])})

	// -128 behaves as -127.
	out = decodeBlock(image.RGTC1_BC4_R_S8_NORM, 0x80, 0x7F, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, int8(-127), int8(out.Data[0]))
}

func TestBC5(t *testing.T) {
	out := decodeBlock(image.RGTC2_BC5_RG_U8_NORM,
		0x10, 0x20, 0, 0, 0, 0, 0, 0,
		0x30, 0x40, 0x01, 0, 0, 0, 0, 0)
	assert.Equal(t, []byte{0x10, 0x40}, texel(out, 0, 0))
	assert.Equal(t, []byte{0x10, 0x30}, texel(out, 1, 0))
}
