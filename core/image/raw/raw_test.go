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

package raw_test

import (
	eb "encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/texdecode/core/image"
	"github.com/google/texdecode/core/image/raw"
)

func u16s(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = eb.LittleEndian.Uint16(b[2*i:])
	}
	return out
}

func TestRAW10(t *testing.T) {
	dst := make([]byte, 8)
	// Pixels 0x3FF, 0x000, 0x201, 0x1FE.
	raw.DecodeRAW10(dst, []byte{0xFF, 0x00, 0x80, 0x7F, 0b10_01_00_11})
	assert.Equal(t, []uint16{0xFFFF, 0x0000, 0x8060, 0x7F9F}, u16s(dst))
}

func TestRAW12(t *testing.T) {
	dst := make([]byte, 4)
	// Pixels 0xFFF and 0x801.
	raw.DecodeRAW12(dst, []byte{0xFF, 0x80, 0x1F})
	assert.Equal(t, []uint16{0xFFFF, 0x8018}, u16s(dst))
}

func TestRegistered(t *testing.T) {
	for _, f := range []image.Format{image.RAW10, image.RAW12} {
		assert.True(t, image.HasDecoder(f), "%v", f)
	}

	// 6x2 RAW10 covers two blocks per row, the second clipped.
	tex := image.NewCompressedTexture(image.RAW10, 6, 2, 1)
	for i := range tex.Bytes {
		tex.Bytes[i] = 0xFF
	}
	tex.Bytes[5] = 0
	tex.Bytes[9] = 0
	out := tex.Decompress()
	require.Equal(t, image.R_U16_NORM, out.Layout)
	got := u16s(out.Data)
	require.Len(t, got, 12)
	assert.Equal(t, uint16(0xFFFF), got[0])
	assert.Equal(t, uint16(0), got[4])
	assert.Equal(t, uint16(0xFF3F), got[5])
	assert.Equal(t, uint16(0xFFFF), got[6])
}
