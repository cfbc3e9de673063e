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

func TestFormatTable(t *testing.T) {
	for _, test := range []struct {
		f      image.Format
		fp     image.Footprint
		layout image.Layout
	}{
		{image.ETC1_RGB_U8_NORM, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 8}, image.RGB_U8_NORM},
		{image.ETC2_RGBA_U8_NORM, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 16}, image.RGBA_U8_NORM},
		{image.ETC2_RG_S11_NORM, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 16}, image.RG_S16_NORM},
		{image.S3_DXT1_RGB, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 8}, image.RGBA_U8_NORM},
		{image.RGTC1_BC4_R_S8_NORM, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 8}, image.R_S8_NORM},
		{image.BPTC_BC6H_RGB_SFLOAT, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 16}, image.RGB_F16},
		{image.BPTC_BC7_SRGBA_U8_NORM, image.Footprint{Width: 4, Height: 4, Depth: 1, Bytes: 16}, image.SRGBA_U8_NORM},
		{image.ASTC_10x8_RGBA, image.Footprint{Width: 10, Height: 8, Depth: 1, Bytes: 16}, image.RGBA_F16},
		{image.RAW10, image.Footprint{Width: 4, Height: 1, Depth: 1, Bytes: 5}, image.R_U16_NORM},
	} {
		assert.Equal(t, test.fp, test.f.Footprint(), "%v", test.f)
		assert.Equal(t, test.layout, test.f.Layout(), "%v", test.f)
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, 8, image.S3_DXT1_RGB.Size(1, 1, 1))
	assert.Equal(t, 2*2*8, image.S3_DXT1_RGB.Size(5, 8, 1))
	assert.Equal(t, 3*2*2*16, image.BPTC_BC7_RGBA_U8_NORM.Size(9, 5, 2))
	assert.Equal(t, 2*2*16, image.ASTC_12x10_RGBA.Size(13, 11, 1))
	assert.Equal(t, 3*5, image.RAW10.Size(9, 1, 1))
}

func TestFormatLookup(t *testing.T) {
	for _, f := range image.Formats() {
		assert.True(t, f.Valid())
		got, ok := image.FormatByName(f.String())
		assert.True(t, ok)
		assert.Equal(t, f, got)
		if vk := f.VkFormat(); vk != 0 {
			got, ok := image.FormatFromVk(vk)
			assert.True(t, ok)
			assert.Equal(t, f, got, "vk %d", vk)
		}
		if gl := f.GLInternalFormat(); gl != 0 {
			got, ok := image.FormatFromGL(gl)
			assert.True(t, ok)
			assert.Equal(t, f, got, "gl %#x", gl)
		}
		if dxgi := f.DXGIFormat(); dxgi != 0 {
			got, ok := image.FormatFromDXGI(dxgi)
			assert.True(t, ok)
			assert.Equal(t, f, got, "dxgi %d", dxgi)
		}
	}
	f, ok := image.FormatByName("bptc_bc7_rgba_u8_norm")
	assert.True(t, ok)
	assert.Equal(t, image.BPTC_BC7_RGBA_U8_NORM, f)
	_, ok = image.FormatByName("PVRTC")
	assert.False(t, ok)
	_, ok = image.FormatFromVk(0)
	assert.False(t, ok)
	assert.False(t, image.FormatUnknown.Valid())
	assert.True(t, image.ASTC_4x4_SRGBA.External())
	assert.False(t, image.ETC1_RGB_U8_NORM.External())
}
