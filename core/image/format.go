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

package image

import (
	"fmt"
	"strings"

	"github.com/google/texdecode/core/math/sint"
)

// Format identifies a compressed texture format and its sub-variant.
type Format uint16

// The core formats decode with the decoders in this package. ASTC and the raw
// packed formats are external: they decode only once a BlockDecoder has been
// installed with RegisterExternal.
const (
	FormatUnknown Format = iota

	ETC1_RGB_U8_NORM
	ETC2_RGB_U8_NORM
	ETC2_SRGB_U8_NORM
	ETC2_RGBA_U8U8U8U1_NORM
	ETC2_SRGBA_U8U8U8U1_NORM
	ETC2_RGBA_U8_NORM
	ETC2_SRGBA_U8_NORM
	ETC2_R_U11_NORM
	ETC2_R_S11_NORM
	ETC2_RG_U11_NORM
	ETC2_RG_S11_NORM

	S3_DXT1_RGB
	S3_DXT1_SRGB
	S3_DXT1_RGBA
	S3_DXT1_SRGBA
	S3_DXT3_RGBA
	S3_DXT3_SRGBA
	S3_DXT5_RGBA
	S3_DXT5_SRGBA
	RGTC1_BC4_R_U8_NORM
	RGTC1_BC4_R_S8_NORM
	RGTC2_BC5_RG_U8_NORM
	RGTC2_BC5_RG_S8_NORM
	BPTC_BC6H_RGB_UFLOAT
	BPTC_BC6H_RGB_SFLOAT
	BPTC_BC7_RGBA_U8_NORM
	BPTC_BC7_SRGBA_U8_NORM

	ASTC_4x4_RGBA
	ASTC_4x4_SRGBA
	ASTC_5x4_RGBA
	ASTC_5x4_SRGBA
	ASTC_5x5_RGBA
	ASTC_5x5_SRGBA
	ASTC_6x5_RGBA
	ASTC_6x5_SRGBA
	ASTC_6x6_RGBA
	ASTC_6x6_SRGBA
	ASTC_8x5_RGBA
	ASTC_8x5_SRGBA
	ASTC_8x6_RGBA
	ASTC_8x6_SRGBA
	ASTC_8x8_RGBA
	ASTC_8x8_SRGBA
	ASTC_10x5_RGBA
	ASTC_10x5_SRGBA
	ASTC_10x6_RGBA
	ASTC_10x6_SRGBA
	ASTC_10x8_RGBA
	ASTC_10x8_SRGBA
	ASTC_10x10_RGBA
	ASTC_10x10_SRGBA
	ASTC_12x10_RGBA
	ASTC_12x10_SRGBA
	ASTC_12x12_RGBA
	ASTC_12x12_SRGBA

	RAW10
	RAW12

	formatCount
)

// Footprint is the pixel extent and packed byte size of one block.
type Footprint struct {
	Width, Height, Depth int
	Bytes                int
}

// Pixels returns the number of pixels covered by one block.
func (f Footprint) Pixels() int { return f.Width * f.Height * f.Depth }

// Blocks returns the number of blocks along each axis needed to cover an
// image of the given extent.
func (f Footprint) Blocks(width, height, depth int) (bx, by, bz int) {
	return sint.DivUp(width, f.Width), sint.DivUp(height, f.Height), sint.DivUp(depth, f.Depth)
}

type formatInfo struct {
	name      string
	footprint Footprint
	layout    Layout
	external  bool
	vk        uint32 // VkFormat
	gl        uint32 // GL internal format
	dxgi      uint32 // DXGI_FORMAT
}

var (
	block8  = Footprint{4, 4, 1, 8}
	block16 = Footprint{4, 4, 1, 16}
)

func astc(name string, w, h int, l Layout, vk, gl uint32) formatInfo {
	return formatInfo{name, Footprint{w, h, 1, 16}, l, true, vk, gl, 0}
}

var formats = [formatCount]formatInfo{
	FormatUnknown: {name: "<unknown>"},

	ETC1_RGB_U8_NORM:         {"ETC1_RGB_U8_NORM", block8, RGB_U8_NORM, false, 0, 0x8D64, 0},
	ETC2_RGB_U8_NORM:         {"ETC2_RGB_U8_NORM", block8, RGB_U8_NORM, false, 147, 0x9274, 0},
	ETC2_SRGB_U8_NORM:        {"ETC2_SRGB_U8_NORM", block8, SRGB_U8_NORM, false, 148, 0x9275, 0},
	ETC2_RGBA_U8U8U8U1_NORM:  {"ETC2_RGBA_U8U8U8U1_NORM", block8, RGBA_U8_NORM, false, 149, 0x9276, 0},
	ETC2_SRGBA_U8U8U8U1_NORM: {"ETC2_SRGBA_U8U8U8U1_NORM", block8, SRGBA_U8_NORM, false, 150, 0x9277, 0},
	ETC2_RGBA_U8_NORM:        {"ETC2_RGBA_U8_NORM", block16, RGBA_U8_NORM, false, 151, 0x9278, 0},
	ETC2_SRGBA_U8_NORM:       {"ETC2_SRGBA_U8_NORM", block16, SRGBA_U8_NORM, false, 152, 0x9279, 0},
	ETC2_R_U11_NORM:          {"ETC2_R_U11_NORM", block8, R_U16_NORM, false, 153, 0x9270, 0},
	ETC2_R_S11_NORM:          {"ETC2_R_S11_NORM", block8, R_S16_NORM, false, 154, 0x9271, 0},
	ETC2_RG_U11_NORM:         {"ETC2_RG_U11_NORM", block16, RG_U16_NORM, false, 155, 0x9272, 0},
	ETC2_RG_S11_NORM:         {"ETC2_RG_S11_NORM", block16, RG_S16_NORM, false, 156, 0x9273, 0},

	S3_DXT1_RGB:            {"S3_DXT1_RGB", block8, RGBA_U8_NORM, false, 131, 0x83F0, 0},
	S3_DXT1_SRGB:           {"S3_DXT1_SRGB", block8, SRGBA_U8_NORM, false, 132, 0x8C4C, 0},
	S3_DXT1_RGBA:           {"S3_DXT1_RGBA", block8, RGBA_U8_NORM, false, 133, 0x83F1, 71},
	S3_DXT1_SRGBA:          {"S3_DXT1_SRGBA", block8, SRGBA_U8_NORM, false, 134, 0x8C4D, 72},
	S3_DXT3_RGBA:           {"S3_DXT3_RGBA", block16, RGBA_U8_NORM, false, 135, 0x83F2, 74},
	S3_DXT3_SRGBA:          {"S3_DXT3_SRGBA", block16, SRGBA_U8_NORM, false, 136, 0x8C4E, 75},
	S3_DXT5_RGBA:           {"S3_DXT5_RGBA", block16, RGBA_U8_NORM, false, 137, 0x83F3, 77},
	S3_DXT5_SRGBA:          {"S3_DXT5_SRGBA", block16, SRGBA_U8_NORM, false, 138, 0x8C4F, 78},
	RGTC1_BC4_R_U8_NORM:    {"RGTC1_BC4_R_U8_NORM", block8, R_U8_NORM, false, 139, 0x8DBB, 80},
	RGTC1_BC4_R_S8_NORM:    {"RGTC1_BC4_R_S8_NORM", block8, R_S8_NORM, false, 140, 0x8DBC, 81},
	RGTC2_BC5_RG_U8_NORM:   {"RGTC2_BC5_RG_U8_NORM", block16, RG_U8_NORM, false, 141, 0x8DBD, 83},
	RGTC2_BC5_RG_S8_NORM:   {"RGTC2_BC5_RG_S8_NORM", block16, RG_S8_NORM, false, 142, 0x8DBE, 84},
	BPTC_BC6H_RGB_UFLOAT:   {"BPTC_BC6H_RGB_UFLOAT", block16, RGB_F16, false, 143, 0x8E8F, 95},
	BPTC_BC6H_RGB_SFLOAT:   {"BPTC_BC6H_RGB_SFLOAT", block16, RGB_F16, false, 144, 0x8E8E, 96},
	BPTC_BC7_RGBA_U8_NORM:  {"BPTC_BC7_RGBA_U8_NORM", block16, RGBA_U8_NORM, false, 145, 0x8E8C, 98},
	BPTC_BC7_SRGBA_U8_NORM: {"BPTC_BC7_SRGBA_U8_NORM", block16, SRGBA_U8_NORM, false, 146, 0x8E8D, 99},

	ASTC_4x4_RGBA:    astc("ASTC_4x4_RGBA", 4, 4, RGBA_F16, 157, 0x93B0),
	ASTC_4x4_SRGBA:   astc("ASTC_4x4_SRGBA", 4, 4, SRGBA_U8_NORM, 158, 0x93D0),
	ASTC_5x4_RGBA:    astc("ASTC_5x4_RGBA", 5, 4, RGBA_F16, 159, 0x93B1),
	ASTC_5x4_SRGBA:   astc("ASTC_5x4_SRGBA", 5, 4, SRGBA_U8_NORM, 160, 0x93D1),
	ASTC_5x5_RGBA:    astc("ASTC_5x5_RGBA", 5, 5, RGBA_F16, 161, 0x93B2),
	ASTC_5x5_SRGBA:   astc("ASTC_5x5_SRGBA", 5, 5, SRGBA_U8_NORM, 162, 0x93D2),
	ASTC_6x5_RGBA:    astc("ASTC_6x5_RGBA", 6, 5, RGBA_F16, 163, 0x93B3),
	ASTC_6x5_SRGBA:   astc("ASTC_6x5_SRGBA", 6, 5, SRGBA_U8_NORM, 164, 0x93D3),
	ASTC_6x6_RGBA:    astc("ASTC_6x6_RGBA", 6, 6, RGBA_F16, 165, 0x93B4),
	ASTC_6x6_SRGBA:   astc("ASTC_6x6_SRGBA", 6, 6, SRGBA_U8_NORM, 166, 0x93D4),
	ASTC_8x5_RGBA:    astc("ASTC_8x5_RGBA", 8, 5, RGBA_F16, 167, 0x93B5),
	ASTC_8x5_SRGBA:   astc("ASTC_8x5_SRGBA", 8, 5, SRGBA_U8_NORM, 168, 0x93D5),
	ASTC_8x6_RGBA:    astc("ASTC_8x6_RGBA", 8, 6, RGBA_F16, 169, 0x93B6),
	ASTC_8x6_SRGBA:   astc("ASTC_8x6_SRGBA", 8, 6, SRGBA_U8_NORM, 170, 0x93D6),
	ASTC_8x8_RGBA:    astc("ASTC_8x8_RGBA", 8, 8, RGBA_F16, 171, 0x93B7),
	ASTC_8x8_SRGBA:   astc("ASTC_8x8_SRGBA", 8, 8, SRGBA_U8_NORM, 172, 0x93D7),
	ASTC_10x5_RGBA:   astc("ASTC_10x5_RGBA", 10, 5, RGBA_F16, 173, 0x93B8),
	ASTC_10x5_SRGBA:  astc("ASTC_10x5_SRGBA", 10, 5, SRGBA_U8_NORM, 174, 0x93D8),
	ASTC_10x6_RGBA:   astc("ASTC_10x6_RGBA", 10, 6, RGBA_F16, 175, 0x93B9),
	ASTC_10x6_SRGBA:  astc("ASTC_10x6_SRGBA", 10, 6, SRGBA_U8_NORM, 176, 0x93D9),
	ASTC_10x8_RGBA:   astc("ASTC_10x8_RGBA", 10, 8, RGBA_F16, 177, 0x93BA),
	ASTC_10x8_SRGBA:  astc("ASTC_10x8_SRGBA", 10, 8, SRGBA_U8_NORM, 178, 0x93DA),
	ASTC_10x10_RGBA:  astc("ASTC_10x10_RGBA", 10, 10, RGBA_F16, 179, 0x93BB),
	ASTC_10x10_SRGBA: astc("ASTC_10x10_SRGBA", 10, 10, SRGBA_U8_NORM, 180, 0x93DB),
	ASTC_12x10_RGBA:  astc("ASTC_12x10_RGBA", 12, 10, RGBA_F16, 181, 0x93BC),
	ASTC_12x10_SRGBA: astc("ASTC_12x10_SRGBA", 12, 10, SRGBA_U8_NORM, 182, 0x93DC),
	ASTC_12x12_RGBA:  astc("ASTC_12x12_RGBA", 12, 12, RGBA_F16, 183, 0x93BD),
	ASTC_12x12_SRGBA: astc("ASTC_12x12_SRGBA", 12, 12, SRGBA_U8_NORM, 184, 0x93DD),

	// Four 10-bit pixels share a fifth byte of low bits; two 12-bit pixels
	// share a third.
	RAW10: {"RAW10", Footprint{4, 1, 1, 5}, R_U16_NORM, true, 0, 0, 0},
	RAW12: {"RAW12", Footprint{2, 1, 1, 3}, R_U16_NORM, true, 0, 0, 0},
}

func (f Format) info() formatInfo {
	if f >= formatCount {
		return formats[FormatUnknown]
	}
	return formats[f]
}

func (f Format) String() string {
	if f >= formatCount {
		return fmt.Sprintf("Format(%d)", uint16(f))
	}
	return f.info().name
}

// Valid returns true if f is a known format.
func (f Format) Valid() bool { return f > FormatUnknown && f < formatCount }

// Footprint returns the block footprint of the format.
func (f Format) Footprint() Footprint { return f.info().footprint }

// Layout returns the canonical uncompressed layout the format decodes to.
func (f Format) Layout() Layout { return f.info().layout }

// External returns true if decoding the format requires a decoder installed
// with RegisterExternal.
func (f Format) External() bool { return f.info().external }

// VkFormat returns the Vulkan format enumerant, or 0 if there is none.
func (f Format) VkFormat() uint32 { return f.info().vk }

// GLInternalFormat returns the OpenGL internal format enumerant, or 0.
func (f Format) GLInternalFormat() uint32 { return f.info().gl }

// DXGIFormat returns the DXGI_FORMAT enumerant, or 0.
func (f Format) DXGIFormat() uint32 { return f.info().dxgi }

// Size returns the number of packed bytes of an image of the given extent.
func (f Format) Size(width, height, depth int) int {
	fp := f.Footprint()
	bx, by, bz := fp.Blocks(width, height, depth)
	return bx * by * bz * fp.Bytes
}

// Formats returns every known format in declaration order.
func Formats() []Format {
	out := make([]Format, 0, formatCount-1)
	for f := Format(1); f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}

// FormatByName returns the format with the given name, ignoring case.
func FormatByName(name string) (Format, bool) {
	for _, f := range Formats() {
		if strings.EqualFold(f.String(), name) {
			return f, true
		}
	}
	return FormatUnknown, false
}

func formatBy(get func(formatInfo) uint32, v uint32) (Format, bool) {
	if v == 0 {
		return FormatUnknown, false
	}
	for f := Format(1); f < formatCount; f++ {
		if get(formats[f]) == v {
			return f, true
		}
	}
	return FormatUnknown, false
}

// FormatFromVk returns the format with the given VkFormat enumerant.
func FormatFromVk(vk uint32) (Format, bool) {
	return formatBy(func(i formatInfo) uint32 { return i.vk }, vk)
}

// FormatFromGL returns the format with the given GL internal format.
func FormatFromGL(gl uint32) (Format, bool) {
	return formatBy(func(i formatInfo) uint32 { return i.gl }, gl)
}

// FormatFromDXGI returns the format with the given DXGI_FORMAT enumerant.
func FormatFromDXGI(dxgi uint32) (Format, bool) {
	return formatBy(func(i formatInfo) uint32 { return i.dxgi }, dxgi)
}
