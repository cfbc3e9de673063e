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

import "fmt"

// Layout is an uncompressed pixel layout. Every compressed Format decodes to
// exactly one canonical Layout. Multi-byte channels are little endian.
type Layout uint8

const (
	LayoutUnknown Layout = iota
	R_U8_NORM
	R_S8_NORM
	RG_U8_NORM
	RG_S8_NORM
	RGB_U8_NORM
	SRGB_U8_NORM
	RGBA_U8_NORM
	SRGBA_U8_NORM
	R_U16_NORM
	R_S16_NORM
	RG_U16_NORM
	RG_S16_NORM
	RGB_F16
	RGBA_F16
	RGBA_F32
	layoutCount
)

// ChannelType is the storage type of every channel of a Layout.
type ChannelType uint8

const (
	UNorm ChannelType = iota
	SNorm
	Float
)

type layoutInfo struct {
	name     string
	channels int
	bytes    int // per channel
	kind     ChannelType
	srgb     bool
}

var layouts = [layoutCount]layoutInfo{
	LayoutUnknown: {"<unknown>", 0, 0, UNorm, false},
	R_U8_NORM:     {"R_U8_NORM", 1, 1, UNorm, false},
	R_S8_NORM:     {"R_S8_NORM", 1, 1, SNorm, false},
	RG_U8_NORM:    {"RG_U8_NORM", 2, 1, UNorm, false},
	RG_S8_NORM:    {"RG_S8_NORM", 2, 1, SNorm, false},
	RGB_U8_NORM:   {"RGB_U8_NORM", 3, 1, UNorm, false},
	SRGB_U8_NORM:  {"SRGB_U8_NORM", 3, 1, UNorm, true},
	RGBA_U8_NORM:  {"RGBA_U8_NORM", 4, 1, UNorm, false},
	SRGBA_U8_NORM: {"SRGBA_U8_NORM", 4, 1, UNorm, true},
	R_U16_NORM:    {"R_U16_NORM", 1, 2, UNorm, false},
	R_S16_NORM:    {"R_S16_NORM", 1, 2, SNorm, false},
	RG_U16_NORM:   {"RG_U16_NORM", 2, 2, UNorm, false},
	RG_S16_NORM:   {"RG_S16_NORM", 2, 2, SNorm, false},
	RGB_F16:       {"RGB_F16", 3, 2, Float, false},
	RGBA_F16:      {"RGBA_F16", 4, 2, Float, false},
	RGBA_F32:      {"RGBA_F32", 4, 4, Float, false},
}

func (l Layout) info() layoutInfo {
	if l >= layoutCount {
		return layouts[LayoutUnknown]
	}
	return layouts[l]
}

func (l Layout) String() string {
	if l >= layoutCount {
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
	return l.info().name
}

// Channels returns the number of channels in a pixel.
func (l Layout) Channels() int { return l.info().channels }

// ChannelSize returns the size in bytes of a single channel.
func (l Layout) ChannelSize() int { return l.info().bytes }

// ChannelType returns the storage type of the channels.
func (l Layout) ChannelType() ChannelType { return l.info().kind }

// SRGB returns true if the colour channels hold sRGB encoded values.
func (l Layout) SRGB() bool { return l.info().srgb }

// PixelSize returns the size in bytes of a single pixel.
func (l Layout) PixelSize() int { return l.Channels() * l.ChannelSize() }

// Size returns the number of bytes required to hold an image of the given
// extent.
func (l Layout) Size(width, height, depth int) int {
	return l.PixelSize() * width * height * depth
}

// PixelBuffer is an uncompressed image in a Layout, stored x-fastest, then y,
// then z with no row padding.
type PixelBuffer struct {
	Layout Layout
	Width  int
	Height int
	Depth  int
	Data   []byte
}

// NewPixelBuffer returns a zero-filled buffer of the given layout and extent.
func NewPixelBuffer(l Layout, width, height, depth int) *PixelBuffer {
	return &PixelBuffer{
		Layout: l,
		Width:  width,
		Height: height,
		Depth:  depth,
		Data:   make([]byte, l.Size(width, height, depth)),
	}
}

// Offset returns the byte offset of the pixel at (x, y, z).
func (b *PixelBuffer) Offset(x, y, z int) int {
	return ((z*b.Height+y)*b.Width + x) * b.Layout.PixelSize()
}

// Pixel returns the bytes of the pixel at (x, y, z).
func (b *PixelBuffer) Pixel(x, y, z int) []byte {
	o := b.Offset(x, y, z)
	return b.Data[o : o+b.Layout.PixelSize()]
}

// Convert returns a copy of b converted to the layout to.
func (b *PixelBuffer) Convert(to Layout) (*PixelBuffer, error) {
	data, err := Convert(b.Data, b.Width, b.Height, b.Depth, b.Layout, to)
	if err != nil {
		return nil, err
	}
	return &PixelBuffer{Layout: to, Width: b.Width, Height: b.Height, Depth: b.Depth, Data: data}, nil
}

func (b *PixelBuffer) String() string {
	return fmt.Sprintf("%v %dx%dx%d", b.Layout, b.Width, b.Height, b.Depth)
}
