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
	"bytes"
	eb "encoding/binary"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/math/f16"
)

// Converter is used to convert the image formed from the parameters data,
// width, height and depth into another layout. If the conversion succeeds
// then the converted image data is returned, otherwise an error is returned.
type Converter func(data []byte, width, height, depth int) ([]byte, error)

type srcDstLayout struct{ src, dst Layout }

var registeredConverters = make(map[srcDstLayout]Converter)

// RegisterConverter registers the Converter for converting from src to dst
// layouts. If a converter already exists for converting from src to dst, then
// this function panics.
func RegisterConverter(src, dst Layout, c Converter) {
	key := srcDstLayout{src, dst}
	if _, found := registeredConverters[key]; found {
		panic(fmt.Errorf("Converter from %s to %s already registered", src, dst))
	}
	registeredConverters[key] = c
}

// Convert uses the registered Converters to convert the image formed from
// data, width, height and depth from src to dst.
// If no direct converter has been registered to convert from src to dst,
// then Convert tries converting via RGBA_F32.
func Convert(data []byte, width, height, depth int, src, dst Layout) ([]byte, error) {
	if src == dst {
		return data, nil // No conversion required.
	}
	if expected := src.Size(width, height, depth); len(data) != expected {
		return nil, errors.Errorf("Source data of layout %v is invalid: got %d bytes, expected %d",
			src, len(data), expected)
	}
	if conv, found := registeredConverters[srcDstLayout{src, dst}]; found {
		return conv(data, width, height, depth)
	}
	convA, okA := registeredConverters[srcDstLayout{src, RGBA_F32}]
	convB, okB := registeredConverters[srcDstLayout{RGBA_F32, dst}]
	if okA && okB {
		data, err := convA(data, width, height, depth)
		if err != nil {
			return nil, err
		}
		return convB(data, width, height, depth)
	}
	return nil, errors.Errorf("No converter registered that can convert from layout '%v' to '%v'", src, dst)
}

// channel returns the normalised value of channel c of the pixel at p.
// Signed values are in [-1, 1], floats are returned unchanged.
func (l Layout) channel(p []byte, c int) float32 {
	size := l.ChannelSize()
	b := p[c*size:]
	switch l.ChannelType() {
	case UNorm:
		if size == 1 {
			return float32(b[0]) / 0xff
		}
		return float32(eb.LittleEndian.Uint16(b)) / 0xffff
	case SNorm:
		if size == 1 {
			return math32.Max(float32(int8(b[0]))/0x7f, -1)
		}
		return math32.Max(float32(int16(eb.LittleEndian.Uint16(b)))/0x7fff, -1)
	case Float:
		if size == 2 {
			return f16.Number(eb.LittleEndian.Uint16(b)).Float32()
		}
		return math32.Float32frombits(eb.LittleEndian.Uint32(b))
	}
	return 0
}

// toRGBAF32 expands every pixel to four 32-bit floats. Missing colour
// channels are zero and a missing alpha is one.
func toRGBAF32(l Layout) Converter {
	return func(data []byte, width, height, depth int) ([]byte, error) {
		count, stride, channels := width*height*depth, l.PixelSize(), l.Channels()
		buf := &bytes.Buffer{}
		buf.Grow(count * 16)
		w := endian.Writer(buf, eb.LittleEndian)
		for i := 0; i < count; i++ {
			px := data[i*stride:]
			rgba := [4]float32{0, 0, 0, 1}
			for c := 0; c < channels; c++ {
				rgba[c] = l.channel(px, c)
			}
			for _, v := range rgba {
				w.Float32(v)
			}
		}
		return buf.Bytes(), w.Error()
	}
}

// unorm8 maps v in [0, 1] to a byte, clamping values outside the range.
func unorm8(v float32) byte {
	if math32.IsNaN(v) {
		return 0
	}
	return byte(math32.Floor(math32.Min(math32.Max(v, 0), 1)*0xff + 0.5))
}

// toRGBAU8 produces 8-bit normalised RGBA. Signed channels are remapped from
// [-1, 1] to [0, 1] and floats are clamped to [0, 1]. sRGB data keeps its
// encoding.
func toRGBAU8(l Layout) Converter {
	return func(data []byte, width, height, depth int) ([]byte, error) {
		count, stride, channels := width*height*depth, l.PixelSize(), l.Channels()
		out := make([]byte, count*4)
		signed := l.ChannelType() == SNorm
		for i := 0; i < count; i++ {
			px, o := data[i*stride:], out[i*4:i*4+4]
			o[3] = 0xff
			for c := 0; c < channels; c++ {
				switch {
				case l.ChannelType() == UNorm && l.ChannelSize() == 1:
					o[c] = px[c]
				case signed:
					o[c] = unorm8((l.channel(px, c) + 1) / 2)
				default:
					o[c] = unorm8(l.channel(px, c))
				}
			}
		}
		return out, nil
	}
}

func init() {
	for i := range layouts {
		l := Layout(i)
		if l == LayoutUnknown {
			continue
		}
		if l != RGBA_F32 {
			RegisterConverter(l, RGBA_F32, toRGBAF32(l))
		}
		if l != RGBA_U8_NORM {
			RegisterConverter(l, RGBA_U8_NORM, toRGBAU8(l))
		}
	}
}
