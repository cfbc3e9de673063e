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
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/google/texdecode/core/data/endian"
)

// toNRGBA returns slice z of b as an image.NRGBA.
func toNRGBA(b *PixelBuffer, z int) (*image.NRGBA, error) {
	if z < 0 || z >= b.Depth {
		return nil, errors.Errorf("Slice %d out of range for depth %d", z, b.Depth)
	}
	rgba, err := b.Convert(RGBA_U8_NORM)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, rgba.Data[rgba.Offset(0, 0, z):])
	return img, nil
}

// EncodePNG writes slice z of b to w as a PNG.
func EncodePNG(w io.Writer, b *PixelBuffer, z int) error {
	img, err := toNRGBA(b, z)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "Encoding PNG")
}

// EncodeBMP writes slice z of b to w as a BMP.
func EncodeBMP(w io.Writer, b *PixelBuffer, z int) error {
	img, err := toNRGBA(b, z)
	if err != nil {
		return err
	}
	return errors.Wrap(bmp.Encode(w, img), "Encoding BMP")
}

// DecodePNG reads a PNG into an RGBA_U8_NORM buffer of depth 1.
func DecodePNG(r io.Reader) (*PixelBuffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "Decoding PNG")
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf := &bytes.Buffer{}
	e := endian.Writer(buf, eb.LittleEndian)
	layout := RGBA_U8_NORM
	switch img.ColorModel() {
	case color.NRGBAModel:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := img.At(x, y).(color.NRGBA)
				e.Uint8(c.R)
				e.Uint8(c.G)
				e.Uint8(c.B)
				e.Uint8(c.A)
			}
		}
	default:
		// Other colour models are read as 16-bit non-premultiplied colour.
		layout = RGBA_F32
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
				e.Float32(float32(c.R) / 0xffff)
				e.Float32(float32(c.G) / 0xffff)
				e.Float32(float32(c.B) / 0xffff)
				e.Float32(float32(c.A) / 0xffff)
			}
		}
	}
	if err := e.Error(); err != nil {
		return nil, err
	}
	out := &PixelBuffer{Layout: layout, Width: width, Height: height, Depth: 1, Data: buf.Bytes()}
	return out.Convert(RGBA_U8_NORM)
}
