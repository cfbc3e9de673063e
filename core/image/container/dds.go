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

package container

import (
	eb "encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/image"
)

const (
	ddsHeaderSize      = 124
	ddsPixelFormatSize = 32

	ddsFlagsCaps        = 0x1
	ddsFlagsHeight      = 0x2
	ddsFlagsWidth       = 0x4
	ddsFlagsPixelFormat = 0x1000
	ddsFlagsLinearSize  = 0x80000
	ddsFlagsDepth       = 0x800000

	ddsCapsTexture = 0x1000
	ddsCaps2Volume = 0x200000

	ddsPixelFourCC = 0x4

	ddsDimensionTexture2D = 3
	ddsDimensionTexture3D = 4
)

func fourCC(s string) uint32 { return eb.LittleEndian.Uint32([]byte(s)) }

var ddsDX10 = fourCC("DX10")

// ddsFourCC maps the legacy pixel format codes to formats. DXT1 is read with
// its punch-through alpha.
var ddsFourCC = map[uint32]image.Format{
	fourCC("DXT1"): image.S3_DXT1_RGBA,
	fourCC("DXT2"): image.S3_DXT3_RGBA,
	fourCC("DXT3"): image.S3_DXT3_RGBA,
	fourCC("DXT4"): image.S3_DXT5_RGBA,
	fourCC("DXT5"): image.S3_DXT5_RGBA,
	fourCC("ATI1"): image.RGTC1_BC4_R_U8_NORM,
	fourCC("BC4U"): image.RGTC1_BC4_R_U8_NORM,
	fourCC("BC4S"): image.RGTC1_BC4_R_S8_NORM,
	fourCC("ATI2"): image.RGTC2_BC5_RG_U8_NORM,
	fourCC("BC5U"): image.RGTC2_BC5_RG_U8_NORM,
	fourCC("BC5S"): image.RGTC2_BC5_RG_S8_NORM,
}

// LoadDDS reads a DDS file with either a legacy FourCC pixel format or the
// DX10 extension header.
func LoadDDS(in io.Reader) (*image.CompressedTexture, error) {
	r := endian.Reader(in, eb.LittleEndian)
	var magic [4]byte
	r.Data(magic[:])
	if string(magic[:]) != string(ddsMagic) {
		return nil, errors.Wrapf(ErrBadHeader, "DDS magic % x", magic)
	}
	if size := r.Uint32(); size != ddsHeaderSize {
		return nil, errors.Wrapf(ErrBadHeader, "DDS header size %d", size)
	}
	flags := r.Uint32()
	height := r.Uint32()
	width := r.Uint32()
	r.Uint32() // pitchOrLinearSize
	depth := r.Uint32()
	r.Uint32() // mipMapCount
	r.Skip(11 * 4)

	if size := r.Uint32(); size != ddsPixelFormatSize {
		return nil, errors.Wrapf(ErrBadHeader, "DDS pixel format size %d", size)
	}
	pfFlags := r.Uint32()
	code := r.Uint32()
	r.Skip(5 * 4) // rgbBitCount and the four channel masks
	r.Skip(5 * 4) // caps, caps2-4 and reserved2
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading DDS header")
	}
	if pfFlags&ddsPixelFourCC == 0 {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "DDS pixel format is uncompressed (flags 0x%x)", pfFlags)
	}
	if flags&ddsFlagsDepth == 0 {
		depth = 0
	}

	var f image.Format
	if code == ddsDX10 {
		dxgi := r.Uint32()
		r.Uint32() // resourceDimension
		r.Uint32() // miscFlag
		r.Uint32() // arraySize
		r.Uint32() // miscFlags2
		if err := r.Error(); err != nil {
			return nil, errors.Wrap(err, "reading DDS DX10 header")
		}
		var ok bool
		if f, ok = image.FormatFromDXGI(dxgi); !ok {
			return nil, errors.Wrapf(ErrUnsupportedFormat, "DXGI format %d", dxgi)
		}
	} else {
		var ok bool
		if f, ok = ddsFourCC[code]; !ok {
			return nil, errors.Wrapf(ErrUnsupportedFormat, "DDS FourCC %q", magicString(code))
		}
	}

	if width == 0 {
		return nil, errors.Wrapf(ErrBadHeader, "DDS width 0")
	}
	size, err := levelSize(f, orOne(width), orOne(height), orOne(depth))
	if err != nil {
		return nil, err
	}
	data := make([]byte, size)
	r.Data(data)
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading DDS surface")
	}
	return texture(f, orOne(width), orOne(height), orOne(depth), data)
}

func magicString(v uint32) string {
	var b [4]byte
	eb.LittleEndian.PutUint32(b[:], v)
	return string(b[:])
}

// WriteDDS writes t as a single level DDS file with the DX10 extension
// header.
func WriteDDS(out io.Writer, t *image.CompressedTexture) error {
	dxgi := t.Format.DXGIFormat()
	if dxgi == 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "%v has no DXGI format", t.Format)
	}
	flags := uint32(ddsFlagsCaps | ddsFlagsHeight | ddsFlagsWidth | ddsFlagsPixelFormat | ddsFlagsLinearSize)
	caps2, depth, dimension := uint32(0), uint32(0), uint32(ddsDimensionTexture2D)
	if t.Depth > 1 {
		flags |= ddsFlagsDepth
		caps2 = ddsCaps2Volume
		depth = uint32(t.Depth)
		dimension = ddsDimensionTexture3D
	}

	w := endian.Writer(out, eb.LittleEndian)
	w.Data(ddsMagic)
	w.Uint32(ddsHeaderSize)
	w.Uint32(flags)
	w.Uint32(uint32(t.Height))
	w.Uint32(uint32(t.Width))
	w.Uint32(uint32(len(t.Bytes)))
	w.Uint32(depth)
	w.Uint32(1) // mipMapCount
	w.Data(make([]byte, 11*4))

	w.Uint32(ddsPixelFormatSize)
	w.Uint32(ddsPixelFourCC)
	w.Uint32(ddsDX10)
	w.Data(make([]byte, 5*4))

	w.Uint32(ddsCapsTexture)
	w.Uint32(caps2)
	w.Data(make([]byte, 3*4))

	w.Uint32(dxgi)
	w.Uint32(dimension)
	w.Uint32(0) // miscFlag
	w.Uint32(1) // arraySize
	w.Uint32(0) // miscFlags2

	w.Data(t.Bytes)
	return errors.Wrap(w.Error(), "writing DDS")
}
