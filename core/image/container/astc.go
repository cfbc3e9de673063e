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

package container

import (
	eb "encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/binary"
	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/image"
)

const astcMagicValue = 0x5ca1ab13

// astcFormat returns the ASTC format with the given block size.
func astcFormat(bw, bh int, srgb bool) (image.Format, bool) {
	suffix := "RGBA"
	if srgb {
		suffix = "SRGBA"
	}
	return image.FormatByName(fmt.Sprintf("ASTC_%dx%d_%s", bw, bh, suffix))
}

func uint24(r binary.Reader) uint32 {
	return uint32(r.Uint8()) | uint32(r.Uint8())<<8 | uint32(r.Uint8())<<16
}

// LoadASTC reads a .astc file. The file does not record the colour space, so
// the linear format is returned.
func LoadASTC(in io.Reader) (*image.CompressedTexture, error) {
	r := endian.Reader(in, eb.LittleEndian)

	if got := r.Uint32(); got != astcMagicValue {
		return nil, errors.Wrapf(ErrBadHeader, "ASTC magic 0x%x", got)
	}

	blockWidth := int(r.Uint8())
	blockHeight := int(r.Uint8())
	blockDepth := int(r.Uint8())
	width, height, depth := uint24(r), uint24(r), uint24(r)
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading ASTC header")
	}
	if blockDepth != 1 {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "ASTC block depth %d", blockDepth)
	}
	f, ok := astcFormat(blockWidth, blockHeight, false)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "ASTC block %dx%d", blockWidth, blockHeight)
	}
	if width == 0 {
		return nil, errors.Wrapf(ErrBadHeader, "ASTC width 0")
	}

	size, err := levelSize(f, int(width), orOne(height), orOne(depth))
	if err != nil {
		return nil, err
	}
	data := make([]byte, size)
	r.Data(data)
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading ASTC blocks")
	}
	return texture(f, int(width), orOne(height), orOne(depth), data)
}

// WriteASTC writes t, which must be an ASTC format, as a .astc file.
func WriteASTC(out io.Writer, t *image.CompressedTexture) error {
	fp := t.Format.Footprint()
	linear, _ := astcFormat(fp.Width, fp.Height, false)
	srgb, _ := astcFormat(fp.Width, fp.Height, true)
	if t.Format != linear && t.Format != srgb {
		return errors.Wrapf(ErrUnsupportedFormat, "%v is not ASTC", t.Format)
	}
	w := endian.Writer(out, eb.LittleEndian)
	w.Uint32(astcMagicValue)
	w.Uint8(uint8(fp.Width))
	w.Uint8(uint8(fp.Height))
	w.Uint8(uint8(fp.Depth))
	for _, v := range []int{t.Width, t.Height, t.Depth} {
		w.Uint8(uint8(v))
		w.Uint8(uint8(v >> 8))
		w.Uint8(uint8(v >> 16))
	}
	w.Data(t.Bytes)
	return errors.Wrap(w.Error(), "writing ASTC")
}
