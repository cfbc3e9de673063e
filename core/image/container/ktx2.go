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

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/image"
)

// KTX 2.0 supercompression schemes.
const (
	SupercompressionNone  = 0
	SupercompressionBasis = 1
	SupercompressionZstd  = 2
	SupercompressionZlib  = 3
)

type ktx2Header struct {
	vkFormat         uint32
	typeSize         uint32
	width            uint32
	height           uint32
	depth            uint32
	layers           uint32
	faces            uint32
	levels           uint32
	supercompression uint32
}

type ktx2Level struct {
	offset, length, uncompressed uint64
}

// LoadKTX2 reads a KTX 2.0 file, inflating level 0 when it is Zstandard
// supercompressed.
func LoadKTX2(in io.Reader) (*image.CompressedTexture, error) {
	r := endian.Reader(in, eb.LittleEndian)
	var ident [12]byte
	r.Data(ident[:])
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading KTX2 identifier")
	}
	if ident != ktx2Identifier {
		return nil, errors.Wrapf(ErrBadHeader, "KTX2 identifier % x", ident)
	}

	var h ktx2Header
	for _, p := range []*uint32{
		&h.vkFormat, &h.typeSize, &h.width, &h.height, &h.depth,
		&h.layers, &h.faces, &h.levels, &h.supercompression,
	} {
		*p = r.Uint32()
	}
	// dfdByteOffset, dfdByteLength, kvdByteOffset, kvdByteLength,
	// sgdByteOffset, sgdByteLength.
	r.Skip(4 * 4)
	r.Skip(2 * 8)

	levels := make([]ktx2Level, orOne(h.levels))
	for i := range levels {
		levels[i] = ktx2Level{r.Uint64(), r.Uint64(), r.Uint64()}
	}
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading KTX2 header")
	}

	f, ok := image.FormatFromVk(h.vkFormat)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "vkFormat %d", h.vkFormat)
	}
	if h.width == 0 {
		return nil, errors.Wrapf(ErrBadHeader, "KTX2 width 0")
	}

	level := levels[0]
	skip := int64(level.offset) - r.Offset()
	if skip < 0 {
		return nil, errors.Wrapf(ErrBadHeader, "KTX2 level 0 at offset %d overlaps the header", level.offset)
	}
	r.Skip(skip)
	if level.length > maxLevelBytes || level.uncompressed > maxLevelBytes {
		return nil, errors.Wrapf(ErrBadHeader, "KTX2 level 0 is %d bytes", level.length)
	}
	data := make([]byte, level.length)
	r.Data(data)
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading KTX2 level 0")
	}

	switch h.supercompression {
	case SupercompressionNone:
	case SupercompressionZstd:
		var err error
		if data, err = inflateZstd(data, int(level.uncompressed)); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "KTX2 supercompression scheme %d", h.supercompression)
	}
	return texture(f, orOne(h.width), orOne(h.height), orOne(h.depth), data)
}

func inflateZstd(data []byte, size int) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating zstd decoder")
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, errors.Wrap(err, "inflating KTX2 level 0")
	}
	if len(out) != size {
		return nil, errors.Wrapf(ErrBadHeader, "KTX2 level 0 inflated to %d bytes, header says %d", len(out), size)
	}
	return out, nil
}

// WriteKTX2 writes t as a single level KTX 2.0 file. When supercompression is
// SupercompressionZstd the level is compressed with Zstandard.
func WriteKTX2(out io.Writer, t *image.CompressedTexture, supercompression uint32) error {
	vk := t.Format.VkFormat()
	if vk == 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "%v has no Vulkan format", t.Format)
	}
	payload := t.Bytes
	switch supercompression {
	case SupercompressionNone:
	case SupercompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.Wrap(err, "creating zstd encoder")
		}
		payload = enc.EncodeAll(t.Bytes, nil)
		enc.Close()
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "KTX2 supercompression scheme %d", supercompression)
	}

	// identifier, 9 header words, index and one level entry.
	const headerBytes = 12 + 9*4 + 4*4 + 2*8 + 3*8
	depth := uint32(t.Depth)
	if depth == 1 {
		depth = 0
	}
	w := endian.Writer(out, eb.LittleEndian)
	w.Data(ktx2Identifier[:])
	for _, v := range []uint32{vk, 1, uint32(t.Width), uint32(t.Height), depth, 0, 1, 1, supercompression} {
		w.Uint32(v)
	}
	for i := 0; i < 4; i++ {
		w.Uint32(0)
	}
	w.Uint64(0)
	w.Uint64(0)
	w.Uint64(headerBytes)
	w.Uint64(uint64(len(payload)))
	w.Uint64(uint64(len(t.Bytes)))
	w.Data(payload)
	return errors.Wrap(w.Error(), "writing KTX2")
}
