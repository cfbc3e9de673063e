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
	"io"

	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/binary"
	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/image"
)

const (
	ktxLittleEndian = 0x04030201
	ktxBigEndian    = 0x01020304
)

// ktxHeader is the fixed part of a KTX 1.1 file following the identifier and
// endianness marker.
type ktxHeader struct {
	glType, glTypeSize, glFormat       uint32
	glInternalFormat, glBaseFormat     uint32
	width, height, depth               uint32
	arrayElements, faces, mipmapLevels uint32
	keyValueBytes                      uint32
}

func (h *ktxHeader) read(r binary.Reader) {
	for _, p := range []*uint32{
		&h.glType, &h.glTypeSize, &h.glFormat,
		&h.glInternalFormat, &h.glBaseFormat,
		&h.width, &h.height, &h.depth,
		&h.arrayElements, &h.faces, &h.mipmapLevels,
		&h.keyValueBytes,
	} {
		*p = r.Uint32()
	}
}

// LoadKTX reads a KTX 1.1 file. Both byte orders are accepted. The result is
// the first mip level of the first array element and face.
func LoadKTX(in io.Reader) (*image.CompressedTexture, error) {
	var prefix [16]byte
	if _, err := io.ReadFull(in, prefix[:]); err != nil {
		return nil, errors.Wrap(err, "reading KTX identifier")
	}
	if [12]byte(prefix[:12]) != ktxIdentifier {
		return nil, errors.Wrapf(ErrBadHeader, "KTX identifier % x", prefix[:12])
	}
	var order eb.ByteOrder
	switch v := eb.LittleEndian.Uint32(prefix[12:]); v {
	case ktxLittleEndian:
		order = eb.LittleEndian
	case ktxBigEndian:
		order = eb.BigEndian
	default:
		return nil, errors.Wrapf(ErrBadHeader, "KTX endianness 0x%08x", v)
	}
	r := endian.Reader(in, order)

	var h ktxHeader
	h.read(r)

	// Each key/value pair is length prefixed and padded to four bytes.
	for offset := uint32(0); offset < h.keyValueBytes && r.Error() == nil; {
		size := r.Uint32()
		pad := 3 - (size+3)%4
		r.Skip(int64(size + pad))
		offset += 4 + size + pad
	}
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading KTX header")
	}

	if h.glTypeSize != 1 || h.glType != 0 {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "KTX holds uncompressed data (glType 0x%x)", h.glType)
	}
	f, ok := image.FormatFromGL(h.glInternalFormat)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "glInternalFormat 0x%x", h.glInternalFormat)
	}
	width, height, depth := orOne(h.width), orOne(h.height), orOne(h.depth)
	if h.width == 0 {
		return nil, errors.Wrapf(ErrBadHeader, "KTX width 0")
	}

	// For non-array cube maps imageSize counts a single face, otherwise the
	// whole level. Either way the first face of the first element leads.
	imageSize := r.Uint32()
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading KTX image size")
	}
	size, err := levelSize(f, width, height, depth)
	if err != nil {
		return nil, err
	}
	if int64(imageSize) < int64(size) {
		return nil, errors.Wrapf(image.ErrSourceSize, "KTX level 0 has %d bytes, %v %dx%dx%d needs %d",
			imageSize, f, width, height, depth, size)
	}
	data := make([]byte, size)
	r.Data(data)
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "reading KTX level 0")
	}
	return texture(f, width, height, depth, data)
}

// WriteKTX writes t as a single level KTX 1.1 file in little-endian order.
func WriteKTX(out io.Writer, t *image.CompressedTexture) error {
	gl := t.Format.GLInternalFormat()
	if gl == 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "%v has no GL internal format", t.Format)
	}
	w := endian.Writer(out, eb.LittleEndian)
	w.Data(ktxIdentifier[:])
	w.Uint32(ktxLittleEndian)
	depth := uint32(t.Depth)
	if depth == 1 {
		depth = 0
	}
	h := ktxHeader{
		glTypeSize:       1,
		glInternalFormat: gl,
		width:            uint32(t.Width),
		height:           uint32(t.Height),
		depth:            depth,
		faces:            1,
		mipmapLevels:     1,
	}
	for _, v := range []uint32{
		h.glType, h.glTypeSize, h.glFormat,
		h.glInternalFormat, h.glBaseFormat,
		h.width, h.height, h.depth,
		h.arrayElements, h.faces, h.mipmapLevels,
		h.keyValueBytes,
	} {
		w.Uint32(v)
	}
	w.Uint32(uint32(len(t.Bytes)))
	w.Data(t.Bytes)
	return errors.Wrap(w.Error(), "writing KTX")
}
