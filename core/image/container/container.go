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

// Package container reads compressed textures out of the file formats that
// carry them: KTX 1.1, KTX 2.0, DDS and .astc files, plus LZ4 framed raw
// block dumps.
//
// Every loader returns the top mip level of the first layer and face as an
// image.CompressedTexture.
package container

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/google/texdecode/core/fault"
	"github.com/google/texdecode/core/image"
	"github.com/google/texdecode/core/log"
)

const (
	ErrUnknownContainer  = fault.Const("unrecognised texture container")
	ErrUnsupportedFormat = fault.Const("unsupported texture format")
	ErrBadHeader         = fault.Const("malformed container header")
)

// Kind identifies a container file format.
type Kind int

const (
	Unknown Kind = iota
	KTX
	KTX2
	DDS
	ASTC
)

func (k Kind) String() string {
	switch k {
	case KTX:
		return "KTX"
	case KTX2:
		return "KTX2"
	case DDS:
		return "DDS"
	case ASTC:
		return "ASTC"
	default:
		return "unknown"
	}
}

var (
	ktxIdentifier  = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}
	ktx2Identifier = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x32, 0x30, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}
	ddsMagic       = []byte("DDS ")
	astcMagic      = []byte{0x13, 0xAB, 0xA1, 0x5C}
)

// Sniff returns the container kind that head starts with. head should hold at
// least the first 12 bytes of the file.
func Sniff(head []byte) Kind {
	switch {
	case bytes.HasPrefix(head, ktxIdentifier[:]):
		return KTX
	case bytes.HasPrefix(head, ktx2Identifier[:]):
		return KTX2
	case bytes.HasPrefix(head, ddsMagic):
		return DDS
	case bytes.HasPrefix(head, astcMagic):
		return ASTC
	}
	return Unknown
}

// Load detects the container kind of r and loads the texture it holds.
func Load(ctx context.Context, r io.Reader) (*image.CompressedTexture, Kind, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(ktxIdentifier))
	if err != nil && err != io.EOF {
		return nil, Unknown, errors.Wrap(err, "reading container header")
	}
	kind := Sniff(head)
	var t *image.CompressedTexture
	switch kind {
	case KTX:
		t, err = LoadKTX(br)
	case KTX2:
		t, err = LoadKTX2(br)
	case DDS:
		t, err = LoadDDS(br)
	case ASTC:
		t, err = LoadASTC(br)
	default:
		return nil, Unknown, errors.Wrapf(ErrUnknownContainer, "header % x", head)
	}
	if err != nil {
		return nil, kind, log.Errf(ctx, err, "loading %v", kind)
	}
	log.D(ctx, "Loaded %v from %v container", t, kind)
	return t, kind, nil
}

// maxLevelBytes bounds the allocation for a single level read from a header.
const maxLevelBytes = 1 << 31

// levelSize returns the byte size of a width x height x depth level of f. The
// block counts come from untrusted headers, so each factor is checked against
// maxLevelBytes before it is multiplied in.
func levelSize(f image.Format, width, height, depth int) (int, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return 0, errors.Wrapf(ErrBadHeader, "extent %dx%dx%d", width, height, depth)
	}
	fp := f.Footprint()
	bx, by, bz := fp.Blocks(width, height, depth)
	size := fp.Bytes
	for _, n := range []int{bx, by, bz} {
		if n > maxLevelBytes/size {
			return 0, errors.Wrapf(ErrBadHeader, "%v level of %dx%dx%d exceeds %d bytes", f, width, height, depth, maxLevelBytes)
		}
		size *= n
	}
	return size, nil
}

// texture builds the result of a loader, copying the first size bytes of data
// so that the rest of the payload can be released.
func texture(f image.Format, width, height, depth int, data []byte) (*image.CompressedTexture, error) {
	t := &image.CompressedTexture{Format: f, Width: width, Height: height, Depth: depth}
	size, err := levelSize(f, width, height, depth)
	if err != nil {
		return nil, err
	}
	if len(data) < size {
		return nil, errors.Wrapf(image.ErrSourceSize, "%v needs %d bytes, container holds %d", t, size, len(data))
	}
	t.Bytes = append([]byte(nil), data[:size]...)
	return t, nil
}

// orOne maps the zero extent that containers use for unused dimensions to 1.
func orOne(v uint32) int {
	if v == 0 {
		return 1
	}
	return int(v)
}
