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
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"github.com/google/texdecode/core/image"
)

// LoadLZ4 reads an LZ4 frame holding the packed blocks of a texture with the
// given format and extent. Raw dumps carry no header, so the caller supplies
// both.
func LoadLZ4(in io.Reader, f image.Format, width, height, depth int) (*image.CompressedTexture, error) {
	if !f.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%v", f)
	}
	size, err := levelSize(f, width, height, depth)
	if err != nil {
		return nil, err
	}
	t := &image.CompressedTexture{Format: f, Width: width, Height: height, Depth: depth}
	t.Bytes = make([]byte, size)
	if _, err := io.ReadFull(lz4.NewReader(in), t.Bytes); err != nil {
		return nil, errors.Wrapf(err, "inflating %v from LZ4", t)
	}
	return t, nil
}

// WriteLZ4 writes the packed blocks of t as a single LZ4 frame.
func WriteLZ4(out io.Writer, t *image.CompressedTexture) error {
	zw := lz4.NewWriter(out)
	if _, err := zw.Write(t.Bytes); err != nil {
		return errors.Wrap(err, "compressing LZ4")
	}
	return errors.Wrap(zw.Close(), "closing LZ4 frame")
}
