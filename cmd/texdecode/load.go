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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/google/texdecode/core/fault"
	"github.com/google/texdecode/core/image"
	"github.com/google/texdecode/core/image/container"
	"github.com/google/texdecode/core/log"
)

// inputFlags select how a texture file is read. Container files describe
// themselves; raw block dumps need the format and extent on the command line.
type inputFlags struct {
	format string
	size   string
	lz4    bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.format, "format", "", "Format of a raw block dump (see the formats command)")
	fl.StringVar(&f.size, "size", "", "Extent of a raw block dump as WxH or WxHxD")
	fl.BoolVar(&f.lz4, "lz4", false, "The raw block dump is an LZ4 frame")
}

func parseSize(s string) (w, h, d int, err error) {
	d = 1
	if n, _ := fmt.Sscanf(s, "%dx%dx%d", &w, &h, &d); n < 2 {
		return 0, 0, 0, errors.Errorf("invalid size %q, want WxH or WxHxD", s)
	}
	if w <= 0 || h <= 0 || d <= 0 {
		return 0, 0, 0, errors.Errorf("invalid size %q", s)
	}
	return w, h, d, nil
}

// load reads the texture at path ("-" reads stdin) and returns it with the
// name of its container.
func (f *inputFlags) load(ctx context.Context, path string) (*image.CompressedTexture, string, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, "", errors.Wrap(err, "opening input")
		}
		defer file.Close()
		in = file
	}

	if f.format == "" {
		t, kind, err := container.Load(ctx, in)
		return t, kind.String(), err
	}

	format, ok := image.FormatByName(f.format)
	if !ok {
		return nil, "", errors.Errorf("unknown format %q", f.format)
	}
	w, h, d, err := parseSize(f.size)
	if err != nil {
		return nil, "", err
	}
	if f.lz4 {
		t, err := container.LoadLZ4(in, format, w, h, d)
		return t, "LZ4", err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, "", errors.Wrap(err, "reading input")
	}
	t := &image.CompressedTexture{Format: format, Width: w, Height: h, Depth: d, Bytes: data}
	if err := t.Check(); err != nil {
		return nil, "", err
	}
	log.D(ctx, "Read %d raw bytes", len(data))
	return t, "raw", nil
}

// decode decompresses t using the --jobs setting.
func decode(ctx context.Context, cmd *cobra.Command, t *image.CompressedTexture) (*image.PixelBuffer, error) {
	if !image.HasDecoder(t.Format) {
		return nil, errors.Wrapf(image.ErrNoDecoder, "%v", t.Format)
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	log.D(ctx, "Decoding %v with %d jobs", t, jobs)
	var out *image.PixelBuffer
	err := fault.Catch(func() { out = t.DecompressParallel(jobs) })
	return out, err
}

// writeImage encodes slice z of b as BMP when path ends in .bmp and as PNG
// otherwise.
func writeImage(path string, b *image.PixelBuffer, z int) error {
	buf := &bytes.Buffer{}
	encode := image.EncodePNG
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		encode = image.EncodeBMP
	}
	if err := encode(buf, b, z); err != nil {
		return err
	}
	if path == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0o644), "writing output")
}
