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
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/texdecode/core/image"
	"github.com/google/texdecode/core/image/container"
)

func run(t *testing.T, args ...string) (string, error) {
	cmd := newRoot()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"--log-level", "Warning"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTexture(t *testing.T, name string, tex *image.CompressedTexture) string {
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, container.WriteKTX(f, tex))
	return path
}

func TestFormats(t *testing.T) {
	out, err := run(t, "formats", "--filter", "bc7")
	require.NoError(t, err)
	assert.Contains(t, out, "BPTC_BC7_RGBA_U8_NORM")
	assert.Contains(t, out, "BPTC_BC7_SRGBA_U8_NORM")
	assert.NotContains(t, out, "ETC1_RGB_U8_NORM")
}

func TestInfo(t *testing.T) {
	tex := image.NewCompressedTexture(image.ETC2_RGB_U8_NORM, 10, 6, 1)
	out, err := run(t, "info", writeTexture(t, "a.ktx", tex))
	require.NoError(t, err)
	assert.Contains(t, out, "Container: KTX")
	assert.Contains(t, out, "Extent:    10x6x1")
	assert.Contains(t, out, "Blocks:    3x2x1 of 8 bytes")
}

func TestDecodeAndCompare(t *testing.T) {
	tex := image.NewCompressedTexture(image.S3_DXT1_RGBA, 12, 8, 1)
	rand.New(rand.NewSource(3)).Read(tex.Bytes)
	path := writeTexture(t, "b.ktx", tex)
	png := filepath.Join(t.TempDir(), "b.png")

	_, err := run(t, "decode", path, "-o", png, "--jobs", "3")
	require.NoError(t, err)

	out, err := run(t, "compare", path, png)
	require.NoError(t, err)
	assert.Contains(t, out, "Mismatched: 0 of 96 pixels")

	other := image.NewCompressedTexture(image.S3_DXT1_RGBA, 12, 8, 1)
	for i := range other.Bytes {
		other.Bytes[i] = 0xFF
	}
	_, err = run(t, "compare", writeTexture(t, "c.ktx", other), png)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestDecodeRaw(t *testing.T) {
	// Two RAW12 pixels of full white.
	path := filepath.Join(t.TempDir(), "frame.raw")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFF, 0xFF}, 0o644))
	out := filepath.Join(t.TempDir(), "frame.bmp")
	_, err := run(t, "decode", path, "--format", "RAW12", "--size", "2x1", "-o", out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "BM", string(data[:2]))

	_, err = run(t, "decode", path, "--format", "RAW12", "--size", "4x1")
	assert.ErrorIs(t, err, image.ErrSourceSize)
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "formats")
	assert.Error(t, err)

	_, err = run(t, "info", "missing.ktx")
	assert.Error(t, err)

	_, err = run(t, "decode", "x", "--format", "RAW12", "--size", "2")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	w, h, d, err := parseSize("7x5")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 5, 1}, []int{w, h, d})
	w, h, d, err = parseSize("4x4x3")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 3}, []int{w, h, d})
	_, _, _, err = parseSize("0x4")
	assert.Error(t, err)
}
