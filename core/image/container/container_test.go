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

package container_test

import (
	"bytes"
	eb "encoding/binary"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/image"
	"github.com/google/texdecode/core/image/container"
	"github.com/google/texdecode/core/log"
)

func randomTexture(f image.Format, w, h, d int) *image.CompressedTexture {
	t := image.NewCompressedTexture(f, w, h, d)
	rand.New(rand.NewSource(int64(f))).Read(t.Bytes)
	return t
}

type writeFunc func(*bytes.Buffer, *image.CompressedTexture) error

func TestRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	ktx := func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteKTX(b, tex) }
	ktx2 := func(b *bytes.Buffer, tex *image.CompressedTexture) error {
		return container.WriteKTX2(b, tex, container.SupercompressionNone)
	}
	ktx2zstd := func(b *bytes.Buffer, tex *image.CompressedTexture) error {
		return container.WriteKTX2(b, tex, container.SupercompressionZstd)
	}
	dds := func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteDDS(b, tex) }
	astc := func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteASTC(b, tex) }

	for _, test := range []struct {
		name  string
		write writeFunc
		kind  container.Kind
		tex   *image.CompressedTexture
	}{
		{"ktx etc2", ktx, container.KTX, randomTexture(image.ETC2_RGBA_U8_NORM, 13, 7, 1)},
		{"ktx eac 3d", ktx, container.KTX, randomTexture(image.ETC2_RG_S11_NORM, 8, 8, 3)},
		{"ktx2 bc6h", ktx2, container.KTX2, randomTexture(image.BPTC_BC6H_RGB_SFLOAT, 16, 12, 1)},
		{"ktx2 zstd bc1", ktx2zstd, container.KTX2, randomTexture(image.S3_DXT1_SRGBA, 33, 17, 1)},
		{"ktx2 zstd astc", ktx2zstd, container.KTX2, randomTexture(image.ASTC_10x6_SRGBA, 21, 13, 1)},
		{"dds bc7", dds, container.DDS, randomTexture(image.BPTC_BC7_SRGBA_U8_NORM, 20, 8, 1)},
		{"dds bc4 volume", dds, container.DDS, randomTexture(image.RGTC1_BC4_R_S8_NORM, 8, 4, 5)},
		{"astc", astc, container.ASTC, randomTexture(image.ASTC_8x5_RGBA, 17, 11, 1)},
	} {
		t.Run(test.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, test.write(buf, test.tex))
			assert.Equal(t, test.kind, container.Sniff(buf.Bytes()))
			got, kind, err := container.Load(log.SubTest(ctx, t), buf)
			require.NoError(t, err)
			assert.Equal(t, test.kind, kind)
			assert.Equal(t, test.tex, got)
		})
	}
}

func TestKTX2ZstdShrinks(t *testing.T) {
	tex := image.NewCompressedTexture(image.BPTC_BC7_RGBA_U8_NORM, 256, 256, 1)
	plain, packed := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, container.WriteKTX2(plain, tex, container.SupercompressionNone))
	require.NoError(t, container.WriteKTX2(packed, tex, container.SupercompressionZstd))
	assert.Less(t, packed.Len(), plain.Len()/10)
}

func TestKTX2UnsupportedScheme(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, container.WriteKTX2(buf, randomTexture(image.ETC2_RGB_U8_NORM, 4, 4, 1), container.SupercompressionNone))
	data := buf.Bytes()
	// supercompressionScheme is the ninth header word.
	eb.LittleEndian.PutUint32(data[12+8*4:], container.SupercompressionBasis)
	_, err := container.LoadKTX2(bytes.NewReader(data))
	assert.ErrorIs(t, err, container.ErrUnsupportedFormat)

	err = container.WriteKTX2(&bytes.Buffer{}, randomTexture(image.ETC2_RGB_U8_NORM, 4, 4, 1), container.SupercompressionZlib)
	assert.ErrorIs(t, err, container.ErrUnsupportedFormat)
}

// writeKTX builds a KTX 1.1 file by hand, with a key/value pair that needs
// padding.
func writeKTX(order eb.ByteOrder, gl uint32, w, h int, payload []byte) []byte {
	buf := &bytes.Buffer{}
	buf.Write([]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A})
	out := endian.Writer(buf, order)
	out.Uint32(0x04030201)
	kv := []byte("KTXorientation\x00S=r,T=d\x00")
	for _, v := range []uint32{0, 1, 0, gl, 0, uint32(w), uint32(h), 0, 0, 1, 1, uint32(4 + len(kv) + 1)} {
		out.Uint32(v)
	}
	out.Uint32(uint32(len(kv)))
	out.Data(kv)
	out.Data([]byte{0})
	out.Uint32(uint32(len(payload)))
	out.Data(payload)
	return buf.Bytes()
}

func TestKTXByteOrders(t *testing.T) {
	tex := randomTexture(image.ETC2_R_U11_NORM, 9, 5, 1)
	for _, order := range []eb.ByteOrder{eb.LittleEndian, eb.BigEndian} {
		data := writeKTX(order, 0x9270, 9, 5, tex.Bytes)
		got, err := container.LoadKTX(bytes.NewReader(data))
		require.NoError(t, err, "%v", order)
		assert.Equal(t, tex, got, "%v", order)
	}
}

func TestKTXErrors(t *testing.T) {
	payload := make([]byte, 8)
	for _, test := range []struct {
		name string
		data []byte
		want error
	}{
		{"unknown gl format", writeKTX(eb.LittleEndian, 0x1234, 4, 4, payload), container.ErrUnsupportedFormat},
		{"short level", writeKTX(eb.LittleEndian, 0x9274, 8, 4, payload), image.ErrSourceSize},
		{"bad identifier", append([]byte{0}, writeKTX(eb.LittleEndian, 0x9274, 4, 4, payload)[1:]...), container.ErrBadHeader},
	} {
		_, err := container.LoadKTX(bytes.NewReader(test.data))
		assert.ErrorIs(t, err, test.want, test.name)
	}
	data := writeKTX(eb.LittleEndian, 0x9274, 4, 4, payload)
	_, err := container.LoadKTX(bytes.NewReader(data[:len(data)-1]))
	assert.Error(t, err)
}

// writeLegacyDDS builds a DDS file using a FourCC pixel format.
func writeLegacyDDS(code string, w, h int, payload []byte) []byte {
	buf := &bytes.Buffer{}
	out := endian.Writer(buf, eb.LittleEndian)
	out.Data([]byte("DDS "))
	out.Uint32(124)
	out.Uint32(0x1 | 0x2 | 0x4 | 0x1000 | 0x80000)
	out.Uint32(uint32(h))
	out.Uint32(uint32(w))
	out.Uint32(uint32(len(payload)))
	out.Uint32(0)
	out.Uint32(1)
	out.Data(make([]byte, 44))
	out.Uint32(32)
	out.Uint32(0x4)
	out.Data([]byte(code))
	out.Data(make([]byte, 20))
	out.Uint32(0x1000)
	out.Data(make([]byte, 16))
	out.Data(payload)
	return buf.Bytes()
}

func TestDDSFourCC(t *testing.T) {
	for _, test := range []struct {
		code string
		want image.Format
	}{
		{"DXT1", image.S3_DXT1_RGBA},
		{"DXT3", image.S3_DXT3_RGBA},
		{"DXT5", image.S3_DXT5_RGBA},
		{"ATI1", image.RGTC1_BC4_R_U8_NORM},
		{"BC4S", image.RGTC1_BC4_R_S8_NORM},
		{"ATI2", image.RGTC2_BC5_RG_U8_NORM},
		{"BC5S", image.RGTC2_BC5_RG_S8_NORM},
	} {
		tex := randomTexture(test.want, 6, 10, 1)
		got, err := container.LoadDDS(bytes.NewReader(writeLegacyDDS(test.code, 6, 10, tex.Bytes)))
		require.NoError(t, err, test.code)
		assert.Equal(t, tex, got, test.code)
	}

	_, err := container.LoadDDS(bytes.NewReader(writeLegacyDDS("RXGB", 4, 4, make([]byte, 16))))
	assert.ErrorIs(t, err, container.ErrUnsupportedFormat)
}

func TestWriteUnsupported(t *testing.T) {
	etc := randomTexture(image.ETC2_RGB_U8_NORM, 4, 4, 1)
	assert.ErrorIs(t, container.WriteDDS(&bytes.Buffer{}, etc), container.ErrUnsupportedFormat)
	assert.ErrorIs(t, container.WriteASTC(&bytes.Buffer{}, etc), container.ErrUnsupportedFormat)
	bc7 := randomTexture(image.BPTC_BC7_RGBA_U8_NORM, 4, 4, 1)
	assert.ErrorIs(t, container.WriteASTC(&bytes.Buffer{}, bc7), container.ErrUnsupportedFormat)
	etc1 := randomTexture(image.ETC1_RGB_U8_NORM, 4, 4, 1)
	assert.ErrorIs(t, container.WriteKTX2(&bytes.Buffer{}, etc1, container.SupercompressionNone), container.ErrUnsupportedFormat)
}

func TestASTCBlockDepth(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, container.WriteASTC(buf, randomTexture(image.ASTC_4x4_RGBA, 4, 4, 1)))
	data := buf.Bytes()
	data[6] = 4
	_, err := container.LoadASTC(bytes.NewReader(data))
	assert.ErrorIs(t, err, container.ErrUnsupportedFormat)
}

func TestLZ4(t *testing.T) {
	tex := randomTexture(image.S3_DXT5_RGBA, 30, 18, 2)
	buf := &bytes.Buffer{}
	require.NoError(t, container.WriteLZ4(buf, tex))
	got, err := container.LoadLZ4(buf, tex.Format, 30, 18, 2)
	require.NoError(t, err)
	assert.Equal(t, tex, got)

	buf.Reset()
	require.NoError(t, container.WriteLZ4(buf, tex))
	_, err = container.LoadLZ4(buf, tex.Format, 30, 18, 3)
	assert.Error(t, err)
}

func TestLoadUnknown(t *testing.T) {
	ctx := log.Testing(t)
	_, kind, err := container.Load(ctx, bytes.NewReader([]byte("not a texture")))
	assert.Equal(t, container.Unknown, kind)
	assert.Equal(t, container.ErrUnknownContainer, errors.Cause(err))

	_, kind, err = container.Load(ctx, bytes.NewReader(writeLegacyDDS("DXT1", 8, 8, make([]byte, 8))))
	assert.Equal(t, container.DDS, kind)
	assert.Error(t, err)
}

func TestHugeExtents(t *testing.T) {
	for _, test := range []struct {
		name  string
		tex   *image.CompressedTexture
		write func(*bytes.Buffer, *image.CompressedTexture) error
		load  func(*bytes.Buffer) (*image.CompressedTexture, error)
	}{
		{
			name:  "KTX",
			tex:   &image.CompressedTexture{Format: image.S3_DXT1_RGBA, Width: 1 << 22, Height: 1 << 22, Depth: 1 << 20},
			write: func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteKTX(b, tex) },
			load:  func(b *bytes.Buffer) (*image.CompressedTexture, error) { return container.LoadKTX(b) },
		}, {
			name:  "KTX2",
			tex:   &image.CompressedTexture{Format: image.S3_DXT1_RGBA, Width: 1 << 30, Height: 1 << 30, Depth: 1},
			write: func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteKTX2(b, tex, container.SupercompressionNone) },
			load:  func(b *bytes.Buffer) (*image.CompressedTexture, error) { return container.LoadKTX2(b) },
		}, {
			name:  "DDS",
			tex:   &image.CompressedTexture{Format: image.S3_DXT1_RGBA, Width: 1 << 22, Height: 1 << 22, Depth: 1},
			write: func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteDDS(b, tex) },
			load:  func(b *bytes.Buffer) (*image.CompressedTexture, error) { return container.LoadDDS(b) },
		}, {
			name:  "ASTC",
			tex:   &image.CompressedTexture{Format: image.ASTC_4x4_RGBA, Width: 1<<24 - 1, Height: 1<<24 - 1, Depth: 1},
			write: func(b *bytes.Buffer, tex *image.CompressedTexture) error { return container.WriteASTC(b, tex) },
			load:  func(b *bytes.Buffer) (*image.CompressedTexture, error) { return container.LoadASTC(b) },
		},
	} {
		test.tex.Bytes = make([]byte, 64)
		buf := &bytes.Buffer{}
		require.NoError(t, test.write(buf, test.tex), test.name)
		_, err := test.load(buf)
		assert.ErrorIs(t, err, container.ErrBadHeader, test.name)
	}

	_, err := container.LoadLZ4(&bytes.Buffer{}, image.S3_DXT1_RGBA, 1<<30, 1<<30, 1<<30)
	assert.ErrorIs(t, err, container.ErrBadHeader, "LZ4")
}
