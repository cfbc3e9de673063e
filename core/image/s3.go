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
	"github.com/google/texdecode/core/data/binary"
	"github.com/google/texdecode/core/math/u64"
)

// s3Mode selects how the colour palette of a BC1-style block is built.
type s3Mode int

const (
	// s3Auto picks four or three colours from the endpoint order.
	s3Auto s3Mode = iota
	// s3OpaqueBlack is s3Auto with the fourth three-colour entry opaque.
	s3OpaqueBlack
	// s3FourColor always builds four colours (BC2, BC3).
	s3FourColor
)

func rgb565(c uint64) [3]int {
	return [3]int{
		int(u64.Expand5to8(c >> 11)),
		int(u64.Expand6to8(c >> 5)),
		int(u64.Expand5to8(c)),
	}
}

// s3Palette returns the RGBA palette for the two raw RGB565 endpoints.
func s3Palette(c0, c1 uint64, mode s3Mode) [4][4]byte {
	a, b := rgb565(c0), rgb565(c1)
	var p [4][4]byte
	for c := 0; c < 3; c++ {
		p[0][c], p[1][c] = byte(a[c]), byte(b[c])
		if c0 > c1 || mode == s3FourColor {
			p[2][c] = byte((2*a[c] + b[c] + 1) / 3)
			p[3][c] = byte((a[c] + 2*b[c] + 1) / 3)
		} else {
			p[2][c] = byte((a[c] + b[c] + 1) / 2)
		}
	}
	p[0][3], p[1][3], p[2][3] = 0xff, 0xff, 0xff
	if c0 > c1 || mode != s3Auto {
		p[3][3] = 0xff
	}
	return p
}

// decodeS3Color writes the colour half of a BC1/BC2/BC3 block into 4-byte
// RGBA pixels.
//
// ┏━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
// ┃   c0 (RGB565)  ┃   c1 (RGB565)  ┃  16 × 2-bit indices, row major ┃
// ┃ 0 ........ 15  ┃ 16 ........ 31 ┃ 32 ........................ 63 ┃
// ┖────────────────┸────────────────┸────────────────────────────────┚
func decodeS3Color(dst []byte, v binary.Block64, mode s3Mode) {
	p := s3Palette(v.Field(0, 15), v.Field(16, 31), mode)
	for i := uint(0); i < 16; i++ {
		copy(dst[i*4:i*4+4], p[v.Field(32+i*2, 33+i*2)][:])
	}
}

func decodeBC1RGB(dst, src []byte) {
	decodeS3Color(dst, binary.Load64LE(src), s3OpaqueBlack)
}

func decodeBC1RGBA(dst, src []byte) {
	decodeS3Color(dst, binary.Load64LE(src), s3Auto)
}

func decodeBC2(dst, src []byte) {
	decodeS3Color(dst, binary.Load64LE(src[8:]), s3FourColor)
	alpha := binary.Load64LE(src)
	for i := uint(0); i < 16; i++ {
		dst[i*4+3] = byte(u64.Expand4to8(alpha.Field(i*4, i*4+3)))
	}
}

func decodeBC3(dst, src []byte) {
	decodeS3Color(dst, binary.Load64LE(src[8:]), s3FourColor)
	decodeRGTCChannel(dst, 4, 3, binary.Load64LE(src), false)
}
