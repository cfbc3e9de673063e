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
	eb "encoding/binary"

	"github.com/google/texdecode/core/data/binary"
	"github.com/google/texdecode/core/math/sint"
	"github.com/google/texdecode/core/math/u64"
)

// EAC modifier tables, Khronos Data Format Specification, EAC section.
var eacModifiers = [16][8]int{
	{-3, -6, -9, -15, 2, 5, 8, 14},
	{-3, -7, -10, -13, 2, 6, 9, 12},
	{-2, -5, -8, -13, 1, 4, 7, 12},
	{-2, -4, -6, -13, 1, 3, 5, 12},
	{-3, -6, -8, -12, 2, 5, 7, 11},
	{-3, -7, -9, -11, 2, 6, 8, 10},
	{-4, -7, -8, -11, 3, 6, 7, 10},
	{-3, -5, -8, -11, 2, 4, 7, 10},
	{-2, -6, -8, -10, 1, 5, 7, 9},
	{-2, -5, -8, -10, 1, 4, 7, 9},
	{-2, -4, -8, -10, 1, 3, 7, 9},
	{-2, -5, -7, -10, 1, 4, 6, 9},
	{-3, -4, -7, -10, 2, 3, 6, 9},
	{-1, -2, -3, -10, 0, 1, 2, 9},
	{-4, -6, -8, -9, 3, 5, 7, 8},
	{-3, -5, -7, -9, 2, 4, 6, 8},
}

// eacBlock is one 64-bit EAC block.
//
// ┏━━━━━━━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┓
// ┃         base          ┃    mul    ┃   table   ┃
// ┣━━┯━━┯━━┯━━┯━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━┫
// ┃₆₃│₆₂│₆₁│₆₀│₅₉│₅₈│₅₇│₅₆┃₅₅│₅₄│₅₃│₅₂┃₅₁│₅₀│₄₉│₄₈┃
// ┖──┴──┴──┴──┴──┴──┴──┴──┸──┴──┴──┴──┸──┴──┴──┴──┚
// followed by sixteen 3-bit texel indices, texel (x, y) first at x*4+y.
type eacBlock struct {
	base int
	mul  int
	mods *[8]int
	v    binary.Block64
}

func newEACBlock(v binary.Block64, signed bool) eacBlock {
	b := eacBlock{
		base: int(v.Field(56, 63)),
		mul:  int(v.Field(52, 55)),
		mods: &eacModifiers[v.Field(48, 51)],
		v:    v,
	}
	if signed {
		b.base = int(int8(b.base))
		if b.base == -128 {
			b.base = -127
		}
	}
	return b
}

// modifier returns the table entry selected by texel (x, y).
func (b eacBlock) modifier(x, y int) int {
	p := uint(x*4 + y)
	return b.mods[b.v.Field(45-p*3, 47-p*3)]
}

// decodeEACAlpha writes 8-bit alpha into byte off of each stride-byte pixel.
func decodeEACAlpha(dst []byte, stride, off int, v binary.Block64) {
	b := newEACBlock(v, false)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			dst[(y*4+x)*stride+off] = sint.Byte(b.base + b.modifier(x, y)*b.mul)
		}
	}
}

// decodeEAC11 writes one 11-bit channel, widened to 16 bits, as a little
// endian uint16 (or int16 when signed) at byte off of each pixel.
func decodeEAC11(dst []byte, stride, off int, v binary.Block64, signed bool) {
	b := newEACBlock(v, signed)
	mul := b.mul * 8
	if mul == 0 {
		mul = 1
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			k := (y*4+x)*stride + off
			m := b.modifier(x, y) * mul
			if !signed {
				c := sint.Clamp(b.base*8+4+m, 0, 2047)
				eb.LittleEndian.PutUint16(dst[k:], uint16(u64.Expand11to16(uint64(c))))
				continue
			}
			c := sint.Clamp(b.base*8+m, -1023, 1023)
			mag := sint.Abs(c)
			out := int16(mag<<5 | mag>>5)
			if c < 0 {
				out = -out
			}
			eb.LittleEndian.PutUint16(dst[k:], uint16(out))
		}
	}
}

func decodeEACR11(dst, src []byte) {
	decodeEAC11(dst, 2, 0, binary.Load64BE(src), false)
}

func decodeEACR11Signed(dst, src []byte) {
	decodeEAC11(dst, 2, 0, binary.Load64BE(src), true)
}

func decodeEACRG11(dst, src []byte) {
	decodeEAC11(dst, 4, 0, binary.Load64BE(src), false)
	decodeEAC11(dst, 4, 2, binary.Load64BE(src[8:]), false)
}

func decodeEACRG11Signed(dst, src []byte) {
	decodeEAC11(dst, 4, 0, binary.Load64BE(src), true)
	decodeEAC11(dst, 4, 2, binary.Load64BE(src[8:]), true)
}
