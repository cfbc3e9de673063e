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
	"github.com/google/texdecode/core/math/sint"
	"github.com/google/texdecode/core/math/u64"
)

// Intensity modifier tables. Pixel index bits (msb, lsb) select the column.
// Khronos Data Format Specification, ETC1 intensity modifier table and the
// ETC2 punchthrough alpha variant.
var (
	etcModifiers = [8][4]int{
		{2, 8, -2, -8},
		{5, 17, -5, -17},
		{9, 29, -9, -29},
		{13, 42, -13, -42},
		{18, 60, -18, -60},
		{24, 80, -24, -80},
		{33, 106, -33, -106},
		{47, 183, -47, -183},
	}
	// Punch-through blocks with the opaque bit clear: column 2 is the
	// transparent texel and column 0 carries no offset.
	etcTransparentModifiers = [8][4]int{
		{0, 8, 0, -8},
		{0, 17, 0, -17},
		{0, 29, 0, -29},
		{0, 42, 0, -42},
		{0, 60, 0, -60},
		{0, 80, 0, -80},
		{0, 106, 0, -106},
		{0, 183, 0, -183},
	}
	// T and H mode distances, Khronos Data Format Specification, ETC2 section.
	etcDistances = [8]int{3, 6, 11, 16, 23, 32, 41, 64}
	etcDeltas    = [8]int{0, 1, 2, 3, -4, -3, -2, -1}
	// Sub-block of texel i = x*4+y, for flip 0 (side by side) and 1
	// (top and bottom).
	etcSubBlocks = [2][16]int{
		{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1},
	}
)

type etcMode int

const (
	etcIndividual etcMode = iota
	etcDifferential
	etcT
	etcH
	etcPlanar
)

type etcFlavor int

const (
	etc1 etcFlavor = iota
	etc2
	etc2PunchThrough
)

// etcTexel returns the 2-bit pixel index of texel i = x*4+y.
func etcTexel(v binary.Block64, i uint) int {
	return int(v.Bit(i) | v.Bit(i+16)<<1)
}

// etcModeOf infers the block mode. ETC2 differential blocks whose base plus
// delta leaves [0, 31] in R select T, in G select H and in B select planar.
func etcModeOf(v binary.Block64, flavor etcFlavor) etcMode {
	if flavor != etc2PunchThrough && v.Bit(33) == 0 {
		return etcIndividual
	}
	if flavor == etc1 {
		return etcDifferential
	}
	// ┏━━━━━━━━━━━━━━┳━━━━━━━━┳━━━━━━━━━━━━━━┳━━━━━━━━┳━━━━━━━━━━━━━━┳━━━━━━━━┓
	// ┃      R       ┃   dR   ┃      G       ┃   dG   ┃      B       ┃   dB   ┃
	// ┣━━┯━━┯━━┯━━┯━━╋━━┯━━┯━━╋━━┯━━┯━━┯━━┯━━╋━━┯━━┯━━╋━━┯━━┯━━┯━━┯━━╋━━┯━━┯━━┫
	// ┃₆₃│₆₂│₆₁│₆₀│₅₉┃₅₈│₅₇│₅₆┃₅₅│₅₄│₅₃│₅₂│₅₁┃₅₀│₄₉│₄₈┃₄₇│₄₆│₄₅│₄₄│₄₃┃₄₂│₄₁│₄₀┃
	// ┖──┴──┴──┴──┴──┸──┴──┴──┸──┴──┴──┴──┴──┸──┴──┴──┸──┴──┴──┴──┴──┸──┴──┴──┚
	for c, mode := range []etcMode{etcT, etcH, etcPlanar} {
		top := uint(63 - c*8)
		sum := int(v.Field(top-4, top)) + etcDeltas[v.Field(top-7, top-5)]
		if sum < 0 || sum > 31 {
			return mode
		}
	}
	return etcDifferential
}

// decodeETCColor decodes the RGB part of an ETC1/ETC2 block into a 4x4 block
// of stride-byte pixels. With a stride of 4 the alpha byte is written too.
func decodeETCColor(dst []byte, stride int, v binary.Block64, flavor etcFlavor) {
	opaque := flavor != etc2PunchThrough || v.Bit(33) == 1
	var paint [4][3]int

	put := func(x, y int, rgb [3]int, transparent bool) {
		k := (y*4 + x) * stride
		if transparent {
			dst[k+0], dst[k+1], dst[k+2] = 0, 0, 0
		} else {
			dst[k+0], dst[k+1], dst[k+2] = sint.Byte(rgb[0]), sint.Byte(rgb[1]), sint.Byte(rgb[2])
		}
		if stride == 4 {
			if transparent {
				dst[k+3] = 0
			} else {
				dst[k+3] = 0xff
			}
		}
	}

	switch mode := etcModeOf(v, flavor); mode {
	case etcIndividual, etcDifferential:
		var base [2][3]int
		for c := uint(0); c < 3; c++ {
			if mode == etcIndividual {
				// ┏━━━━━━━━━━━┳━━━━━━━━━━━┓  repeated for G at 55..48, B at 47..40
				// ┃    R₀     ┃    R₁     ┃
				// ┃₆₃│₆₂│₆₁│₆₀┃₅₉│₅₈│₅₇│₅₆┃
				base[0][c] = int(u64.Expand4to8(v.Field(60-c*8, 63-c*8)))
				base[1][c] = int(u64.Expand4to8(v.Field(56-c*8, 59-c*8)))
			} else {
				a := int(v.Field(59-c*8, 63-c*8))
				b := (a + etcDeltas[v.Field(56-c*8, 58-c*8)]) & 31
				base[0][c] = int(u64.Expand5to8(uint64(a)))
				base[1][c] = int(u64.Expand5to8(uint64(b)))
			}
		}
		table := &etcModifiers
		if !opaque {
			table = &etcTransparentModifiers
		}
		codes := [2][4]int{table[v.Field(37, 39)], table[v.Field(34, 36)]}
		sub := etcSubBlocks[v.Bit(32)]
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				i := uint(x*4 + y)
				s, idx := sub[i], etcTexel(v, i)
				shift := codes[s][idx]
				put(x, y, [3]int{base[s][0] + shift, base[s][1] + shift, base[s][2] + shift}, !opaque && idx == 2)
			}
		}

	case etcT:
		// ┏━━━━━━━━┳━━━━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┓
		// ┃        ┃  R₀ ┏━━┓     ┃    G₀     ┃    B₀     ┃    R₂     ┃    G₂     ┃    B₂     ┃  d  ┏━━┓ d┃
		// ┣━━┯━━┯━━╋━━┯━━╋━━╋━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━╋━━╋━━┫
		// ┃₆₃│₆₂│₆₁┃₆₀│₅₉┃₅₈┃₅₇│₅₆┃₅₅│₅₄│₅₃│₅₂┃₅₁│₅₀│₄₉│₄₈┃₄₇│₄₆│₄₅│₄₄┃₄₃│₄₂│₄₁│₄₀┃₃₉│₃₈│₃₇│₃₆┃₃₅│₃₄┃₃₃┃₃₂┃
		// ┖──┴──┴──┸──┴──┸──┸──┴──┸──┴──┴──┴──┸──┴──┴──┴──┸──┴──┴──┴──┸──┴──┴──┴──┸──┴──┴──┴──┸──┴──┸──┸──┚
		c0 := [3]int{
			int(u64.Expand4to8(v.Field(59, 60)<<2 | v.Field(56, 57))),
			int(u64.Expand4to8(v.Field(52, 55))),
			int(u64.Expand4to8(v.Field(48, 51))),
		}
		c2 := [3]int{
			int(u64.Expand4to8(v.Field(44, 47))),
			int(u64.Expand4to8(v.Field(40, 43))),
			int(u64.Expand4to8(v.Field(36, 39))),
		}
		d := etcDistances[v.Field(34, 35)<<1|v.Bit(32)]
		for c := 0; c < 3; c++ {
			paint[0][c] = c0[c]
			paint[1][c] = c2[c] + d
			paint[2][c] = c2[c]
			paint[3][c] = c2[c] - d
		}
		etcPaint(v, &paint, opaque, put)

	case etcH:
		// ┏━━┳━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━━━━┳━━━━━━━━┓
		// ┃  ┃    R₀     ┃   G₀   ┏━━━━━━━━┓  ┃  ┏━━┓   B₀   ┃    R₂     ┃    G₂     ┃    B₂     ┃d ┏━━┓d ┃
		// ┣━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━╋━━┯━━┯━━╋━━╋━━╋━━╋━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━┯━━┯━━┯━━╋━━╋━━╋━━┫
		// ┃₆₃┃₆₂│₆₁│₆₀│₅₉┃₅₈│₅₇│₅₆┃₅₅│₅₄│₅₃┃₅₂┃₅₁┃₅₀┃₄₉│₄₈│₄₇┃₄₆│₄₅│₄₄│₄₃┃₄₂│₄₁│₄₀│₃₉┃₃₈│₃₇│₃₆│₃₅┃₃₄┃₃₃┃₃₂┃
		// ┖──┸──┴──┴──┴──┸──┴──┴──┸──┴──┴──┸──┸──┸──┸──┴──┴──┸──┴──┴──┴──┸──┴──┴──┴──┸──┴──┴──┴──┸──┸──┸──┚
		c0 := [3]int{
			int(u64.Expand4to8(v.Field(59, 62))),
			int(u64.Expand4to8(v.Field(56, 58)<<1 | v.Bit(52))),
			int(u64.Expand4to8(v.Bit(51)<<3 | v.Field(47, 49))),
		}
		c2 := [3]int{
			int(u64.Expand4to8(v.Field(43, 46))),
			int(u64.Expand4to8(v.Field(39, 42))),
			int(u64.Expand4to8(v.Field(35, 38))),
		}
		di := v.Bit(34)<<2 | v.Bit(32)<<1
		if c0[0]<<16|c0[1]<<8|c0[2] >= c2[0]<<16|c2[1]<<8|c2[2] {
			di |= 1
		}
		d := etcDistances[di]
		for c := 0; c < 3; c++ {
			paint[0][c], paint[1][c] = c0[c]+d, c0[c]-d
			paint[2][c], paint[3][c] = c2[c]+d, c2[c]-d
		}
		etcPaint(v, &paint, opaque, put)

	case etcPlanar:
		// ┏━━┳━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━┓
		// ┃  ┃    Rₒ           ┃  ┏━━┓           Gₒ    ┃  ┏━━━━━━━━┓  Bₒ ┏━━┓        ┃    Rₕ        ┏━━┓  ┃
		// ┃₆₃┃₆₂│₆₁│₆₀│₅₉│₅₈│₅₇┃₅₆┃₅₅┃₅₄│₅₃│₅₂│₅₁│₅₀│₄₉┃₄₈┃₄₇│₄₆│₄₅┃₄₄│₄₃┃₄₂┃₄₁│₄₀│₃₉┃₃₈│₃₇│₃₆│₃₅│₃₄┃₃₃┃₃₂┃
		// ┣━━━━━━━━━━━━━━━━━━━━╋━━━━━━━━━━━━━━━━━╋━━━━━━━━━━━━━━━━━╋━━━━━━━━━━━━━━━━━━━━╋━━━━━━━━━━━━━━━━━┫
		// ┃         Gₕ         ┃        Bₕ       ┃        Rᵥ       ┃         Gᵥ         ┃       Bᵥ        ┃
		// ┃₃₁│₃₀│₂₉│₂₈│₂₇│₂₆│₂₅┃₂₄│₂₃│₂₂│₂₁│₂₀│₁₉┃₁₈│₁₇│₁₆│₁₅│₁₄│₁₃┃₁₂│₁₁│₁₀│ ₉│ ₈│ ₇│ ₆┃ ₅│ ₄│ ₃│ ₂│ ₁│ ₀┃
		// ┖━━━━━━━━━━━━━━━━━━━━┸━━━━━━━━━━━━━━━━━┸━━━━━━━━━━━━━━━━━┸━━━━━━━━━━━━━━━━━━━━┸━━━━━━━━━━━━━━━━━┚
		o := [3]int{
			int(u64.Expand6to8(v.Field(57, 62))),
			int(u64.Expand7to8(v.Bit(56)<<6 | v.Field(49, 54))),
			int(u64.Expand6to8(v.Bit(48)<<5 | v.Field(43, 44)<<3 | v.Field(39, 41))),
		}
		h := [3]int{
			int(u64.Expand6to8(v.Field(34, 38)<<1 | v.Bit(32))),
			int(u64.Expand7to8(v.Field(25, 31))),
			int(u64.Expand6to8(v.Field(19, 24))),
		}
		vt := [3]int{
			int(u64.Expand6to8(v.Field(13, 18))),
			int(u64.Expand7to8(v.Field(6, 12))),
			int(u64.Expand6to8(v.Field(0, 5))),
		}
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				var rgb [3]int
				for c := 0; c < 3; c++ {
					rgb[c] = (x*(h[c]-o[c]) + y*(vt[c]-o[c]) + 4*o[c] + 2) >> 2
				}
				put(x, y, rgb, false)
			}
		}
	}
}

// etcPaint writes the T and H mode texels, each selecting one of four paint
// colours.
func etcPaint(v binary.Block64, paint *[4][3]int, opaque bool, put func(x, y int, rgb [3]int, transparent bool)) {
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			idx := etcTexel(v, uint(x*4+y))
			put(x, y, paint[idx], !opaque && idx == 2)
		}
	}
}

func decodeETC1(dst, src []byte) {
	decodeETCColor(dst, 3, binary.Load64BE(src), etc1)
}

func decodeETC2RGB(dst, src []byte) {
	decodeETCColor(dst, 3, binary.Load64BE(src), etc2)
}

func decodeETC2RGBA1(dst, src []byte) {
	decodeETCColor(dst, 4, binary.Load64BE(src), etc2PunchThrough)
}

func decodeETC2RGBA8(dst, src []byte) {
	decodeETCColor(dst, 4, binary.Load64BE(src[8:]), etc2)
	decodeEACAlpha(dst, 4, 3, binary.Load64BE(src))
}
