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
)

// rgtcRamp returns the eight values selectable by a 3-bit index from the
// endpoints a0 and a1. Signed ramps use endpoints in [-127, 127] and round
// halves away from zero.
func rgtcRamp(a0, a1 int, signed bool) [8]int {
	div := func(n, d int) int { return (n + d/2) / d }
	lo, hi := 0, 255
	if signed {
		div = sint.RoundDiv
		lo, hi = -127, 127
	}
	r := [8]int{a0, a1}
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			r[i+1] = div((7-i)*a0+i*a1, 7)
		}
	} else {
		for i := 1; i <= 4; i++ {
			r[i+1] = div((5-i)*a0+i*a1, 5)
		}
		r[6], r[7] = lo, hi
	}
	return r
}

// decodeRGTCChannel writes one BC4 channel into byte off of each
// stride-byte pixel.
//
// ┏━━━━━━━━━━━━┳━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
// ┃     a0     ┃     a1     ┃     16 × 3-bit indices, row major    ┃
// ┃ 0 ..... 7  ┃ 8 ..... 15 ┃ 16 ............................... 63 ┃
// ┖────────────┸────────────┸──────────────────────────────────────┚
func decodeRGTCChannel(dst []byte, stride, off int, v binary.Block64, signed bool) {
	a0, a1 := int(v.Field(0, 7)), int(v.Field(8, 15))
	if signed {
		a0, a1 = rgtcSigned(a0), rgtcSigned(a1)
	}
	ramp := rgtcRamp(a0, a1, signed)
	for i := uint(0); i < 16; i++ {
		// Signed values are stored as their two's complement byte.
		dst[int(i)*stride+off] = byte(ramp[v.Field(16+i*3, 18+i*3)])
	}
}

func rgtcSigned(raw int) int {
	if v := int(int8(raw)); v > -128 {
		return v
	}
	return -127
}

func decodeBC4(dst, src []byte) {
	decodeRGTCChannel(dst, 1, 0, binary.Load64LE(src), false)
}

func decodeBC4Signed(dst, src []byte) {
	decodeRGTCChannel(dst, 1, 0, binary.Load64LE(src), true)
}

func decodeBC5(dst, src []byte) {
	decodeRGTCChannel(dst, 2, 0, binary.Load64LE(src), false)
	decodeRGTCChannel(dst, 2, 1, binary.Load64LE(src[8:]), false)
}

func decodeBC5Signed(dst, src []byte) {
	decodeRGTCChannel(dst, 2, 0, binary.Load64LE(src), true)
	decodeRGTCChannel(dst, 2, 1, binary.Load64LE(src[8:]), true)
}
