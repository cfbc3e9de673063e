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

package image

import (
	eb "encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/texdecode/core/data/binary"
	"github.com/google/texdecode/core/math/u64"
)

// bc6Field places count bits of the stream into endpoint component
// (endpoint, channel) starting at bit shift. Reversed fields store their
// bits most significant first.
type bc6Field struct {
	endpoint, channel int
	shift, count      uint32
	reversed          bool
}

type bc6Mode struct {
	subsets     int
	transformed bool
	base        uint32    // endpoint 0 precision
	delta       [3]uint32 // precision of the other endpoints, per channel
	layout      string
	fields      []bc6Field
}

// The layouts list the endpoint fields in stream order after the mode bits.
// r0 and r1 are the endpoints of subset 0, r2 and r3 those of subset 1.
// x[hi:lo] is a regular field and x[lo:hi] a reversed one. Khronos Data
// Format Specification, BC6H section, endpoint layout tables.
var bc6Modes = map[uint64]*bc6Mode{
	0x00: {2, true, 10, [3]uint32{5, 5, 5}, "g2[4] b2[4] b3[4] r0[9:0] g0[9:0] b0[9:0] r1[4:0] g3[4] g2[3:0] g1[4:0] b3[0] g3[3:0] b1[4:0] b3[1] b2[3:0] r2[4:0] b3[2] r3[4:0] b3[3]", nil},
	0x01: {2, true, 7, [3]uint32{6, 6, 6}, "g2[5] g3[4] g3[5] r0[6:0] b3[0] b3[1] b2[4] g0[6:0] b2[5] b3[2] g2[4] b0[6:0] b3[3] b3[5] b3[4] r1[5:0] g2[3:0] g1[5:0] g3[3:0] b1[5:0] b2[3:0] r2[5:0] r3[5:0]", nil},
	0x02: {2, true, 11, [3]uint32{5, 4, 4}, "r0[9:0] g0[9:0] b0[9:0] r1[4:0] r0[10] g2[3:0] g1[3:0] g0[10] b3[0] g3[3:0] b1[3:0] b0[10] b3[1] b2[3:0] r2[4:0] b3[2] r3[4:0] b3[3]", nil},
	0x06: {2, true, 11, [3]uint32{4, 5, 4}, "r0[9:0] g0[9:0] b0[9:0] r1[3:0] r0[10] g3[4] g2[3:0] g1[4:0] g0[10] g3[3:0] b1[3:0] b0[10] b3[1] b2[3:0] r2[3:0] b3[0] b3[2] r3[3:0] g2[4] b3[3]", nil},
	0x0A: {2, true, 11, [3]uint32{4, 4, 5}, "r0[9:0] g0[9:0] b0[9:0] r1[3:0] r0[10] b2[4] g2[3:0] g1[3:0] g0[10] b3[0] g3[3:0] b1[4:0] b0[10] b2[3:0] r2[3:0] b3[1] b3[2] r3[3:0] b3[4] b3[3]", nil},
	0x0E: {2, true, 9, [3]uint32{5, 5, 5}, "r0[8:0] b2[4] g0[8:0] g2[4] b0[8:0] b3[4] r1[4:0] g3[4] g2[3:0] g1[4:0] b3[0] g3[3:0] b1[4:0] b3[1] b2[3:0] r2[4:0] b3[2] r3[4:0] b3[3]", nil},
	0x12: {2, true, 8, [3]uint32{6, 5, 5}, "r0[7:0] g3[4] b2[4] g0[7:0] b3[2] g2[4] b0[7:0] b3[3] b3[4] r1[5:0] g2[3:0] g1[4:0] b3[0] g3[3:0] b1[4:0] b3[1] b2[3:0] r2[5:0] r3[5:0]", nil},
	0x16: {2, true, 8, [3]uint32{5, 6, 5}, "r0[7:0] b3[0] b2[4] g0[7:0] g2[5] g2[4] b0[7:0] g3[5] b3[4] r1[4:0] g3[4] g2[3:0] g1[5:0] g3[3:0] b1[4:0] b3[1] b2[3:0] r2[4:0] b3[2] r3[4:0] b3[3]", nil},
	0x1A: {2, true, 8, [3]uint32{5, 5, 6}, "r0[7:0] b3[1] b2[4] g0[7:0] b2[5] g2[4] b0[7:0] b3[5] b3[4] r1[4:0] g3[4] g2[3:0] g1[4:0] b3[0] g3[3:0] b1[5:0] b2[3:0] r2[4:0] b3[2] r3[4:0] b3[3]", nil},
	0x1E: {2, false, 6, [3]uint32{6, 6, 6}, "r0[5:0] g3[4] b3[0] b3[1] b2[4] g0[5:0] g2[5] b2[5] b3[2] g2[4] b0[5:0] g3[5] b3[3] b3[5] b3[4] r1[5:0] g2[3:0] g1[5:0] g3[3:0] b1[5:0] b2[3:0] r2[5:0] r3[5:0]", nil},
	0x03: {1, false, 10, [3]uint32{10, 10, 10}, "r0[9:0] g0[9:0] b0[9:0] r1[9:0] g1[9:0] b1[9:0]", nil},
	0x07: {1, true, 11, [3]uint32{9, 9, 9}, "r0[9:0] g0[9:0] b0[9:0] r1[8:0] r0[10] g1[8:0] g0[10] b1[8:0] b0[10]", nil},
	0x0B: {1, true, 12, [3]uint32{8, 8, 8}, "r0[9:0] g0[9:0] b0[9:0] r1[7:0] r0[10:11] g1[7:0] g0[10:11] b1[7:0] b0[10:11]", nil},
	0x0F: {1, true, 16, [3]uint32{4, 4, 4}, "r0[9:0] g0[9:0] b0[9:0] r1[3:0] r0[10:15] g1[3:0] g0[10:15] b1[3:0] b0[10:15]", nil},
}

func init() {
	for _, m := range bc6Modes {
		m.fields = parseBC6Layout(m.layout)
	}
}

func parseBC6Layout(layout string) []bc6Field {
	var out []bc6Field
	for _, tok := range strings.Fields(layout) {
		open, end := strings.IndexByte(tok, '['), len(tok)-1
		if open != 2 || tok[end] != ']' {
			panic(fmt.Errorf("bad BC6H field %q", tok))
		}
		f := bc6Field{
			channel:  strings.IndexByte("rgb", tok[0]),
			endpoint: int(tok[1] - '0'),
		}
		bits := strings.Split(tok[open+1:end], ":")
		hi, err := strconv.Atoi(bits[0])
		if err != nil {
			panic(err)
		}
		lo := hi
		if len(bits) == 2 {
			if lo, err = strconv.Atoi(bits[1]); err != nil {
				panic(err)
			}
		}
		if hi < lo {
			hi, lo = lo, hi
			f.reversed = true
		}
		f.shift, f.count = uint32(lo), uint32(hi-lo+1)
		out = append(out, f)
	}
	return out
}

func decodeBC6HUnsigned(dst, src []byte) { decodeBC6H(dst, src, false) }
func decodeBC6HSigned(dst, src []byte)   { decodeBC6H(dst, src, true) }

// decodeBC6H decodes one 128-bit BC6H block into RGB half float pixels and
// returns the number of bits read.
func decodeBC6H(dst, src []byte, signed bool) uint32 {
	s := binary.BitStream{Data: src[:16]}
	id := s.Read(2)
	if id > 1 {
		id |= s.Read(3) << 2
	}
	m, ok := bc6Modes[id]
	if !ok {
		for i := range dst[:16*6] {
			dst[i] = 0
		}
		return s.ReadPos
	}

	var raw [4][3]uint64
	for _, f := range m.fields {
		v := s.Read(f.count)
		if f.reversed {
			v = binary.Reverse(v, int(f.count))
		}
		raw[f.endpoint][f.channel] |= v << f.shift
	}
	partition := 0
	if m.subsets == 2 {
		partition = int(s.Read(5))
	}

	count := m.subsets * 2
	var endpoints [4][3]int
	for c := 0; c < 3; c++ {
		if signed {
			endpoints[0][c] = int(binary.SignExtend(raw[0][c], int(m.base)))
		} else {
			endpoints[0][c] = int(raw[0][c])
		}
		for e := 1; e < count; e++ {
			v := int(raw[e][c])
			if signed || m.transformed {
				v = int(binary.SignExtend(raw[e][c], int(m.delta[c])))
			}
			if m.transformed {
				v = (endpoints[0][c] + v) & int(u64.Mask(uint(m.base)))
				if signed {
					v = int(binary.SignExtend(uint64(v), int(m.base)))
				}
			}
			endpoints[e][c] = v
		}
	}
	for e := 0; e < count; e++ {
		for c := 0; c < 3; c++ {
			endpoints[e][c] = bc6Unquantize(endpoints[e][c], m.base, signed)
		}
	}

	indexBits := uint32(4)
	if m.subsets == 2 {
		indexBits = 3
	}
	weights := bptcWeights[indexBits]
	for i := 0; i < 16; i++ {
		n := indexBits
		if bptcAnchor(m.subsets, partition, i) {
			n--
		}
		w := weights[s.Read(n)]
		sub := bptcSubset(m.subsets, partition, i)
		for c := 0; c < 3; c++ {
			v := bptcInterpolate(endpoints[sub*2][c], endpoints[sub*2+1][c], w)
			eb.LittleEndian.PutUint16(dst[i*6+c*2:], bc6Finish(v, signed))
		}
	}
	return s.ReadPos
}

// bc6Unquantize widens a bits-wide endpoint to the 16-bit interpolation
// range.
func bc6Unquantize(v int, bits uint32, signed bool) int {
	if !signed {
		switch {
		case bits >= 15:
			return v
		case v == 0:
			return 0
		case v == int(u64.Mask(uint(bits))):
			return 0xffff
		}
		return ((v << 15) + 0x4000) >> (bits - 1)
	}
	if bits >= 16 {
		return v
	}
	neg := v < 0
	if neg {
		v = -v
	}
	switch {
	case v == 0:
	case v >= 1<<(bits-1)-1:
		v = 0x7fff
	default:
		v = ((v << 15) + 0x4000) >> (bits - 1)
	}
	if neg {
		return -v
	}
	return v
}

// bc6Finish scales an interpolated value to the bits of a half float.
func bc6Finish(v int, signed bool) uint16 {
	if !signed {
		return uint16((v * 31) >> 6)
	}
	if v < 0 {
		return 0x8000 | uint16(((-v)*31)>>5)
	}
	return uint16((v * 31) >> 5)
}
