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

import "github.com/google/texdecode/core/data/binary"

// bc7Mode describes the bit allocation of one BC7 mode.
type bc7Mode struct {
	subsets        int
	partitionBits  uint32
	rotationBits   uint32
	selectorBits   uint32
	colorBits      uint32
	alphaBits      uint32
	endpointPBits  bool // one parity bit per endpoint
	sharedPBits    bool // one parity bit per subset
	indexBits      uint32
	alphaIndexBits uint32 // zero when colour and alpha share one index stream
}

var bc7Modes = [8]bc7Mode{
	{subsets: 3, partitionBits: 4, colorBits: 4, endpointPBits: true, indexBits: 3},
	{subsets: 2, partitionBits: 6, colorBits: 6, sharedPBits: true, indexBits: 3},
	{subsets: 3, partitionBits: 6, colorBits: 5, indexBits: 2},
	{subsets: 2, partitionBits: 6, colorBits: 7, endpointPBits: true, indexBits: 2},
	{subsets: 1, rotationBits: 2, selectorBits: 1, colorBits: 5, alphaBits: 6, indexBits: 2, alphaIndexBits: 3},
	{subsets: 1, rotationBits: 2, colorBits: 7, alphaBits: 8, indexBits: 2, alphaIndexBits: 2},
	{subsets: 1, colorBits: 7, alphaBits: 7, endpointPBits: true, indexBits: 4},
	{subsets: 2, partitionBits: 6, colorBits: 5, alphaBits: 5, endpointPBits: true, indexBits: 2},
}

// bc7Unquantize widens an n-bit endpoint component to 8 bits by shifting it
// to the top of the byte and replicating its high bits below.
func bc7Unquantize(v uint64, n uint32) int {
	v <<= 8 - n
	return int(v | v>>n)
}

func decodeBC7(dst, src []byte) { bc7Block(dst, src) }

// bc7Block decodes one 128-bit BC7 block into 4-byte RGBA pixels and returns
// the number of bits read.
func bc7Block(dst, src []byte) uint32 {
	if src[0] == 0 {
		for i := range dst[:64] {
			dst[i] = 0
		}
		return 0
	}
	s := binary.BitStream{Data: src[:16]}
	mode := 0
	for s.ReadBit() == 0 {
		mode++
	}
	m := &bc7Modes[mode]
	partition := int(s.Read(m.partitionBits))
	rotation := s.Read(m.rotationBits)
	selector := s.Read(m.selectorBits)

	// endpoints[subset*2+e][channel]
	var endpoints [6][4]uint64
	count := m.subsets * 2
	for c := 0; c < 3; c++ {
		for e := 0; e < count; e++ {
			endpoints[e][c] = s.Read(m.colorBits)
		}
	}
	for e := 0; e < count; e++ {
		endpoints[e][3] = s.Read(m.alphaBits)
	}

	colorBits, alphaBits := m.colorBits, m.alphaBits
	switch {
	case m.endpointPBits:
		for e := 0; e < count; e++ {
			p := s.ReadBit()
			for c := range endpoints[e] {
				endpoints[e][c] = endpoints[e][c]<<1 | p
			}
		}
		colorBits++
		if alphaBits > 0 {
			alphaBits++
		}
	case m.sharedPBits:
		for sub := 0; sub < m.subsets; sub++ {
			p := s.ReadBit()
			for e := sub * 2; e < sub*2+2; e++ {
				for c := range endpoints[e] {
					endpoints[e][c] = endpoints[e][c]<<1 | p
				}
			}
		}
		colorBits++
	}

	var colors [6][4]int
	for e := 0; e < count; e++ {
		for c := 0; c < 3; c++ {
			colors[e][c] = bc7Unquantize(endpoints[e][c], colorBits)
		}
		colors[e][3] = 0xff
		if alphaBits > 0 {
			colors[e][3] = bc7Unquantize(endpoints[e][3], alphaBits)
		}
	}

	var indices, alphaIndices [16]int
	for i := 0; i < 16; i++ {
		n := m.indexBits
		if bptcAnchor(m.subsets, partition, i) {
			n--
		}
		indices[i] = int(s.Read(n))
	}
	if m.alphaIndexBits > 0 {
		for i := 0; i < 16; i++ {
			n := m.alphaIndexBits
			if i == 0 {
				n--
			}
			alphaIndices[i] = int(s.Read(n))
		}
	} else {
		alphaIndices = indices
	}

	colorWeights, alphaWeights := bptcWeights[m.indexBits], bptcWeights[m.indexBits]
	if m.alphaIndexBits > 0 {
		alphaWeights = bptcWeights[m.alphaIndexBits]
	}
	if selector == 1 {
		indices, alphaIndices = alphaIndices, indices
		colorWeights, alphaWeights = alphaWeights, colorWeights
	}

	for i := 0; i < 16; i++ {
		sub := bptcSubset(m.subsets, partition, i)
		a, b := &colors[sub*2], &colors[sub*2+1]
		var px [4]byte
		for c := 0; c < 3; c++ {
			px[c] = byte(bptcInterpolate(a[c], b[c], colorWeights[indices[i]]))
		}
		px[3] = byte(bptcInterpolate(a[3], b[3], alphaWeights[alphaIndices[i]]))
		if rotation > 0 {
			px[3], px[rotation-1] = px[rotation-1], px[3]
		}
		copy(dst[i*4:i*4+4], px[:])
	}
	return s.ReadPos
}
