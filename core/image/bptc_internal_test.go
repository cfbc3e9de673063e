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
	"testing"

	"github.com/google/texdecode/core/data/binary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func between(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

func TestS3PaletteConsistency(t *testing.T) {
	for c0 := 0; c0 < 1<<16; c0++ {
		for _, c1 := range []int{c0, ^c0 & 0xFFFF, (c0*40503 + 1) & 0xFFFF} {
			p := s3Palette(uint64(c0), uint64(c1), s3Auto)
			a, b := rgb565(uint64(c0)), rgb565(uint64(c1))
			for c := 0; c < 3; c++ {
				require.Equal(t, a[c], int(p[0][c]), "%#x %#x", c0, c1)
				require.Equal(t, b[c], int(p[1][c]), "%#x %#x", c0, c1)
				if c0 > c1 {
					require.Equal(t, (2*a[c]+b[c]+1)/3, int(p[2][c]))
					require.Equal(t, (a[c]+2*b[c]+1)/3, int(p[3][c]))
					require.True(t, between(int(p[3][c]), a[c], b[c]))
				} else {
					require.Equal(t, (a[c]+b[c]+1)/2, int(p[2][c]))
					require.Equal(t, byte(0), p[3][c])
				}
				require.True(t, between(int(p[2][c]), a[c], b[c]))
			}
			require.Equal(t, c0 > c1, p[3][3] == 0xFF)
		}
	}
}

func TestRGTCRampConsistency(t *testing.T) {
	check := func(a0, a1 int, signed bool) {
		r := rgtcRamp(a0, a1, signed)
		require.Equal(t, a0, r[0])
		require.Equal(t, a1, r[1])
		last := 7
		if a0 <= a1 {
			last = 5
			if signed {
				require.Equal(t, [2]int{-127, 127}, [2]int{r[6], r[7]})
			} else {
				require.Equal(t, [2]int{0, 255}, [2]int{r[6], r[7]})
			}
		}
		prev := a0
		for i := 2; i <= last; i++ {
			require.True(t, between(r[i], a0, a1), "ramp(%d, %d)[%d] = %d", a0, a1, i, r[i])
			require.True(t, between(r[i], prev, a1), "ramp(%d, %d) not monotonic", a0, a1)
			prev = r[i]
		}
	}
	for a0 := 0; a0 < 256; a0++ {
		for a1 := 0; a1 < 256; a1++ {
			check(a0, a1, false)
			check(rgtcSigned(a0), rgtcSigned(a1), true)
		}
	}
}

// headerBlock returns a zero 128-bit block with the given fields written
// LSB first at its start.
func headerBlock(fields ...[2]uint64) []byte {
	s := binary.BitStream{}
	for _, f := range fields {
		s.Write(f[0], uint32(f[1]))
	}
	block := make([]byte, 16)
	copy(block, s.Data)
	return block
}

func TestBC7ConsumesWholeBlock(t *testing.T) {
	dst := make([]byte, 64)
	for mode, m := range bc7Modes {
		for partition := 0; partition < 1<<m.partitionBits; partition++ {
			bits := uint32(mode+1) + m.partitionBits + m.rotationBits + m.selectorBits
			bits += uint32(m.subsets*2) * (3*m.colorBits + m.alphaBits)
			switch {
			case m.endpointPBits:
				bits += uint32(m.subsets * 2)
			case m.sharedPBits:
				bits += uint32(m.subsets)
			}
			anchors := 0
			for i := 0; i < 16; i++ {
				if bptcAnchor(m.subsets, partition, i) {
					anchors++
				}
			}
			require.Equal(t, m.subsets, anchors, "mode %d partition %d", mode, partition)
			bits += 16*m.indexBits - uint32(anchors)
			if m.alphaIndexBits > 0 {
				bits += 16*m.alphaIndexBits - 1
			}
			assert.Equal(t, uint32(128), bits, "mode %d partition %d", mode, partition)

			block := headerBlock([2]uint64{1 << mode, uint64(mode + 1)}, [2]uint64{uint64(partition), uint64(m.partitionBits)})
			assert.Equal(t, uint32(128), bc7Block(dst, block), "decoded mode %d partition %d", mode, partition)
		}
	}
}

func TestBC6HConsumesWholeBlock(t *testing.T) {
	dst := make([]byte, 16*6)
	for id, m := range bc6Modes {
		header := uint32(5)
		if id < 2 {
			header = 2
		}
		fields := uint32(0)
		for _, f := range m.fields {
			fields += f.count
		}
		partitions, partitionBits, indexBits := 1, uint32(0), uint32(4)
		if m.subsets == 2 {
			partitions, partitionBits, indexBits = 32, 5, 3
		}
		for partition := 0; partition < partitions; partition++ {
			anchors := 0
			for i := 0; i < 16; i++ {
				if bptcAnchor(m.subsets, partition, i) {
					anchors++
				}
			}
			bits := header + fields + partitionBits + 16*indexBits - uint32(anchors)
			assert.Equal(t, uint32(128), bits, "mode %#x partition %d", id, partition)

			head := [][2]uint64{{id, uint64(header)}}
			for _, f := range m.fields {
				head = append(head, [2]uint64{0, uint64(f.count)})
			}
			head = append(head, [2]uint64{uint64(partition), uint64(partitionBits)})
			block := headerBlock(head...)
			for _, signed := range []bool{false, true} {
				assert.Equal(t, uint32(128), decodeBC6H(dst, block, signed), "decoded mode %#x partition %d", id, partition)
			}
		}
	}
}

func TestBC6HLayoutCoversEndpoints(t *testing.T) {
	for id, m := range bc6Modes {
		var got [4][3]uint64
		for _, f := range m.fields {
			mask := ((uint64(1) << f.count) - 1) << f.shift
			require.Zero(t, got[f.endpoint][f.channel]&mask, "mode %#x overlapping field", id)
			got[f.endpoint][f.channel] |= mask
		}
		for e := 0; e < m.subsets*2; e++ {
			for c := 0; c < 3; c++ {
				bits := m.base
				if e > 0 {
					bits = m.delta[c]
				}
				assert.Equal(t, (uint64(1)<<bits)-1, got[e][c], "mode %#x endpoint %d channel %d", id, e, c)
			}
		}
	}
}

func TestBPTCPartitionTables(t *testing.T) {
	for p := 0; p < 64; p++ {
		assert.Equal(t, 0, bptcSubset(2, p, 0))
		assert.Equal(t, 1, bptcSubset(2, p, int(bptcAnchors2[p])))
		assert.Equal(t, 0, bptcSubset(3, p, 0))
		assert.Equal(t, 1, bptcSubset(3, p, int(bptcAnchors3a[p])))
		assert.Equal(t, 2, bptcSubset(3, p, int(bptcAnchors3b[p])))
	}
}
