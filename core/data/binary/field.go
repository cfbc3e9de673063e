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

package binary

import (
	eb "encoding/binary"
	"fmt"
)

// Block64 is a 64-bit compressed block, or one half of a 128-bit block.
type Block64 uint64

// Load64BE loads a Block64 from the first 8 bytes of b, most significant
// byte first. ETC and EAC blocks are laid out this way.
func Load64BE(b []byte) Block64 { return Block64(eb.BigEndian.Uint64(b)) }

// Load64LE loads a Block64 from the first 8 bytes of b, least significant
// byte first. S3TC and RGTC blocks are laid out this way.
func Load64LE(b []byte) Block64 { return Block64(eb.LittleEndian.Uint64(b)) }

// Bit returns bit i of the block.
func (b Block64) Bit(i uint) uint64 {
	checkRange(i, i, 64)
	return uint64(b>>i) & 1
}

// Field returns the inclusive bit range [first, last]. Bit first becomes the
// least significant bit of the result. If first > last the range is walked
// downwards, so the bits of [last, first] come back in reversed order.
func (b Block64) Field(first, last uint) uint64 {
	checkRange(first, last, 64)
	if first > last {
		return Reverse(extract(uint64(b), last, first-last+1), int(first-last+1))
	}
	return extract(uint64(b), first, last-first+1)
}

// Block128 is a 128-bit compressed block made of two little endian words.
type Block128 struct {
	Lo, Hi uint64
}

// Load128 loads a Block128 from the first 16 bytes of b.
func Load128(b []byte) Block128 {
	return Block128{
		Lo: eb.LittleEndian.Uint64(b[0:8]),
		Hi: eb.LittleEndian.Uint64(b[8:16]),
	}
}

// Bit returns bit i of the block.
func (b Block128) Bit(i uint) uint64 {
	checkRange(i, i, 128)
	if i < 64 {
		return (b.Lo >> i) & 1
	}
	return (b.Hi >> (i - 64)) & 1
}

// Field returns the inclusive bit range [first, last], which may straddle
// the boundary between the two words. Ranges wider than 64 bits are not
// representable. The ordering rules match Block64.Field.
func (b Block128) Field(first, last uint) uint64 {
	checkRange(first, last, 128)
	lo, hi := first, last
	if lo > hi {
		lo, hi = hi, lo
	}
	count := hi - lo + 1
	if count > 64 {
		panic(fmt.Errorf("bit field [%d, %d] is wider than 64 bits", first, last))
	}
	var v uint64
	switch {
	case hi < 64:
		v = extract(b.Lo, lo, count)
	case lo >= 64:
		v = extract(b.Hi, lo-64, count)
	default:
		below := 64 - lo
		v = extract(b.Lo, lo, below) | extract(b.Hi, 0, count-below)<<below
	}
	if first > last {
		return Reverse(v, int(count))
	}
	return v
}

// SignExtend interprets the low n bits of v as an n-bit two's complement
// value.
func SignExtend(v uint64, n int) int64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return int64(v)
	}
	shift := uint(64 - n)
	return int64(v<<shift) >> shift
}

// Reverse returns the low n bits of v in reversed order.
func Reverse(v uint64, n int) uint64 {
	out := uint64(0)
	for i := 0; i < n; i++ {
		out = out<<1 | (v>>uint(i))&1
	}
	return out
}

func extract(word uint64, offset, count uint) uint64 {
	if count >= 64 {
		return word >> offset
	}
	return (word >> offset) & ((1 << count) - 1)
}

func checkRange(first, last, size uint) {
	if first >= size || last >= size {
		panic(fmt.Errorf("bit field [%d, %d] is outside a %d-bit block", first, last, size))
	}
}
