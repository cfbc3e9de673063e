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

// Package u64 provides bit-width conversion helpers on unsigned values.
package u64

// Mask returns a value with the low n bits set.
func Mask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (1 << n) - 1
}

// Expand widens the low from bits of v to to bits by replicating the most
// significant bits into the vacated low bits. from must not exceed to.
func Expand(v uint64, from, to uint) uint64 {
	v &= Mask(from)
	if from == 0 {
		return 0
	}
	out := v << (to - from)
	for filled := from; filled < to; filled += from {
		out |= out >> filled
	}
	return out & Mask(to)
}

// Expand4to8 widens a 4-bit value to 8 bits.
func Expand4to8(v uint64) uint64 {
	v &= 0xF
	return (v << 4) | v
}

// Expand5to8 widens a 5-bit value to 8 bits.
func Expand5to8(v uint64) uint64 {
	v &= 0x1F
	return (v << 3) | (v >> 2)
}

// Expand6to8 widens a 6-bit value to 8 bits.
func Expand6to8(v uint64) uint64 {
	v &= 0x3F
	return (v << 2) | (v >> 4)
}

// Expand7to8 widens a 7-bit value to 8 bits.
func Expand7to8(v uint64) uint64 {
	v &= 0x7F
	return (v << 1) | (v >> 6)
}

// Expand11to16 widens an 11-bit value to 16 bits.
func Expand11to16(v uint64) uint64 {
	v &= 0x7FF
	return (v << 5) | (v >> 6)
}
