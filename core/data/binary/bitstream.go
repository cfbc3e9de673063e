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

package binary

// BitStream reads and writes bits packed into a byte slice, least
// significant bit first. BPTC blocks are consumed this way.
type BitStream struct {
	Data     []byte // The packed bits.
	ReadPos  uint32 // Read offset in bits from the start of Data.
	WritePos uint32 // Write offset in bits from the start of Data.
}

// ReadBit reads a single bit and advances ReadPos by one.
func (s *BitStream) ReadBit() uint64 {
	pos := s.ReadPos
	s.ReadPos++
	return uint64(s.Data[pos>>3]>>(pos&7)) & 1
}

// CanRead returns true if there's enough data to call Read(count).
func (s *BitStream) CanRead(count uint32) bool {
	return int(s.ReadPos+count) <= len(s.Data)*8
}

// Remaining returns the number of unread bits.
func (s *BitStream) Remaining() uint32 {
	return uint32(len(s.Data)*8) - s.ReadPos
}

// Skip advances ReadPos by count bits without decoding them.
func (s *BitStream) Skip(count uint32) {
	if !s.CanRead(count) {
		panic("BitStream: skip past end of data")
	}
	s.ReadPos += count
}

// Read reads count bits (at most 64) and advances ReadPos past them. The
// first bit read becomes the least significant bit of the result.
func (s *BitStream) Read(count uint32) uint64 {
	val, got := uint64(0), uint32(0)
	for got < count {
		pos := s.ReadPos
		avail := 8 - pos&7
		if avail > count-got {
			avail = count - got
		}
		chunk := uint64(s.Data[pos>>3]>>(pos&7)) & ((1 << avail) - 1)
		val |= chunk << got
		got += avail
		s.ReadPos += avail
	}
	return val
}

// WriteBit writes a single bit and advances WritePos by one.
func (s *BitStream) WriteBit(bit uint64) {
	s.Write(bit, 1)
}

// Write writes the low count bits of bits, least significant first, growing
// Data as required.
func (s *BitStream) Write(bits uint64, count uint32) {
	if need := int(s.WritePos+count+7) / 8; need > len(s.Data) {
		if need <= cap(s.Data) {
			s.Data = s.Data[:need]
		} else {
			buf := make([]byte, need, need*2)
			copy(buf, s.Data)
			s.Data = buf
		}
	}
	for count > 0 {
		pos := s.WritePos
		shift := pos & 7
		n := 8 - shift
		if n > count {
			n = count
		}
		mask := byte(((1 << n) - 1) << shift)
		b := &s.Data[pos>>3]
		*b = (*b &^ mask) | (byte(bits<<shift) & mask)
		bits >>= n
		count -= n
		s.WritePos += n
	}
}
