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

// Package raw decodes the MIPI CSI-2 packed RAW10 and RAW12 camera formats.
//
// Importing the package registers its decoders with image.RegisterExternal.
package raw

import (
	eb "encoding/binary"

	"github.com/google/texdecode/core/image"
)

func init() {
	image.RegisterExternal(image.RAW10, image.BlockDecoderFunc(decode))
	image.RegisterExternal(image.RAW12, image.BlockDecoderFunc(decode))
}

func decode(f image.Format, dst, src []byte) {
	switch f {
	case image.RAW10:
		DecodeRAW10(dst, src)
	case image.RAW12:
		DecodeRAW12(dst, src)
	}
}

// DecodeRAW10 unpacks four 10-bit pixels from five bytes into little-endian
// 16-bit normalized values. Bytes 0 to 3 hold the high bits of each pixel and
// byte 4 holds their low bits, two per pixel starting from the LSB.
func DecodeRAW10(dst, src []byte) {
	low := src[4]
	for i := 0; i < 4; i++ {
		v := uint16(src[i])<<2 | uint16(low>>(2*i))&3
		eb.LittleEndian.PutUint16(dst[2*i:], v<<6|v>>4)
	}
}

// DecodeRAW12 unpacks two 12-bit pixels from three bytes into little-endian
// 16-bit normalized values. Byte 2 holds the low nibble of the first pixel in
// its low half and of the second in its high half.
func DecodeRAW12(dst, src []byte) {
	low := src[2]
	for i := 0; i < 2; i++ {
		v := uint16(src[i])<<4 | uint16(low>>(4*i))&0xF
		eb.LittleEndian.PutUint16(dst[2*i:], v<<4|v>>8)
	}
}
