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

// Package f16 implements the IEEE 754 binary16 half-precision float.
package f16

import "math"

// Number is a 16-bit half-precision float stored in its raw bit form.
type Number uint16

const (
	signMask     = 0x8000
	exponentMask = 0x7c00
	mantissaMask = 0x03ff
	exponentBias = 15
)

// Inf returns positive infinity if sign >= 0, otherwise negative infinity.
func Inf(sign int) Number {
	if sign >= 0 {
		return exponentMask
	}
	return signMask | exponentMask
}

// NaN returns a quiet NaN.
func NaN() Number { return exponentMask | 0x200 }

// IsInf reports whether n is an infinity with the given sign.
// A sign of 0 matches either infinity.
func (n Number) IsInf(sign int) bool {
	if n&^signMask != exponentMask {
		return false
	}
	neg := n&signMask != 0
	return sign == 0 || (sign > 0 && !neg) || (sign < 0 && neg)
}

// IsNaN reports whether n is a not-a-number value.
func (n Number) IsNaN() bool {
	return n&exponentMask == exponentMask && n&mantissaMask != 0
}

// Bits returns the raw bit pattern of n.
func (n Number) Bits() uint16 { return uint16(n) }

// Float32 returns n as a 32-bit float. Every half value is exactly
// representable, including subnormals, infinities and NaN payloads.
func (n Number) Float32() float32 {
	sign := uint32(n&signMask) << 16
	exp := uint32(n&exponentMask) >> 10
	mant := uint32(n & mantissaMask)
	switch {
	case exp == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	case exp != 0:
		return math.Float32frombits(sign | (exp+127-exponentBias)<<23 | mant<<13)
	case mant == 0:
		return math.Float32frombits(sign)
	}
	// Subnormal: normalise the mantissa into the float32 exponent range.
	e := uint32(127 - exponentBias + 1)
	for mant&0x400 == 0 {
		mant <<= 1
		e--
	}
	return math.Float32frombits(sign | e<<23 | (mant&mantissaMask)<<13)
}

// From returns the half float nearest to f, truncating excess mantissa bits.
// Values too large for the half range become infinity and values too small
// become signed zero.
func From(f float32) Number {
	bits := math.Float32bits(f)
	sign := Number(bits>>16) & signMask
	exp := int((bits>>23)&0xff) - 127 + exponentBias
	mant := bits & 0x7fffff
	switch {
	case (bits>>23)&0xff == 0xff:
		if mant != 0 {
			return sign | NaN()
		}
		return sign | exponentMask
	case exp >= 0x1f:
		return sign | exponentMask
	case exp > 0:
		return sign | Number(exp)<<10 | Number(mant>>13)
	case exp > -10:
		mant |= 0x800000
		return sign | Number(mant>>uint(14-exp))
	}
	return sign
}
