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

// Package sint provides helpers for signed integer arithmetic used by the
// block decoders.
package sint

import "golang.org/x/exp/constraints"

// Abs returns the absolute value of a.
func Abs[T constraints.Signed](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Clamp returns x limited to the inclusive range [lo, hi].
func Clamp[T constraints.Integer](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Min returns the minimum value of a and b.
func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum value of a and b.
func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Byte clamps i to [0, 255].
func Byte(i int) byte {
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return byte(i)
}

// DivUp returns v / d rounded towards positive infinity. v must not be
// negative.
func DivUp(v, d int) int {
	return (v + d - 1) / d
}

// RoundDiv returns n / d rounded to nearest, halves away from zero.
// d must be positive.
func RoundDiv(n, d int) int {
	if n < 0 {
		return -((-n + d/2) / d)
	}
	return (n + d/2) / d
}
