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

package sint_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/google/texdecode/core/math/sint"
)

func ExampleRoundDiv() {
	for _, n := range []int{-11, -10, -3, 0, 3, 10, 11} {
		fmt.Printf("RoundDiv(%v, 7): %v\n", n, sint.RoundDiv(n, 7))
	}
	// Output:
	// RoundDiv(-11, 7): -2
	// RoundDiv(-10, 7): -1
	// RoundDiv(-3, 7): 0
	// RoundDiv(0, 7): 0
	// RoundDiv(3, 7): 0
	// RoundDiv(10, 7): 1
	// RoundDiv(11, 7): 2
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, sint.Clamp(-5, 0, 10))
	assert.Equal(t, 10, sint.Clamp(15, 0, 10))
	assert.Equal(t, 7, sint.Clamp(7, 0, 10))
	assert.Equal(t, int16(-1023), sint.Clamp[int16](-2000, -1023, 1023))
}

func TestByte(t *testing.T) {
	assert.Equal(t, byte(0), sint.Byte(-1))
	assert.Equal(t, byte(255), sint.Byte(256))
	assert.Equal(t, byte(128), sint.Byte(128))
}

func TestDivUp(t *testing.T) {
	assert.Equal(t, 2, sint.DivUp(5, 4))
	assert.Equal(t, 1, sint.DivUp(4, 4))
	assert.Equal(t, 0, sint.DivUp(0, 4))
	assert.Equal(t, 3, sint.Abs(-3))
	assert.Equal(t, 2, sint.Min(2, 3))
	assert.Equal(t, 3, sint.Max(2, 3))
}

func TestHistogram(t *testing.T) {
	var h sint.Histogram
	assert.Equal(t, sint.HistogramStats{}, h.Stats())

	h.Add(0, 6)
	h.Add(2, 2)
	h.Add(40, 1)
	h.Add(-1, 100)

	s := h.Stats()
	assert.Equal(t, 9, s.Count)
	assert.Equal(t, 40, s.Max)
	assert.Equal(t, 0, s.Median)
	assert.InDelta(t, 44.0/9.0, s.Average, 1e-9)
	assert.Greater(t, s.Stddev, 0.0)
}
