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

package sint

import "math"

// Histogram counts integer samples. Bin i holds the number of samples with
// value i.
type Histogram []int

// HistogramStats stores the result of computing statistics on a Histogram
type HistogramStats struct {
	// Count is the number of samples added.
	Count int
	// Average is the mean of all the samples.
	Average float64
	// Stddev is the population standard deviation of the samples.
	Stddev float64
	// Median is the median sample.
	Median int
	// Max is the largest sample.
	Max int
}

// Add adds count samples of value at, zero-extending the Histogram if
// necessary. Negative values are ignored.
func (h *Histogram) Add(at, count int) {
	if at < 0 {
		return
	}
	if at >= cap(*h) { // at exceeds slice capacity, reallocate.
		newCap := Max(at*2, 32)
		n := make(Histogram, at+1, newCap)
		copy(n, *h)
		*h = n
	} else if at >= len(*h) { // at exceeds slice length, reslice.
		*h = (*h)[:at+1]
	}
	(*h)[at] += count
}

// Stats computes count, average, standard deviation, median and maximum of
// the samples in the Histogram.
func (h Histogram) Stats() HistogramStats {
	out := HistogramStats{}
	sum, sum2 := 0.0, 0.0
	for v, n := range h {
		if n == 0 {
			continue
		}
		out.Count += n
		out.Max = v
		sum += float64(v * n)
		sum2 += float64(v * v * n)
	}
	if out.Count == 0 {
		return HistogramStats{}
	}
	c := float64(out.Count)
	out.Average = sum / c
	out.Stddev = math.Sqrt(math.Max(sum2/c-out.Average*out.Average, 0))

	mid, seen := out.Count/2, 0
	for v, n := range h {
		seen += n
		if seen > mid {
			out.Median = v
			break
		}
	}
	return out
}
