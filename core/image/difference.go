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

package image

import (
	"bytes"
	eb "encoding/binary"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/google/texdecode/core/data/endian"
	"github.com/google/texdecode/core/math/sint"
)

// rgbaF32 converts both buffers to RGBA_F32 after checking their extents.
func rgbaF32(a, b *PixelBuffer) (p, q []float32, err error) {
	if a.Width != b.Width || a.Height != b.Height || a.Depth != b.Depth {
		return nil, nil, errors.Errorf("Image dimensions are not identical. %dx%dx%d vs %dx%dx%d",
			a.Width, a.Height, a.Depth, b.Width, b.Height, b.Depth)
	}
	read := func(pb *PixelBuffer) ([]float32, error) {
		data, err := Convert(pb.Data, pb.Width, pb.Height, pb.Depth, pb.Layout, RGBA_F32)
		if err != nil {
			return nil, err
		}
		r := endian.Reader(bytes.NewReader(data), eb.LittleEndian)
		out := make([]float32, len(data)/4)
		for i := range out {
			out[i] = r.Float32()
		}
		return out, r.Error()
	}
	if p, err = read(a); err != nil {
		return nil, nil, errors.Wrap(err, "first image")
	}
	if q, err = read(b); err != nil {
		return nil, nil, errors.Wrap(err, "second image")
	}
	return p, q, nil
}

// Difference returns the normalized square error between the two images.
// A return value of 0 denotes identical images, a return value of 1 denotes
// a complete mismatch (black vs white).
// Only channels that are found in both a and b are compared.
func Difference(a, b *PixelBuffer) (float32, error) {
	p, q, err := rgbaF32(a, b)
	if err != nil {
		return 1, err
	}
	channels := sint.Min(a.Layout.Channels(), b.Layout.Channels())
	if channels == 0 {
		return 1, errors.Errorf("No common channels between %v and %v", a.Layout, b.Layout)
	}
	sqrErr := float32(0)
	for i := 0; i < len(p); i += 4 {
		for c := 0; c < channels; c++ {
			d := p[i+c] - q[i+c]
			sqrErr += d * d
		}
	}
	return sqrErr / float32(len(p)/4*channels), nil
}

// CompareResult summarises the per-pixel differences between two images.
type CompareResult struct {
	Pixels     int // Number of pixels compared.
	Mismatched int // Number of pixels with a channel delta above the threshold.
	// First is the (x, y, z) of the first mismatched pixel, valid when
	// Mismatched is non-zero.
	First    [3]int
	MaxDelta float32
	// Deltas counts each pixel's largest channel delta in 1/255 steps.
	Deltas sint.Histogram
}

// Compare compares the common channels of a and b pixel by pixel. A pixel
// mismatches when any channel differs by more than threshold.
func Compare(a, b *PixelBuffer, threshold float32) (*CompareResult, error) {
	p, q, err := rgbaF32(a, b)
	if err != nil {
		return nil, err
	}
	channels := sint.Min(a.Layout.Channels(), b.Layout.Channels())
	out := &CompareResult{Pixels: len(p) / 4}
	for i := 0; i < out.Pixels; i++ {
		delta := float32(0)
		for c := 0; c < channels; c++ {
			delta = math32.Max(delta, math32.Abs(p[i*4+c]-q[i*4+c]))
		}
		out.Deltas.Add(int(math32.Floor(delta*0xff+0.5)), 1)
		out.MaxDelta = math32.Max(out.MaxDelta, delta)
		if delta > threshold {
			if out.Mismatched == 0 {
				x, y, z := i%a.Width, (i/a.Width)%a.Height, i/(a.Width*a.Height)
				out.First = [3]int{x, y, z}
			}
			out.Mismatched++
		}
	}
	return out, nil
}
