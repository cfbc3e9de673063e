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

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/google/texdecode/core/image"
	"github.com/google/texdecode/core/log"
)

// ErrMismatch is returned when the decoded texture differs from the reference.
var ErrMismatch = errors.New("images differ")

func newCompareCmd() *cobra.Command {
	in := &inputFlags{}
	var threshold float32
	cmd := &cobra.Command{
		Use:   "compare <file> <reference.png>",
		Short: "Compare a decoded texture with a reference PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, _, err := in.load(ctx, args[0])
			if err != nil {
				return err
			}
			got, err := decode(ctx, cmd, t)
			if err != nil {
				return err
			}
			file, err := os.Open(args[1])
			if err != nil {
				return errors.Wrap(err, "opening reference")
			}
			defer file.Close()
			want, err := image.DecodePNG(file)
			if err != nil {
				return err
			}
			if t.Depth > 1 {
				log.W(ctx, "Comparing only slice 0 of %v", t)
				got.Depth = 1
				got.Data = got.Data[:got.Layout.Size(got.Width, got.Height, 1)]
			}

			mse, err := image.Difference(got, want)
			if err != nil {
				return err
			}
			res, err := image.Compare(got, want, threshold)
			if err != nil {
				return err
			}
			stats := res.Deltas.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Difference: %g\n", mse)
			fmt.Fprintf(out, "Max delta:  %d/255\n", int(res.MaxDelta*255+0.5))
			fmt.Fprintf(out, "Mean delta: %.3f/255 (stddev %.3f)\n", stats.Average, stats.Stddev)
			fmt.Fprintf(out, "Mismatched: %d of %d pixels\n", res.Mismatched, res.Pixels)
			if res.Mismatched > 0 {
				fmt.Fprintf(out, "First:      %d,%d\n", res.First[0], res.First[1])
				return errors.Wrapf(ErrMismatch, "%d pixels over %g", res.Mismatched, threshold)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().Float32Var(&threshold, "threshold", 1.0/255, "Largest per-channel difference accepted, in [0, 1]")
	return cmd
}
