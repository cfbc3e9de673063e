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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/google/texdecode/core/log"
)

func newDecodeCmd() *cobra.Command {
	in := &inputFlags{}
	var out string
	var slice int
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a texture to PNG or BMP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, _, err := in.load(ctx, args[0])
			if err != nil {
				return err
			}
			if slice < 0 || slice >= t.Depth {
				return errors.Errorf("--slice %d is outside the depth %d of %v", slice, t.Depth, t)
			}
			b, err := decode(ctx, cmd, t)
			if err != nil {
				return err
			}
			if err := writeImage(out, b, slice); err != nil {
				return err
			}
			log.I(ctx, "Wrote slice %d of %v to %s", slice, t, out)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "out.png", "Output image, .bmp selects BMP, - writes PNG to stdout")
	cmd.Flags().IntVar(&slice, "slice", 0, "Depth slice of a 3D texture to write")
	return cmd
}
