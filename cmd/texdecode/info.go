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

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	in := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the format and extent of a texture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, kind, err := in.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			bx, by, bz := t.Blocks()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Container: %s\n", kind)
			fmt.Fprintf(out, "Format:    %v\n", t.Format)
			fmt.Fprintf(out, "Extent:    %dx%dx%d\n", t.Width, t.Height, t.Depth)
			fmt.Fprintf(out, "Blocks:    %dx%dx%d of %d bytes\n", bx, by, bz, t.Format.Footprint().Bytes)
			fmt.Fprintf(out, "Layout:    %v\n", t.Format.Layout())
			return nil
		},
	}
	in.register(cmd)
	return cmd
}
